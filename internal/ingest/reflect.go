package ingest

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	timeType = reflect.TypeFor[time.Time]()
	uuidType = reflect.TypeFor[uuid.UUID]()
)

// dateLayouts are tried in order for time.Time fields.
var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

var columnReplacer = strings.NewReplacer("_", "", "-", "", " ", "")

// normalizeColumn makes "word_count", "Word Count" and "wordCount" the same key.
func normalizeColumn(name string) string {
	return columnReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// fieldIndex maps the normalized field, json tag and db tag names of struct type t to field indexes.
func fieldIndex(t reflect.Type) map[string][]int {
	index := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		index[normalizeColumn(f.Name)] = f.Index
		for _, key := range []string{"json", "db"} {
			if tag, _, _ := strings.Cut(f.Tag.Get(key), ","); tag != "" && tag != "-" {
				index[normalizeColumn(tag)] = f.Index
			}
		}
	}
	return index
}

// setField parses value into field according to the field's type. Empty values leave the zero value.
func setField(field reflect.Value, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field of type %s", field.Type())
	}

	switch field.Type() {
	case timeType:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				field.Set(reflect.ValueOf(t))
				return nil
			}
		}
		return fmt.Errorf("failed to parse datetime value '%s'", value)
	case uuidType:
		id, err := uuid.Parse(value)
		if err != nil {
			return fmt.Errorf("failed to parse uuid value '%s': %w", value, err)
		}
		field.Set(reflect.ValueOf(id))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("failed to parse int value '%s': %w", value, err)
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("failed to parse float value '%s': %w", value, err)
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failed to parse bool value '%s': %w", value, err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Type())
	}
	return nil
}
