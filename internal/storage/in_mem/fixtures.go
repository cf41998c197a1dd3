package in_mem

import (
	"fmt"
	"io"
	"os"

	"github.com/DjordjeVuckovic/pagekit/internal/domain"
	"gopkg.in/yaml.v3"
)

type fixtureFile struct {
	Articles []domain.Article `yaml:"articles"`
}

// LoadFixtures decodes a YAML document with a top level "articles" list.
func LoadFixtures(r io.Reader) ([]domain.Article, error) {
	var f fixtureFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	for i := range f.Articles {
		f.Articles[i].Normalize()
	}
	return f.Articles, nil
}

func LoadFixtureFile(path string) ([]domain.Article, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture file: %w", err)
	}
	defer file.Close()

	return LoadFixtures(file)
}
