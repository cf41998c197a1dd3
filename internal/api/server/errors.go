package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/pagekit/pkg/apperr"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error    string `json:"error"`
	Title    string `json:"title,omitempty"`
	Argument string `json:"argument,omitempty"`
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if ae, ok := apperr.IsInvalidArgument(err); ok {
			_ = c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:    ae.Error(),
				Title:    "invalid argument",
				Argument: ae.Argument,
			})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, ErrorResponse{Error: fmt.Sprintf("%v", he.Message)})
			return
		}

		slog.Error("Unhandled error", "error", err, "uri", c.Request().RequestURI)
		_ = c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
