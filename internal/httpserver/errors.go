package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/hr_notify/internal/logging"
)

// NewErrorHandler renders errors that escape the handlers. Unexpected
// errors become 500 and carry their detail only outside production.
func NewErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := any(http.StatusText(code))
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = he.Message
			if he.Internal != nil {
				err = he.Internal
			}
		} else {
			message = err.Error()
		}

		detail := any(echo.Map{})
		if !production {
			detail = err.Error()
		}

		if code >= http.StatusInternalServerError {
			logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", code, "error", err)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, echo.Map{
				"errors": echo.Map{
					"message": message,
					"error":   detail,
				},
			})
		}
		if werr != nil {
			logging.FromContext(c.Request().Context()).Error("error_handler_write_failed", "error", werr)
		}
	}
}
