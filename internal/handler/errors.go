package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/booking-reservation/internal/apperror"
)

// NewHTTPErrorHandler renders every error that reaches echo as an
// Envelope.  echo.HTTPErrors keep their status; anything else is a 500
// whose message carries the diagnostic trace, or only the failing
// operation when production is set.
func NewHTTPErrorHandler(production bool, logger *zap.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		var env Envelope
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			message := http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				message = m
			}
			env = newEnvelope(status, nil, message)
		} else {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err))
			env = newEnvelope(status, nil, msgInternalError+detail(err, production))
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, env)
		}
		if werr != nil {
			logger.Warn("write error response", zap.Error(werr))
		}
	}
}

func detail(err error, production bool) string {
	var srvErr *apperror.ServerError
	if errors.As(err, &srvErr) {
		if production {
			return srvErr.Op
		}
		return srvErr.Trace()
	}
	if production {
		return strconv.Itoa(http.StatusInternalServerError)
	}
	return fmt.Sprintf("%v", err)
}
