package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/nft-maker-one/twitter-clone/internal/logger"
)

// RequestID tags every request with a UUID in the X-Request-ID header.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLogger writes one structured line per request.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", logger.Anonymize(v.URI)),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if uid := UserID(c); uid != 0 {
				fields = append(fields, zap.Uint("user_id", uid))
			}
			if v.Error != nil {
				log.Warn("request failed", append(fields, logger.Err(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
