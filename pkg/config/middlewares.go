package config

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	appmw "github.com/nft-maker-one/twitter-clone/internal/middleware"
)

func SetupMiddleware(e *echo.Echo, log *zap.Logger) {
	e.Use(appmw.RequestID())
	e.Use(appmw.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))
}
