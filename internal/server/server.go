package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New は共通ミドルウェア込みのechoを作る。
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
