package controller

import "github.com/labstack/echo/v4"

type WellController interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Save(c echo.Context) error
	Delete(c echo.Context) error
	Swap(c echo.Context) error
	Refresh(c echo.Context) error
	Filter(c echo.Context) error
	Stats(c echo.Context) error
	Probe(c echo.Context) error
	Export(c echo.Context) error
}

type EditorController interface {
	Open(c echo.Context) error
	State(c echo.Context) error
	Event(c echo.Context) error
	Save(c echo.Context) error
	Discard(c echo.Context) error
	Close(c echo.Context) error
	Resolve(c echo.Context) error
}
