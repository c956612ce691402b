// Package handlers contains the HTTP handlers for pages, the order API
// and the admin surface.
package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/davronbekov/optika-orders/internal/middleware/authz"
	"github.com/davronbekov/optika-orders/internal/middleware/csrf"
	"github.com/davronbekov/optika-orders/internal/pdf"
)

// fail writes the API error shape used across the JSON endpoints.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// viewData bundles what every template expects plus page specifics.
func viewData(c echo.Context, id authz.Identity, extra echo.Map) echo.Map {
	data := echo.Map{
		"Identity":  id,
		"IsAdmin":   id.IsAdmin(),
		"CSRFToken": csrf.Token(c),
		"Flashes":   GetFlash(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// orderColumns is the table layout shared by the order and archive PDFs.
func orderColumns() []pdf.Column {
	return []pdf.Column{
		{Name: "Kategoriya", Width: 95},
		{Name: "Model", Width: 170},
		{Name: "Dioptriya", Width: 70},
		{Name: "Miqdor", Width: 55},
		{Name: "Izoh", Width: 125},
	}
}
