package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/catalog"
	"github.com/davronbekov/optika-orders/internal/middleware/authz"
)

type PageHandler struct {
	DB *gorm.DB
}

// Index lists the catalog sections.
func (h *PageHandler) Index(c echo.Context) error {
	id, _ := authz.Current(c)
	return c.Render(http.StatusOK, "index.html", viewData(c, id, echo.Map{
		"Categories": catalog.All(),
	}))
}

// Catalog renders the order form of one section.
func (h *PageHandler) Catalog(c echo.Context) error {
	cat, ok := catalog.BySlug(c.Param("category"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "category not found")
	}
	id, _ := authz.Current(c)
	return c.Render(http.StatusOK, "category.html", viewData(c, id, echo.Map{
		"Category": cat,
	}))
}

// Admin renders the archive dashboard shell. The table is filled in by
// the page script over the admin API.
func (h *PageHandler) Admin(c echo.Context) error {
	id, _ := authz.Current(c)
	return c.Render(http.StatusOK, "admin.html", viewData(c, id, nil))
}
