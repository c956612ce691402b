package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/catalog"
	"github.com/davronbekov/optika-orders/internal/logging"
	"github.com/davronbekov/optika-orders/internal/middleware/authz"
)

type CatalogHandler struct {
	DB *gorm.DB
}

type saveItem struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Diopter  string   `json:"diopter"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price"`
	Note     string   `json:"note"`
	Image    string   `json:"image"`
	Category string   `json:"category"`
}

// SaveItems merges a posted batch into the section's product table and
// the pending orders. Rows without a name or a positive quantity are
// skipped, the rest run in one transaction.
func (h *CatalogHandler) SaveItems(c echo.Context) error {
	cat, ok := catalog.BySlug(c.Param("category"))
	if !ok {
		return fail(c, http.StatusNotFound, "Kategoriya topilmadi.")
	}
	id, _ := authz.Current(c)

	var items []saveItem
	if err := c.Bind(&items); err != nil || len(items) == 0 {
		return fail(c, http.StatusBadRequest, "Hech narsa tanlanmadi!")
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, it := range items {
			name := strings.TrimSpace(it.Name)
			if name == "" || it.Quantity <= 0 {
				continue
			}
			in := catalog.Input{
				Name:     name,
				Kind:     strings.TrimSpace(it.Kind),
				Diopter:  strings.TrimSpace(it.Diopter),
				Quantity: it.Quantity,
				Price:    it.Price,
				Note:     it.Note,
				Image:    it.Image,
				Category: strings.TrimSpace(it.Category),
			}
			if err := catalog.MergeSave(tx, cat, id.StaffID, id.Branch, in); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("save catalog batch",
			"category", cat.Slug, "error", err)
		return fail(c, http.StatusInternalServerError, "Saqlashda xatolik yuz berdi.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     cat.Saved,
		"redirectUrl": "/",
	})
}
