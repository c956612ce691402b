package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/catalog"
	"github.com/davronbekov/optika-orders/internal/logging"
	"github.com/davronbekov/optika-orders/internal/middleware/authz"
	"github.com/davronbekov/optika-orders/internal/models"
	"github.com/davronbekov/optika-orders/internal/pdf"
)

type ProfileHandler struct {
	DB *gorm.DB
}

// Page shows the pending orders of the signed in user, newest first.
func (h *ProfileHandler) Page(c echo.Context) error {
	id, _ := authz.Current(c)

	var orders []models.Order
	if err := h.DB.Where("staff_id = ? AND is_sent = ?", id.StaffID, false).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	return c.Render(http.StatusOK, "profile.html", viewData(c, id, echo.Map{
		"Orders": orders,
	}))
}

type profileRow struct {
	ID       uint   `json:"id"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
	Category string `json:"category"`
}

// UpdateRow edits quantity and note of one pending order and mirrors the
// change into the product table row it points to.
func (h *ProfileHandler) UpdateRow(c echo.Context) error {
	id, _ := authz.Current(c)

	var req profileRow
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "JSON xato formatda.")
	}
	if req.ID == 0 {
		return fail(c, http.StatusBadRequest, "Id noto‘g‘ri.")
	}

	var order models.Order
	err := h.DB.Where("id = ? AND staff_id = ? AND is_sent = ?", req.ID, id.StaffID, false).
		Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "Buyurtma topilmadi.")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	if req.Quantity < 0 {
		req.Quantity = 0
	}
	order.Quantity = req.Quantity
	order.Note = orDash(req.Note)
	if err := h.DB.Model(&order).
		Updates(map[string]any{"quantity": order.Quantity, "note": order.Note}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	label := order.Category
	if label == "" {
		label = req.Category
	}
	if cat, ok := catalog.ByLabel(label); ok {
		if err := h.DB.Table(cat.Table).Where("id = ?", order.ProductID).
			Updates(map[string]any{"quantity": order.Quantity, "note": order.Note}).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "database error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

type deleteRow struct {
	ID       uint   `json:"id"`
	Category string `json:"category"`
}

// DeleteRows removes the selected pending orders together with their
// product rows, all in one transaction.
func (h *ProfileHandler) DeleteRows(c echo.Context) error {
	id, _ := authz.Current(c)

	var rows []deleteRow
	if err := c.Bind(&rows); err != nil || len(rows) == 0 {
		return fail(c, http.StatusBadRequest, "Hech narsa tanlanmadi.")
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			if r.ID == 0 {
				continue
			}
			var order models.Order
			err := tx.Where("id = ? AND staff_id = ? AND is_sent = ?", r.ID, id.StaffID, false).
				Take(&order).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			label := order.Category
			if label == "" {
				label = r.Category
			}
			if cat, ok := catalog.ByLabel(label); ok {
				if err := tx.Where("id = ?", order.ProductID).Delete(cat.NewRow()).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&order).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("delete profile rows", "error", err)
		return fail(c, http.StatusInternalServerError, "O‘chirishda xatolik yuz berdi.")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

type pdfRow struct {
	ID       uint   `json:"id"`
	OrderID  uint   `json:"order_id"`
	Category string `json:"category"`
	Model    string `json:"model"`
	Diopter  string `json:"diopter"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

// DownloadPDF renders the posted orders as a PDF. The DB rows win when
// the posted ids still exist, otherwise the payload is used as sent.
func (h *ProfileHandler) DownloadPDF(c echo.Context) error {
	id, _ := authz.Current(c)

	var payload []pdfRow
	if err := c.Bind(&payload); err != nil || len(payload) == 0 {
		return fail(c, http.StatusBadRequest, "Order list bo‘sh.")
	}

	ids := make([]uint, 0, len(payload))
	for _, it := range payload {
		oid := it.ID
		if oid == 0 {
			oid = it.OrderID
		}
		if oid > 0 {
			ids = append(ids, oid)
		}
	}

	var orders []models.Order
	if len(ids) > 0 {
		h.DB.Where("id IN ? AND staff_id = ? AND is_sent = ?", ids, id.StaffID, false).Find(&orders)
	}

	var rows [][]string
	if len(orders) == 0 {
		for _, it := range payload {
			rows = append(rows, []string{
				orDash(strings.TrimSpace(it.Category)),
				orDash(strings.TrimSpace(it.Model)),
				orDash(strings.TrimSpace(it.Diopter)),
				strconv.Itoa(it.Quantity),
				orDash(strings.TrimSpace(it.Note)),
			})
		}
	} else {
		for _, o := range orders {
			rows = append(rows, []string{
				orDash(o.Category),
				orDash(o.Model),
				orDash(o.Diopter),
				strconv.Itoa(o.Quantity),
				orDash(o.Note),
			})
		}
	}

	data, err := pdf.Build(pdf.Document{
		Title: "Buyurtma (Optika)",
		HeaderLines: []string{
			"Ism: " + id.FullName,
			"Filial: " + id.Branch,
			"Sana: " + time.Now().Format("2006-01-02 15:04"),
		},
		Columns: orderColumns(),
		Rows:    rows,
	})
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("build order pdf", "error", err)
		return fail(c, http.StatusInternalServerError, "PDF tayyorlashda xatolik.")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="order.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// Submit snapshots the selected pending orders into a new archive, then
// clears them and their product rows.
func (h *ProfileHandler) Submit(c echo.Context) error {
	id, _ := authz.Current(c)

	var payload []uint
	if err := c.Bind(&payload); err != nil || len(payload) == 0 {
		return fail(c, http.StatusBadRequest, "Bo‘sh ro‘yxat.")
	}

	ids := make([]uint, 0, len(payload))
	for _, v := range payload {
		if v > 0 {
			ids = append(ids, v)
		}
	}
	if len(ids) == 0 {
		return fail(c, http.StatusBadRequest, "OrderId noto‘g‘ri.")
	}

	var orders []models.Order
	if err := h.DB.Where("id IN ? AND staff_id = ? AND is_sent = ?", ids, id.StaffID, false).
		Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if len(orders) == 0 {
		return fail(c, http.StatusNotFound, "Buyurtmalar topilmadi.")
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// the page downloads the PDF before submitting, so the flag
		// starts out true
		archive := models.Archive{
			Branch:           id.Branch,
			UserFullName:     id.FullName,
			CreatedAt:        time.Now(),
			IsPdfDownloaded:  true,
			IsTelegramShared: false,
		}
		if err := tx.Create(&archive).Error; err != nil {
			return err
		}

		items := make([]models.ArchiveItem, 0, len(orders))
		for _, o := range orders {
			items = append(items, models.ArchiveItem{
				ArchiveID: archive.ID,
				Category:  o.Category,
				Model:     o.Model,
				Diopter:   o.Diopter,
				Quantity:  o.Quantity,
				Note:      o.Note,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		for _, o := range orders {
			if cat, ok := catalog.ByLabel(o.Category); ok {
				if err := tx.Where("id = ?", o.ProductID).Delete(cat.NewRow()).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&o).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("archive orders", "error", err)
		return fail(c, http.StatusInternalServerError, "Arxivlashda xatolik yuz berdi.")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Buyurtmalar arxivlandi."})
}
