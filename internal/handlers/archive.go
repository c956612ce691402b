package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/logging"
	"github.com/davronbekov/optika-orders/internal/middleware/authz"
	"github.com/davronbekov/optika-orders/internal/models"
	"github.com/davronbekov/optika-orders/internal/pdf"
)

type ArchiveHandler struct {
	DB *gorm.DB
}

// Page lists archives. Admins see everything, other roles only the
// snapshots matching their own branch and name.
func (h *ArchiveHandler) Page(c echo.Context) error {
	id, _ := authz.Current(c)

	q := h.DB.Model(&models.Archive{})
	if !id.IsAdmin() {
		q = q.Where("branch = ? AND user_full_name = ?", id.Branch, id.FullName)
	}

	var archives []models.Archive
	if err := q.Order("created_at DESC").Find(&archives).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	return c.Render(http.StatusOK, "archive.html", viewData(c, id, echo.Map{
		"Archives": archives,
	}))
}

// DownloadPDF renders one archive as a PDF and marks it downloaded.
func (h *ArchiveHandler) DownloadPDF(c echo.Context) error {
	id, _ := authz.Current(c)

	var req struct {
		ID uint `json:"id"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "JSON xato.")
	}
	if req.ID == 0 {
		return fail(c, http.StatusBadRequest, "archive id xato.")
	}

	var archive models.Archive
	err := h.DB.Where("id = ?", req.ID).Take(&archive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "Arxiv topilmadi.")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	if !id.IsAdmin() && (archive.Branch != id.Branch || archive.UserFullName != id.FullName) {
		return fail(c, http.StatusForbidden, "Ruxsat yo‘q.")
	}

	var items []models.ArchiveItem
	if err := h.DB.Where("archive_id = ?", archive.ID).Order("id").Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			orDash(it.Category),
			orDash(it.Model),
			orDash(it.Diopter),
			strconv.Itoa(it.Quantity),
			orDash(it.Note),
		})
	}

	data, err := pdf.Build(pdf.Document{
		Title: "Arxiv Buyurtma (Optika)",
		HeaderLines: []string{
			"Ism: " + orDash(archive.UserFullName),
			"Filial: " + orDash(archive.Branch),
			"Sana: " + archive.CreatedAt.Format("2006-01-02 15:04"),
		},
		Columns: orderColumns(),
		Rows:    rows,
	})
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("build archive pdf",
			"archive_id", archive.ID, "error", err)
		return fail(c, http.StatusInternalServerError, "PDF tayyorlashda xatolik.")
	}

	if err := h.DB.Model(&models.Archive{}).Where("id = ?", archive.ID).
		Update("is_pdf_downloaded", true).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="archive.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}
