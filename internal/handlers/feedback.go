package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/logging"
	"github.com/davronbekov/optika-orders/internal/middleware/authz"
	"github.com/davronbekov/optika-orders/internal/models"
	"github.com/davronbekov/optika-orders/internal/pdf"
)

type FeedbackHandler struct {
	DB *gorm.DB
}

// Page renders the feedback form.
func (h *FeedbackHandler) Page(c echo.Context) error {
	id, _ := authz.Current(c)
	return c.Render(http.StatusOK, "feedback.html", viewData(c, id, nil))
}

// Send stores one entry under the session user's name.
func (h *FeedbackHandler) Send(c echo.Context) error {
	id, _ := authz.Current(c)

	var req struct {
		Message string `json:"message"`
		Phone   string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "JSON xato.")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return fail(c, http.StatusBadRequest, "Xabar bo‘sh bo‘lmasin.")
	}

	fb := models.Feedback{
		FullName:  id.FullName,
		Phone:     strings.TrimSpace(req.Phone),
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := h.DB.Create(&fb).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// AdminPage lists every entry, newest first.
func (h *FeedbackHandler) AdminPage(c echo.Context) error {
	id, _ := authz.Current(c)

	var feedbacks []models.Feedback
	if err := h.DB.Order("created_at DESC").Find(&feedbacks).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	return c.Render(http.StatusOK, "admin_feedback.html", viewData(c, id, echo.Map{
		"Feedbacks": feedbacks,
	}))
}

// Clear deletes everything and returns to the list with a flash.
func (h *FeedbackHandler) Clear(c echo.Context) error {
	if err := h.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Feedback{}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	AddFlash(c, "success", "Barcha feedbacklar o‘chirildi.")
	return c.Redirect(http.StatusSeeOther, "/admin/feedback")
}

// ExportPDF downloads the whole list as a PDF.
func (h *FeedbackHandler) ExportPDF(c echo.Context) error {
	var feedbacks []models.Feedback
	if err := h.DB.Order("created_at DESC").Find(&feedbacks).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	rows := make([][]string, 0, len(feedbacks))
	for _, f := range feedbacks {
		rows = append(rows, []string{
			orDash(f.FullName),
			orDash(f.Phone),
			f.CreatedAt.Format("2006-01-02 15:04"),
			orDash(f.Message),
		})
	}

	data, err := pdf.Build(pdf.Document{
		Title:       "Feedbacklar (Optika)",
		HeaderLines: []string{"Sana: " + time.Now().Format("2006-01-02 15:04")},
		Columns: []pdf.Column{
			{Name: "Ism", Width: 130},
			{Name: "Telefon", Width: 90},
			{Name: "Sana", Width: 110},
			{Name: "Xabar", Width: 185},
		},
		Rows: rows,
	})
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("build feedback pdf", "error", err)
		return fail(c, http.StatusInternalServerError, "PDF tayyorlashda xatolik.")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="feedback.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}
