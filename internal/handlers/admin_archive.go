package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/davronbekov/optika-orders/internal/logging"
	"github.com/davronbekov/optika-orders/internal/models"
	"github.com/davronbekov/optika-orders/internal/pdf"
	"github.com/davronbekov/optika-orders/internal/telegram"
	"github.com/davronbekov/optika-orders/internal/util"
)

// AdminArchiveHandler serves the archive dashboard API. Sender may be
// nil when no bot token is configured.
type AdminArchiveHandler struct {
	DB     *gorm.DB
	Sender telegram.DocumentSender
}

// List returns archives newest first. Optional page/size query params
// window the result, without them the whole set comes back.
func (h *AdminArchiveHandler) List(c echo.Context) error {
	q := h.DB.Model(&models.Archive{}).Order("created_at DESC")
	if page, _ := strconv.Atoi(c.QueryParam("page")); page > 0 {
		size, _ := strconv.Atoi(c.QueryParam("size"))
		offset, limit := util.Calculate(page, size)
		q = q.Offset(offset).Limit(limit)
	}

	var archives []models.Archive
	if err := q.Find(&archives).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	out := make([]echo.Map, 0, len(archives))
	for _, a := range archives {
		out = append(out, echo.Map{
			"id":               a.ID,
			"branch":           a.Branch,
			"userFullName":     a.UserFullName,
			"createdAt":        a.CreatedAt.Format(time.RFC3339),
			"isTelegramShared": a.IsTelegramShared,
			"isPdfDownloaded":  a.IsPdfDownloaded,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Items returns the rows of one archive. A bad or unknown id yields an
// empty list, not an error.
func (h *AdminArchiveHandler) Items(c echo.Context) error {
	out := make([]echo.Map, 0)

	archiveID, _ := strconv.Atoi(c.QueryParam("archiveId"))
	if archiveID <= 0 {
		return c.JSON(http.StatusOK, out)
	}

	var items []models.ArchiveItem
	if err := h.DB.Where("archive_id = ?", archiveID).Order("id").Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	for _, it := range items {
		out = append(out, echo.Map{
			"category": it.Category,
			"model":    it.Model,
			"diopter":  it.Diopter,
			"quantity": it.Quantity,
			"note":     it.Note,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Delete removes one archive together with its items.
func (h *AdminArchiveHandler) Delete(c echo.Context) error {
	var req struct {
		ArchiveID uint `json:"archive_id"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "JSON xato.")
	}
	if req.ArchiveID == 0 {
		return fail(c, http.StatusBadRequest, "ArchiveId xato.")
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("archive_id = ?", req.ArchiveID).Delete(&models.ArchiveItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", req.ArchiveID).Delete(&models.Archive{}).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Clear wipes every archive.
func (h *AdminArchiveHandler) Clear(c echo.Context) error {
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.ArchiveItem{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Archive{}).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Barcha arxivlar o‘chirildi."})
}

// allArchiveRows flattens every archive into PDF rows. A separator row
// carrying branch, name and date opens each archive's block.
func (h *AdminArchiveHandler) allArchiveRows() ([][]string, error) {
	var archives []models.Archive
	if err := h.DB.Order("created_at DESC").Find(&archives).Error; err != nil {
		return nil, err
	}

	var rows [][]string
	for _, a := range archives {
		sep := orDash(a.Branch) + " | " + orDash(a.UserFullName) + " | " +
			a.CreatedAt.Format("2006-01-02 15:04")
		rows = append(rows, []string{"---", "---", "---", "---", sep})

		var items []models.ArchiveItem
		if err := h.DB.Where("archive_id = ?", a.ID).Order("id").Find(&items).Error; err != nil {
			return nil, err
		}
		for _, it := range items {
			rows = append(rows, []string{
				orDash(it.Category),
				orDash(it.Model),
				orDash(it.Diopter),
				strconv.Itoa(it.Quantity),
				orDash(it.Note),
			})
		}
	}
	return rows, nil
}

// DownloadAllPDF renders every archive into one PDF and marks them all
// downloaded.
func (h *AdminArchiveHandler) DownloadAllPDF(c echo.Context) error {
	rows, err := h.allArchiveRows()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	data, err := pdf.Build(pdf.Document{
		Title:       "Barcha Arxiv Buyurtmalar (Optika)",
		HeaderLines: []string{"Sana: " + time.Now().Format("2006-01-02 15:04")},
		Columns:     orderColumns(),
		Rows:        rows,
	})
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("build archives pdf", "error", err)
		return fail(c, http.StatusInternalServerError, "PDF tayyorlashda xatolik.")
	}

	if err := h.DB.Model(&models.Archive{}).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Update("is_pdf_downloaded", true).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="all_archives.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// ShareTelegram sends one PDF of every archive to all stored chats and
// reports how many deliveries went through.
func (h *AdminArchiveHandler) ShareTelegram(c echo.Context) error {
	if h.Sender == nil {
		return fail(c, http.StatusInternalServerError,
			"TELEGRAM_BOT_TOKEN topilmadi. .env ga TELEGRAM_BOT_TOKEN qo‘shing.")
	}

	var chats []models.TelegramChat
	if err := h.DB.Find(&chats).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if len(chats) == 0 {
		return fail(c, http.StatusBadRequest, "Telegram chat IDlar yo‘q.")
	}

	rows, err := h.allArchiveRows()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	data, err := pdf.Build(pdf.Document{
		Title:       "Arxiv Buyurtmalar (Optika)",
		HeaderLines: []string{"Sana: " + time.Now().Format("2006-01-02 15:04")},
		Columns:     orderColumns(),
		Rows:        rows,
	})
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("build archives pdf", "error", err)
		return fail(c, http.StatusInternalServerError, "PDF tayyorlashda xatolik.")
	}

	log := logging.FromContext(c.Request().Context())
	sent := 0
	for _, ch := range chats {
		if err := h.Sender.SendDocument(ch.ChatID, "archives.pdf", data, "Optika buyurtmalar (PDF)"); err != nil {
			log.Warn("telegram delivery failed", "chat_id", ch.ChatID, "error", err)
			continue
		}
		sent++
	}
	if sent == 0 {
		return fail(c, http.StatusInternalServerError, "Telegramga yuborilmadi.")
	}

	if err := h.DB.Model(&models.Archive{}).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Update("is_telegram_shared", true).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Telegramga yuborildi (%d/%d)", sent, len(chats)),
	})
}

// ExportExcel writes every archive and its items into one sheet.
func (h *AdminArchiveHandler) ExportExcel(c echo.Context) error {
	var archives []models.Archive
	if err := h.DB.Order("created_at DESC").Find(&archives).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Arxivlar")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "excel error")
	}

	headers := []string{
		"ArxivId", "Filial", "Ism", "Sana",
		"Kategoriya", "Model", "Dioptriya", "Miqdor", "Izoh",
	}
	headerRow := sheet.AddRow()
	for _, hdr := range headers {
		headerRow.AddCell().SetValue(hdr)
	}

	for _, a := range archives {
		var items []models.ArchiveItem
		if err := h.DB.Where("archive_id = ?", a.ID).Order("id").Find(&items).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "database error")
		}
		for _, it := range items {
			row := sheet.AddRow()
			row.AddCell().SetValue(int(a.ID))
			row.AddCell().SetValue(a.Branch)
			row.AddCell().SetValue(a.UserFullName)
			row.AddCell().SetValue(a.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(it.Category)
			row.AddCell().SetValue(it.Model)
			row.AddCell().SetValue(it.Diopter)
			row.AddCell().SetValue(it.Quantity)
			row.AddCell().SetValue(it.Note)
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=archives.xlsx")
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	if err := file.Write(c.Response()); err != nil {
		logging.FromContext(c.Request().Context()).Error("write excel", "error", err)
	}
	return nil
}
