package handlers

import (
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nfnt/resize"

	"github.com/davronbekov/optika-orders/internal/logging"
)

const maxUploadBytes = 10 << 20

// UploadHandler stores product photos posted from the category pages.
type UploadHandler struct {
	Dir string
}

// Upload accepts a multipart image, scales it down to 800px width and
// stores it as a JPEG under a random name. The response carries the
// public path to put on the product row.
func (h *UploadHandler) Upload(c echo.Context) error {
	header, err := c.FormFile("image")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Rasm tanlanmadi.")
	}
	if header.Size > maxUploadBytes {
		return fail(c, http.StatusBadRequest, "Rasm 10MB dan katta.")
	}

	file, err := header.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "Rasm ochilmadi.")
	}
	defer file.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return fail(c, http.StatusBadRequest, "Faqat PNG, JPG, JPEG qabul qilinadi.")
	}
	if err != nil {
		return fail(c, http.StatusBadRequest, "Rasm o‘qilmadi.")
	}

	scaled := resize.Resize(800, 0, img, resize.Lanczos3)

	filename := uuid.New().String() + ".jpg"
	path := filepath.Join(h.Dir, filename)

	out, err := os.Create(path)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("create upload file",
			"path", path, "error", err)
		return fail(c, http.StatusInternalServerError, "Rasm saqlanmadi.")
	}
	defer out.Close()

	if err := jpeg.Encode(out, scaled, &jpeg.Options{Quality: 80}); err != nil {
		logging.FromContext(c.Request().Context()).Error("encode upload",
			"path", path, "error", err)
		return fail(c, http.StatusInternalServerError, "Rasm saqlanmadi.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"path":    "/static/uploads/" + filename,
	})
}
