// Package pdf renders titled tables onto A4 pages for order, archive
// and feedback exports.
package pdf

import (
	"bytes"
	"os"

	"github.com/go-pdf/fpdf"
)

// Column is one table column with its width in points.
type Column struct {
	Name  string
	Width float64
}

// Document is a titled table. Rows shorter than the column set are
// padded with empty cells.
type Document struct {
	Title       string
	HeaderLines []string
	Columns     []Column
	Rows        [][]string
}

// Cyrillic capable fonts tried in order. Helvetica stays the fallback
// and only covers latin text.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSansCondensed.ttf",
}

const (
	marginX   = 40.0
	marginY   = 40.0
	rowHeight = 18.0
)

// Build renders the document and returns the PDF bytes.
func Build(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	font := "Helvetica"
	for _, path := range fontCandidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		pdf.AddUTF8Font("DejaVuSans", "", path)
		if pdf.Err() {
			return nil, pdf.Error()
		}
		font = "DejaVuSans"
		break
	}

	_, pageH := pdf.GetPageSize()
	pdf.SetLineWidth(1)
	pdf.AddPage()

	y := marginY

	newPage := func() {
		pdf.AddPage()
		pdf.SetFont(font, "", 10)
		y = marginY
	}

	totalW := 0.0
	for _, col := range doc.Columns {
		totalW += col.Width
	}

	drawTableHeader := func() {
		if y > pageH-80 {
			newPage()
		}
		pdf.SetFont(font, "", 10)
		pdf.Rect(marginX, y, totalW, rowHeight, "D")
		x := marginX
		for _, col := range doc.Columns {
			pdf.Text(x+3, y+13, truncate(col.Name, 30))
			x += col.Width
		}
		y += rowHeight
	}

	pdf.SetFont(font, "", 14)
	pdf.Text(marginX, y, doc.Title)
	y += 22

	pdf.SetFont(font, "", 10)
	for _, line := range doc.HeaderLines {
		pdf.Text(marginX, y, line)
		y += 14
	}
	y += 8

	drawTableHeader()

	for _, row := range doc.Rows {
		if y > pageH-60 {
			newPage()
			drawTableHeader()
		}
		pdf.Rect(marginX, y, totalW, rowHeight, "D")
		x := marginX
		for i, col := range doc.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			// rough character fit for the column width
			limit := int(col.Width / 6)
			if limit < 10 {
				limit = 10
			}
			pdf.Text(x+3, y+13, truncate(cell, limit))
			x += col.Width
		}
		y += rowHeight
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}
