package services

import (
	"bytes"
	"fmt"
	"strings"

	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
	"ridesboard/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// PrintService renders the board as a printable PDF timetable.
type PrintService struct {
	// FontPath is a TTF with Hebrew glyphs. Without it the core Helvetica
	// font is used and non-Latin text will not render.
	FontPath  string
	RequestID string
}

func (s PrintService) BuildFeedPDF(f models.FeedFilter, items []models.FeedItem) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Ride board", true)

	family, italic := "Helvetica", "I"
	if s.FontPath != "" {
		pdf.AddUTF8Font("board", "", s.FontPath)
		pdf.AddUTF8Font("board", "B", s.FontPath)
		family, italic = "board", ""
	}
	pdf.AddPage()

	pdf.SetFont(family, "B", 18)
	pdf.Cell(0, 10, "RIDE BOARD")
	pdf.Ln(12)

	pdf.SetFont(family, "", 11)
	dest := f.Destination
	if dest == domain.AllDestinations {
		dest = "all"
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s   Window: %s-%s   Destination: %s", f.Date, f.Window.Start, f.Window.End, dest))
	pdf.Ln(10)

	if len(items) == 0 {
		pdf.SetFont(family, italic, 11)
		pdf.Cell(0, 7, "No rides or buses in this window.")
		pdf.Ln(7)
	}

	widths := []float64{18, 22, 75, 75}
	pdf.SetFont(family, "B", 11)
	for i, h := range []string{"Time", "Type", "Route", "Details"} {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 10)
	for _, it := range items {
		row := feedRow(it)
		for i, v := range row {
			pdf.CellFormat(widths[i], 6, v, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render pdf", Err: err}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render pdf", Err: err}
	}
	utils.LogEvent(s.RequestID, "print", "feed_pdf", fmt.Sprintf("date=%s items=%d", f.Date, len(items)))

	filename := fmt.Sprintf("BOARD_%s_%s-%s.pdf", f.Date, strings.ReplaceAll(f.Window.Start, ":", ""), strings.ReplaceAll(f.Window.End, ":", ""))
	return buf.Bytes(), filename, nil
}

func feedRow(it models.FeedItem) []string {
	switch it.Kind {
	case models.FeedRide:
		r := it.Ride
		details := fmt.Sprintf("%s, %d seats, %s", r.PosterName, r.SeatCount, r.Phone)
		return []string{it.SortKey, string(r.Kind), r.Origin + " -> " + r.Destination, details}
	case models.FeedBus:
		b := it.Bus
		return []string{it.SortKey, "bus " + b.Line.LineID, b.Line.Origin + " -> " + b.Line.Destination, b.Line.Operator}
	default:
		return []string{it.SortKey, string(it.Kind), "", ""}
	}
}
