package handlers

import (
	"net/http"
	"strings"

	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
	"ridesboard/internal/http/middleware"
	"ridesboard/internal/utils"

	"github.com/gin-gonic/gin"
)

const endOfDay = "23:59"

// FeedItemDTO is a merged board row with display helpers.
type FeedItemDTO struct {
	models.FeedItem
	MinutesUntil *int   `json:"minutesUntil,omitempty"`
	MapsURL      string `json:"mapsUrl,omitempty"`
}

type feedResponse struct {
	Destination string        `json:"destination"`
	Date        string        `json:"date"`
	From        string        `json:"from"`
	To          string        `json:"to"`
	IsToday     bool          `json:"isToday"`
	Count       int           `json:"count"`
	Items       []FeedItemDTO `json:"items"`
}

// parseFeedQuery applies the board defaults: every destination, today, from
// now until end of day.
func (a *API) parseFeedQuery(c *gin.Context) (models.FeedFilter, bool, bool) {
	now := a.now()
	today := utils.FormatDate(now, now.Location())

	f := models.FeedFilter{
		Destination: strings.TrimSpace(c.DefaultQuery("destination", domain.AllDestinations)),
		Date:        strings.TrimSpace(c.DefaultQuery("date", today)),
		Window: models.TimeWindow{
			Start: strings.TrimSpace(c.DefaultQuery("from", utils.FormatHM(now, now.Location()))),
			End:   strings.TrimSpace(c.DefaultQuery("to", endOfDay)),
		},
	}
	if f.Destination == "" {
		f.Destination = domain.AllDestinations
	}
	if !utils.IsDate(f.Date) {
		respondError(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD", gin.H{"date": f.Date})
		return f, false, false
	}
	if !utils.IsHHMM(f.Window.Start) || !utils.IsHHMM(f.Window.End) {
		respondError(c, http.StatusBadRequest, "validation_error", "from and to must be HH:mm", gin.H{"from": f.Window.Start, "to": f.Window.End})
		return f, false, false
	}
	return f, f.Date == today, true
}

func (a *API) GetFeed(c *gin.Context) {
	f, isToday, ok := a.parseFeedQuery(c)
	if !ok {
		return
	}
	items, err := a.Feed.Build(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	now := a.now()
	out := make([]FeedItemDTO, 0, len(items))
	for _, it := range items {
		dto := FeedItemDTO{FeedItem: it}
		if isToday {
			if m, ok := utils.MinutesUntil(it.SortKey, now); ok {
				dto.MinutesUntil = &m
			}
		}
		switch {
		case it.Ride != nil:
			dto.MapsURL = utils.GoogleMapsLink(it.Ride.Origin, it.Ride.Destination, utils.ModeDriving)
		case it.Bus != nil:
			dto.MapsURL = utils.GoogleMapsLink(it.Bus.Line.Origin, it.Bus.Line.Destination, utils.ModeTransit)
		}
		out = append(out, dto)
	}

	c.JSON(http.StatusOK, feedResponse{
		Destination: f.Destination,
		Date:        f.Date,
		From:        f.Window.Start,
		To:          f.Window.End,
		IsToday:     isToday,
		Count:       len(out),
		Items:       out,
	})
}

// PrintFeed renders the same board as GetFeed into a PDF (inline).
func (a *API) PrintFeed(c *gin.Context) {
	f, _, ok := a.parseFeedQuery(c)
	if !ok {
		return
	}
	items, err := a.Feed.Build(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	svc := a.Print
	svc.RequestID = middleware.GetRequestID(c)
	pdfBytes, filename, err := svc.BuildFeedPDF(f, items)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "pdf_failed", "failed to render board", nil)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (a *API) BusLines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"lines": a.Feed.BusLines()})
}
