// Package schedule holds the static bus timetable shown on the board.
package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
	"ridesboard/internal/utils"
)

// Defaults is the built-in timetable for Ma'ale Amos.
func Defaults() []models.BusLine {
	return []models.BusLine{
		{
			LineID:      "409",
			Operator:    "אלקטרה אפיקים",
			Origin:      "מעלה עמוס",
			Destination: "ירושלים",
			DepartureTimes: []string{"06:00", "06:45", "07:30", "08:15", "09:00", "12:00",
				"14:30", "16:15", "18:00", "20:30", "22:15"},
		},
		{
			LineID:         "409",
			Operator:       "אלקטרה אפיקים",
			Origin:         "ירושלים",
			Destination:    "מעלה עמוס",
			DepartureTimes: []string{"08:00", "10:00", "13:00", "15:00", "17:00", "19:00", "23:00"},
		},
		{
			LineID:         "365",
			Operator:       "אלקטרה אפיקים",
			Origin:         "מעלה עמוס",
			Destination:    "מיצד",
			DepartureTimes: []string{"08:30", "12:30", "16:30"},
		},
	}
}

// Load returns the defaults when path is empty, otherwise the lines read from
// the JSON file at path.
func Load(path string) ([]models.BusLine, error) {
	if strings.TrimSpace(path) == "" {
		return Defaults(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bus schedule: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a JSON array of lines. Departures are sorted.
func Parse(raw []byte) ([]models.BusLine, error) {
	var lines []models.BusLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, domain.ValidationError{Field: "bus_schedule", Msg: "invalid JSON", Err: err}
	}
	for i := range lines {
		l := &lines[i]
		l.LineID = strings.TrimSpace(l.LineID)
		if l.LineID == "" {
			return nil, domain.ValidationError{Field: "bus_schedule", Msg: fmt.Sprintf("line #%d has no id", i)}
		}
		for _, dep := range l.DepartureTimes {
			if !utils.IsHHMM(dep) {
				return nil, domain.ValidationError{Field: "bus_schedule", Msg: fmt.Sprintf("line %s: bad departure %q", l.LineID, dep)}
			}
		}
		sort.Strings(l.DepartureTimes)
	}
	return lines, nil
}
