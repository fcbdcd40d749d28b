package schedule

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"ridesboard/internal/domain"
	"ridesboard/internal/utils"
)

func TestDefaultsAreWellFormed(t *testing.T) {
	lines := Defaults()
	if len(lines) != 3 {
		t.Fatalf("expected 3 default lines, got %d", len(lines))
	}
	for _, l := range lines {
		for i, dep := range l.DepartureTimes {
			if !utils.IsHHMM(dep) {
				t.Fatalf("line %s has bad departure %q", l.LineID, dep)
			}
			if i > 0 && l.DepartureTimes[i-1] >= dep {
				t.Fatalf("line %s departures not ascending at %d", l.LineID, i)
			}
		}
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	lines, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(lines, Defaults()) {
		t.Fatalf("expected defaults")
	}
}

func TestLoadFileSortsDepartures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.json")
	body := `[{"line":"1","operator":"op","origin":"A","destination":"B","schedule":["09:00","07:15"]}]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(lines) != 1 || !reflect.DeepEqual(lines[0].DepartureTimes, []string{"07:15", "09:00"}) {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"missing id":    `[{"line":" ","schedule":["07:00"]}]`,
		"bad departure": `[{"line":"1","schedule":["7:00"]}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
