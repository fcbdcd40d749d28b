// Command boardctl prints the merged ride and bus board of a running
// ridesboard server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

func main() {
	var (
		addr = flag.String("addr", "http://localhost:8080", "ridesboard server base URL")
		dest = flag.String("dest", "", "destination filter (empty shows all)")
		date = flag.String("date", "", "date YYYY-MM-DD (default today on the server)")
		from = flag.String("from", "", "window start HH:mm (default now)")
		to   = flag.String("to", "", "window end HH:mm (default 23:59)")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	board, err := fetchBoard(ctx, http.DefaultClient, *addr, boardQuery{Destination: *dest, Date: *date, From: *from, To: *to})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}

	width := 100
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	fmt.Println(renderBoard(board, width))
}

type boardQuery struct {
	Destination, Date, From, To string
}

func (q boardQuery) values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val = strings.TrimSpace(val); val != "" {
			v.Set(k, val)
		}
	}
	set("destination", q.Destination)
	set("date", q.Date)
	set("from", q.From)
	set("to", q.To)
	return v
}

// board mirrors the /api/feed response.
type board struct {
	Destination string      `json:"destination"`
	Date        string      `json:"date"`
	From        string      `json:"from"`
	To          string      `json:"to"`
	IsToday     bool        `json:"isToday"`
	Items       []boardItem `json:"items"`
}

type boardItem struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	SortTime     string `json:"sortTime"`
	MinutesUntil *int   `json:"minutesUntil"`
	Ride         *struct {
		Kind        string `json:"type"`
		PosterName  string `json:"driverName"`
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
		Seats       int    `json:"seats"`
		Phone       string `json:"phone"`
	} `json:"ride"`
	Bus *struct {
		Line struct {
			LineID      string `json:"line"`
			Operator    string `json:"operator"`
			Origin      string `json:"origin"`
			Destination string `json:"destination"`
		} `json:"line"`
	} `json:"bus"`
}

func fetchBoard(ctx context.Context, client *http.Client, base string, q boardQuery) (board, error) {
	u := strings.TrimRight(base, "/") + "/api/feed"
	if enc := q.values().Encode(); enc != "" {
		u += "?" + enc
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return board{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return board{}, fmt.Errorf("fetch board: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return board{}, fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
	}
	var b board
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return board{}, fmt.Errorf("decode board: %w", err)
	}
	return b, nil
}
