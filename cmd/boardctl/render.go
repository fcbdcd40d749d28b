package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	primaryColor = lipgloss.Color("#0969DA")
	accentColor  = lipgloss.Color("#2DA44E")
	busColor     = lipgloss.Color("#FFA657")
	errorColor   = lipgloss.Color("#CF222E")
	dimColor     = lipgloss.Color("#6E7681")

	TitleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Padding(0, 1)
	RideStyle   = lipgloss.NewStyle().Foreground(accentColor).Padding(0, 1)
	BusStyle    = lipgloss.NewStyle().Foreground(busColor).Padding(0, 1)
	DimStyle    = lipgloss.NewStyle().Foreground(dimColor)
	ErrorStyle  = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
)

func renderBoard(b board, width int) string {
	dest := b.Destination
	if dest == "" {
		dest = "all"
	}
	title := TitleStyle.Render(fmt.Sprintf("Board %s  %s-%s  → %s", b.Date, b.From, b.To, dest))

	if len(b.Items) == 0 {
		return title + "\n" + DimStyle.Render("no rides or buses in this window")
	}

	rows := make([][]string, 0, len(b.Items))
	for _, it := range b.Items {
		rows = append(rows, boardRow(it, b.IsToday))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(DimStyle).
		Width(width).
		Headers("TIME", "IN", "TYPE", "ROUTE", "DETAILS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			if row >= 0 && row < len(b.Items) && b.Items[row].Type == "bus" {
				return BusStyle
			}
			return RideStyle
		})

	return title + "\n" + t.Render()
}

func boardRow(it boardItem, isToday bool) []string {
	in := ""
	if isToday && it.MinutesUntil != nil {
		in = countdown(*it.MinutesUntil)
	}
	switch {
	case it.Ride != nil:
		r := it.Ride
		return []string{it.SortTime, in, r.Kind, r.Origin + " → " + r.Destination,
			fmt.Sprintf("%s, %d seats, %s", r.PosterName, r.Seats, r.Phone)}
	case it.Bus != nil:
		l := it.Bus.Line
		return []string{it.SortTime, in, "bus " + l.LineID, l.Origin + " → " + l.Destination, l.Operator}
	}
	return []string{it.SortTime, in, it.Type, "", ""}
}

func countdown(m int) string {
	switch {
	case m < 0:
		return "left"
	case m < 60:
		return fmt.Sprintf("%dm", m)
	case m%60 == 0:
		return fmt.Sprintf("%dh", m/60)
	default:
		return fmt.Sprintf("%dh%02dm", m/60, m%60)
	}
}
