package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	displayDateLayout     = "2006-01-02"
	displayDateTimeLayout = "2006-01-02 15:04"
)

var inputDateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

var headingStyle = lipgloss.NewStyle().Bold(true)

// parseDateTime reads a local date or date-time. RFC 3339 input keeps its
// own offset.
func parseDateTime(raw string, location *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if value, err := time.Parse(time.RFC3339, raw); err == nil {
		return value, nil
	}
	for _, layout := range inputDateLayouts {
		if value, err := time.ParseInLocation(layout, raw, location); err == nil {
			return value, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or YYYY-MM-DD HH:MM", raw)
}

func parseOptionalDate(raw string, location *time.Location) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := parseDateTime(raw, location)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func renderTable(out io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No records.")
		return
	}
	listing := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(out, listing.String())
}

func renderHeading(out io.Writer, text string) {
	fmt.Fprintln(out, headingStyle.Render(text))
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
