// Package stats renders the persisted counters as a table.
package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/memewire/internal/counter"
	"github.com/verte-zerg/memewire/internal/store"
)

// Lister is the part of the store a report reads.
type Lister interface {
	List(ctx context.Context) ([]store.Item, error)
}

// Row is one rendered line of the report.
type Row struct {
	Label   string
	Value   string
	Updated string
}

// Report contains every stored value, labelled for display.
type Report struct {
	Rows []Row
}

var labels = map[string]string{
	counter.MemesKey:     "Memes generated",
	counter.ViewsKey:     "Views",
	counter.LastVisitKey: "Last visit",
}

// BuildReport loads every stored item. Relative times are measured from now.
func BuildReport(ctx context.Context, l Lister, now time.Time) (Report, error) {
	items, err := l.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list stored values: %w", err)
	}
	report := Report{Rows: make([]Row, 0, len(items))}
	for _, item := range items {
		report.Rows = append(report.Rows, Row{
			Label:   label(item.Key),
			Value:   displayValue(item, now),
			Updated: humanize.RelTime(item.UpdatedAt, now, "ago", "from now"),
		})
	}
	return report, nil
}

// Render writes the report as an aligned table.
func Render(w io.Writer, report Report) error {
	if len(report.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No stats yet. Run memewire to start counting.")
		return err
	}
	rows := make([][]string, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = []string{r.Label, r.Value, r.Updated}
	}
	for _, line := range formatTable([]string{"Counter", "Value", "Updated"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}

func displayValue(item store.Item, now time.Time) string {
	if item.Key == counter.LastVisitKey {
		at, err := time.Parse(time.RFC3339, item.Value)
		if err != nil {
			return item.Value
		}
		return humanize.RelTime(at, now, "ago", "from now")
	}
	n, err := strconv.ParseInt(item.Value, 10, 64)
	if err != nil {
		return item.Value
	}
	return humanize.Comma(n)
}
