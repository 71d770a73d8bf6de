package stats

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/memewire/internal/counter"
	"github.com/verte-zerg/memewire/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "memewire.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	now := time.Now()
	values := map[string]string{
		counter.MemesKey:     "12345",
		counter.ViewsKey:     "7",
		counter.LastVisitKey: now.Add(-3 * time.Hour).UTC().Format(time.RFC3339),
	}
	for k, v := range values {
		if err := st.Set(ctx, k, v); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	report, err := BuildReport(ctx, st, now)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	want := []Row{
		{Label: "Views", Value: "7", Updated: "now"},
		{Label: "Last visit", Value: "3 hours ago", Updated: "now"},
		{Label: "Memes generated", Value: "12,345", Updated: "now"},
	}
	if len(report.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(report.Rows))
	}
	for i, row := range want {
		if report.Rows[i] != row {
			t.Fatalf("row %d: expected %+v, got %+v", i, row, report.Rows[i])
		}
	}
}

func TestBuildReportKeepsUnknownValues(t *testing.T) {
	now := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	l := fakeLister{items: []store.Item{{Key: "custom", Value: "not a number", UpdatedAt: now.Add(-2 * time.Minute)}}}
	report, err := BuildReport(context.Background(), l, now)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if got := report.Rows[0]; got.Label != "custom" || got.Value != "not a number" || got.Updated != "2 minutes ago" {
		t.Fatalf("unexpected row %+v", got)
	}
}

func TestBuildReportWrapsListError(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := BuildReport(context.Background(), fakeLister{err: boom}, time.Now())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	report := Report{Rows: []Row{{Label: "Memes generated", Value: "8,913", Updated: "now"}}}
	if err := Render(&buf, report); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "Counter") || lines[1] != "Memes generated  8,913  now" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if err := Render(&buf, Report{}); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !strings.Contains(buf.String(), "No stats yet") {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}

type fakeLister struct {
	items []store.Item
	err   error
}

func (f fakeLister) List(context.Context) ([]store.Item, error) {
	return f.items, f.err
}
