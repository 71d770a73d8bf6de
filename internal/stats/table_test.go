package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Counter", "Value", "Updated"}
	rows := [][]string{
		{"Memes generated", "8,913", "now"},
		{"Views", "12", "2 minutes ago"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Counter          Value  Updated" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Memes generated  8,913  now" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Views               12  2 minutes ago" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableCountsWideRunes(t *testing.T) {
	lines := formatTable([]string{"A", "B"}, [][]string{{"😂", "x"}, {"ab", "y"}}, nil)
	if lines[1] != "😂  x" || lines[2] != "ab  y" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %q", lines)
	}
}
