package logger

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Metric", "Value"})
	table.AddRow("Converted", "3/4")
	table.AddRow("Reduction", "61.2%")
	table.AddRow("short")

	var sb strings.Builder
	table.Render(&sb)
	out := sb.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Top rule, header, separator, three rows, bottom rule.
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	for _, want := range []string{"Metric", "Converted", "3/4", "61.2%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in table:\n%s", want, out)
		}
	}

	width := len([]rune(lines[0]))
	for i, line := range lines {
		if len([]rune(line)) != width {
			t.Fatalf("line %d width %d differs from %d:\n%s", i, len([]rune(line)), width, out)
		}
	}
}
