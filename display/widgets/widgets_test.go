package widgets

import (
	"strings"
	"testing"
)

func TestRenderSparklineScaling(t *testing.T) {
	got := RenderSparkline(SparklineConfig{Data: []float64{0, 50, 100}, Max: 100})
	want := "▁▄█"
	if got != want {
		t.Errorf("RenderSparkline() = %q, want %q", got, want)
	}
}

func TestRenderSparklineEmpty(t *testing.T) {
	if got := RenderSparkline(SparklineConfig{}); got != "" {
		t.Errorf("empty data rendered %q, want empty", got)
	}
}

func TestRenderSparklineWindowAndPadding(t *testing.T) {
	// Wider than data: left-padded so the newest point is right-aligned.
	got := RenderSparkline(SparklineConfig{Data: []float64{100}, Width: 4, Max: 100})
	if got != "   █" {
		t.Errorf("padded sparkline = %q, want %q", got, "   █")
	}

	// Narrower than data: only the newest points survive.
	got = RenderSparkline(SparklineConfig{Data: []float64{0, 0, 100, 100}, Width: 2, Max: 100})
	if got != "██" {
		t.Errorf("windowed sparkline = %q, want %q", got, "██")
	}
}

func TestRenderSparklineClampsAboveMax(t *testing.T) {
	got := RenderSparkline(SparklineConfig{Data: []float64{200}, Max: 100})
	if got != "█" {
		t.Errorf("clamped sparkline = %q, want %q", got, "█")
	}
}

func TestRenderGaugeFill(t *testing.T) {
	got := RenderGauge(GaugeConfig{Width: 10, Percent: 50})
	if strings.Count(got, "█") != 5 || strings.Count(got, "░") != 5 {
		t.Errorf("gauge fill = %q, want 5 filled and 5 empty", got)
	}

	got = RenderGauge(GaugeConfig{Width: 10, Percent: 150})
	if strings.Count(got, "░") != 0 {
		t.Errorf("overfull gauge = %q, want fully filled", got)
	}
}

func TestRenderGaugeLabels(t *testing.T) {
	got := RenderGauge(GaugeConfig{Width: 4, Percent: 25, Label: "RAM", Detail: "1/4 GiB"})
	if !strings.HasPrefix(got, "RAM ") || !strings.HasSuffix(got, " 1/4 GiB") {
		t.Errorf("gauge = %q, want RAM prefix and detail suffix", got)
	}

	got = RenderGauge(GaugeConfig{Width: 4, Percent: 25, ShowPercent: true})
	if !strings.Contains(got, "25.0%") {
		t.Errorf("gauge = %q, want percent suffix", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{1 << 20, "1.00 MiB"},
		{3 << 30, "3.00 GiB"},
		{1 << 40, "1.00 TiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderTableSelection(t *testing.T) {
	cfg := DefaultTableConfig()
	cfg.Columns = []Column{{Title: "PID", Width: 5}, {Title: "NAME", Width: 10}}
	cfg.Rows = [][]string{
		{"1", "init"},
		{"2", "kthreadd"},
	}
	cfg.Selected = 1

	out := RenderTable(cfg)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if !strings.Contains(lines[0], "PID") {
		t.Errorf("header = %q, want PID title", lines[0])
	}
	if strings.HasPrefix(lines[1], ">>") {
		t.Errorf("unselected row carries marker: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], ">> ") {
		t.Errorf("selected row = %q, want >> marker", lines[2])
	}
}

func TestRenderTableTruncatesLongCells(t *testing.T) {
	cfg := DefaultTableConfig()
	cfg.Columns = []Column{{Title: "NAME", Width: 5}}
	cfg.Rows = [][]string{{"verylongname"}}

	out := RenderTable(cfg)
	if !strings.Contains(out, "very…") {
		t.Errorf("table = %q, want truncated cell", out)
	}
}

func TestVisibleWindowFollowsSelection(t *testing.T) {
	tests := []struct {
		total, selected, maxRows int
		wantFirst, wantLast      int
	}{
		{10, 0, 4, 0, 4},
		{10, 5, 4, 2, 6},
		{10, 9, 4, 6, 10},
		{3, 1, 10, 0, 3},
		{10, -1, 4, 0, 4},
	}
	for _, tt := range tests {
		first, last := visibleWindow(tt.total, tt.selected, tt.maxRows)
		if first != tt.wantFirst || last != tt.wantLast {
			t.Errorf("visibleWindow(%d, %d, %d) = [%d, %d), want [%d, %d)",
				tt.total, tt.selected, tt.maxRows, first, last, tt.wantFirst, tt.wantLast)
		}
	}
}

func TestRenderStatusLine(t *testing.T) {
	if got := RenderStatusLine("", false, "fallback"); got != "fallback" {
		t.Errorf("fallback = %q", got)
	}
	if got := RenderStatusLine("done", false, "fallback"); !strings.Contains(got, "done") {
		t.Errorf("message = %q, want to contain done", got)
	}
}
