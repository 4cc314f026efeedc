package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles shared by the command summaries and the live view.
var (
	Subtle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	StatusDone    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))

	MetricValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	MetricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	Warning     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
	KeyHint     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))
)

// level styles, from low to high
var levels = [3]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")),
}

func levelStyle(norm float64) lipgloss.Style {
	switch {
	case norm > 0.7:
		return levels[2]
	case norm > 0.3:
		return levels[1]
	default:
		return levels[0]
	}
}

// GradientText colours each rune of text along a blend from start to end
// in L*a*b* space. Colours that are not #rrggbb fall back to start.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	from, errFrom := colorful.Hex(string(start))
	to, errTo := colorful.Hex(string(end))
	if errFrom != nil || errTo != nil {
		return lipgloss.NewStyle().Foreground(start).Render(text)
	}

	var sb strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.BlendLab(to, t).Clamped().Hex()
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(r)))
	}
	return sb.String()
}

// ProgressBar renders fraction (clamped to 0..1) as a bar of width cells.
func ProgressBar(fraction float64, width int) string {
	fraction = math.Max(0, math.Min(fraction, 1))
	filled := int(fraction * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return levelStyle(fraction).Render(bar)
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// SparklineChart renders values as one bar per cell. Longer series are
// split into width buckets and each bucket shows its largest value.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	buckets := values
	if len(values) > width {
		buckets = make([]float64, width)
		for i := range buckets {
			lo, hi := i*len(values)/width, (i+1)*len(values)/width
			buckets[i] = values[lo]
			for _, v := range values[lo:hi] {
				buckets[i] = math.Max(buckets[i], v)
			}
		}
	}

	lo, hi := buckets[0], buckets[0]
	for _, v := range buckets {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	for _, v := range buckets {
		norm := (v - lo) / span
		idx := int(norm * float64(len(sparks)-1))
		idx = max(0, min(idx, len(sparks)-1))
		sb.WriteString(levelStyle(norm).Render(string(sparks[idx])))
	}
	return sb.String()
}

// Separator is a muted rule of width cells with a centre mark.
func Separator(width int) string {
	if width < 7 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	left := (width - 3) / 2
	return Subtle.Render(strings.Repeat("─", left) + " ◆ " + strings.Repeat("─", width-3-left))
}
