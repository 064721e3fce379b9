package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(44)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	statusIdle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	statusDrag    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	statusUnknown = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff00ff"))
)

// SliderBar renders value's position inside [min, max] as a fixed-width bar.
func SliderBar(value, min, max float64, width int) string {
	ratio := 0.0
	if max > min {
		ratio = (value - min) / (max - min)
	}
	if ratio > 1 {
		ratio = 1
	} else if ratio < 0 || ratio != ratio {
		ratio = 0
	}
	filled := int(ratio*float64(width) + 0.5)
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
