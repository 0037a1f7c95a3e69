package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   lipgloss.Color
	}{
		{"pending", StatusPending},
		{"in_progress", StatusInProgress},
		{"complete", StatusComplete},
		{"blocked", StatusBlocked},
		{"cancelled", StatusCancelled},
		{"anything else", MutedColor},
	}

	for _, tt := range tests {
		if got := StatusColor(tt.status); got != tt.want {
			t.Errorf("StatusColor(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"pending", "○"},
		{"in_progress", "●"},
		{"complete", "✓"},
		{"blocked", "⊘"},
		{"cancelled", "✗"},
		{"anything else", "●"},
	}

	for _, tt := range tests {
		if got := StatusIcon(tt.status); got != tt.want {
			t.Errorf("StatusIcon(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestPriorityColor(t *testing.T) {
	tests := []struct {
		priority string
		want     lipgloss.Color
	}{
		{"critical", PriorityCritical},
		{"high", PriorityHigh},
		{"medium", PriorityMedium},
		{"low", PriorityLow},
		{"anything else", MutedColor},
	}

	for _, tt := range tests {
		if got := PriorityColor(tt.priority); got != tt.want {
			t.Errorf("PriorityColor(%q) = %v, want %v", tt.priority, got, tt.want)
		}
	}
}
