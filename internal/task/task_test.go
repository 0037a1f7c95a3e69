package task

import (
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"TODO", StatusPending, false},
		{"NEXT", StatusPending, false},
		{"IN_PROGRESS", StatusInProgress, false},
		{"IN-PROGRESS", StatusInProgress, false},
		{"in_progress", StatusInProgress, false},
		{"DONE", StatusComplete, false},
		{"COMPLETE", StatusComplete, false},
		{"completed", StatusComplete, false},
		{"WAITING", StatusBlocked, false},
		{"blocked", StatusBlocked, false},
		{"CANCELLED", StatusCancelled, false},
		{"canceled", StatusCancelled, false},
		{"  done  ", StatusComplete, false},
		{"", "", true},
		{"wontfix", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusInProgress, false},
		{StatusComplete, true},
		{StatusBlocked, false},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus_IsActionable(t *testing.T) {
	if !StatusPending.IsActionable() {
		t.Error("StatusPending.IsActionable() = false, want true")
	}
	for _, s := range []Status{StatusInProgress, StatusComplete, StatusBlocked, StatusCancelled} {
		if s.IsActionable() {
			t.Errorf("%s.IsActionable() = true, want false", s)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusComplete, StatusBlocked, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%s.Valid() = false, want true", s)
		}
	}
	if Status("wontfix").Valid() {
		t.Error(`Status("wontfix").Valid() = true, want false`)
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"CRITICAL", PriorityCritical, false},
		{"high", PriorityHigh, false},
		{"Medium", PriorityMedium, false},
		{"LOW", PriorityLow, false},
		{"urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePriority(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	if !(PriorityCritical.Rank() < PriorityHigh.Rank() &&
		PriorityHigh.Rank() < PriorityMedium.Rank() &&
		PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Error("priority ranks are not strictly ordered critical < high < medium < low")
	}
	if got := Priority("unknown").Rank(); got != PriorityMedium.Rank() {
		t.Errorf("unknown priority Rank() = %d, want %d", got, PriorityMedium.Rank())
	}
}
