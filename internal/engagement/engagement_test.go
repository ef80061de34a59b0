package engagement

import (
	"errors"
	"testing"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		current   Action
		requested Action
		want      error
	}{
		{"cast wag fresh", ActionNone, ActionWag, nil},
		{"cast growl fresh", ActionNone, ActionGrowl, nil},
		{"repeat wag", ActionWag, ActionWag, ErrDuplicate},
		{"repeat growl", ActionGrowl, ActionGrowl, ErrDuplicate},
		{"wag over growl", ActionGrowl, ActionWag, ErrConflict},
		{"growl over wag", ActionWag, ActionGrowl, ErrConflict},
		{"retract wag", ActionWag, ActionNone, nil},
		{"retract growl", ActionGrowl, ActionNone, nil},
		{"retract nothing", ActionNone, ActionNone, ErrNotEngaged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decide(tt.current, tt.requested)
			if !errors.Is(got, tt.want) {
				t.Errorf("decide(%q, %q) = %v, want %v", tt.current, tt.requested, got, tt.want)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{"wag", ActionWag, false},
		{"growl", ActionGrowl, false},
		{"", ActionNone, true},
		{"bark", ActionNone, true},
		{"WAG", ActionNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownAction) {
					t.Errorf("ParseAction(%q) err = %v, want ErrUnknownAction", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAction(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAction(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
