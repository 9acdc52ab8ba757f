package domain

import (
	"testing"
)

func TestRegistration_Transitions(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		canCheckIn  bool
		canComplete bool
		canCancel   bool
		terminal    bool
	}{
		{
			name:       "Registered can check in or cancel",
			status:     RegistrationStatusRegistered,
			canCheckIn: true,
			canCancel:  true,
		},
		{
			name:        "Checked in can complete or cancel",
			status:      RegistrationStatusCheckedIn,
			canComplete: true,
			canCancel:   true,
		},
		{
			name:     "Completed is terminal",
			status:   RegistrationStatusCompleted,
			terminal: true,
		},
		{
			name:     "Cancelled is terminal",
			status:   RegistrationStatusCancelled,
			terminal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Registration{Status: tt.status}
			if r.CanCheckIn() != tt.canCheckIn {
				t.Errorf("CanCheckIn() = %v, want %v", r.CanCheckIn(), tt.canCheckIn)
			}
			if r.CanComplete() != tt.canComplete {
				t.Errorf("CanComplete() = %v, want %v", r.CanComplete(), tt.canComplete)
			}
			if r.CanCancel() != tt.canCancel {
				t.Errorf("CanCancel() = %v, want %v", r.CanCancel(), tt.canCancel)
			}
			if r.Terminal() != tt.terminal {
				t.Errorf("Terminal() = %v, want %v", r.Terminal(), tt.terminal)
			}
		})
	}
}

func TestRegistration_TerminalStatesAllowNothing(t *testing.T) {
	for _, status := range []string{RegistrationStatusCompleted, RegistrationStatusCancelled} {
		r := &Registration{Status: status}
		if r.CanCheckIn() || r.CanComplete() || r.CanCancel() {
			t.Errorf("status %s should not allow any transition", status)
		}
	}
}
