package booking

import (
	"errors"
	"strings"
	"testing"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]string]bool{
		{model.StatusPending, model.StatusConfirmed}:   true,
		{model.StatusPending, model.StatusCancelled}:   true,
		{model.StatusConfirmed, model.StatusCompleted}: true,
		{model.StatusConfirmed, model.StatusCancelled}: true,
	}
	statuses := []string{
		model.StatusPending, model.StatusConfirmed,
		model.StatusCancelled, model.StatusCompleted,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	for _, from := range []string{model.StatusCancelled, model.StatusCompleted} {
		if !Terminal(from) {
			t.Errorf("Terminal(%s) = false, want true", from)
		}
		for _, to := range []string{
			model.StatusPending, model.StatusConfirmed,
			model.StatusCancelled, model.StatusCompleted,
		} {
			err := checkTransition(from, to)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("checkTransition(%s, %s) = %v, want ErrInvalidTransition", from, to, err)
			}
		}
	}
}

func TestCheckTransitionNamesBothStates(t *testing.T) {
	err := checkTransition(model.StatusPending, model.StatusCompleted)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	msg := err.Error()
	for _, needle := range []string{model.StatusPending, model.StatusCompleted} {
		if !strings.Contains(msg, needle) {
			t.Errorf("error %q does not name state %s", msg, needle)
		}
	}
}

func TestCheckTransitionUnknownStatus(t *testing.T) {
	if err := checkTransition(model.StatusPending, "SHIPPED"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown status, got %v", err)
	}
}

func TestActiveStatus(t *testing.T) {
	cases := map[string]bool{
		model.StatusPending:   true,
		model.StatusConfirmed: true,
		model.StatusCancelled: false,
		model.StatusCompleted: false,
	}
	for s, want := range cases {
		if got := activeStatus(s); got != want {
			t.Errorf("activeStatus(%s) = %v, want %v", s, got, want)
		}
	}
}
