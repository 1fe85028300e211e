package session

import (
	"errors"
	"fmt"
	"testing"
)

func counterMnemonic() MnemonicFunc {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("mnemonic-%d", n), nil
	}
}

func TestWizardMnemonicStable(t *testing.T) {
	w, err := NewWizard(counterMnemonic())
	if err != nil {
		t.Fatalf("NewWizard: %v", err)
	}
	first := w.Mnemonic()
	for i := 0; i < 3; i++ {
		if got := w.Mnemonic(); got != first {
			t.Fatalf("mnemonic changed: %q -> %q", first, got)
		}
	}
	if err := w.ConfirmWords(); err != nil {
		t.Fatalf("ConfirmWords: %v", err)
	}
	if got := w.Mnemonic(); got != first {
		t.Fatalf("mnemonic changed after confirm: %q", got)
	}

	if err := w.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if w.Mnemonic() == first || w.Step() != StepShowMnemonic {
		t.Fatalf("Restart did not reset the session")
	}
}

func TestWizardSteps(t *testing.T) {
	w, err := NewWizard(counterMnemonic())
	if err != nil {
		t.Fatalf("NewWizard: %v", err)
	}

	exported := func(string) error { return nil }
	if err := w.Export(exported); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("export before confirm: %v", err)
	}

	if err := w.ConfirmWords(); err != nil {
		t.Fatalf("ConfirmWords: %v", err)
	}
	if err := w.ConfirmWords(); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("second confirm: %v", err)
	}

	failure := errors.New("disk full")
	if err := w.Export(func(string) error { return failure }); !errors.Is(err, failure) {
		t.Fatalf("expected export failure, got %v", err)
	}
	if w.Step() != StepCollectPassword {
		t.Fatalf("failed export changed step to %s", w.Step())
	}

	var seen string
	if err := w.Export(func(m string) error { seen = m; return nil }); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if seen != "mnemonic-1" {
		t.Fatalf("export saw %q", seen)
	}
	if w.Step() != StepExported || w.Mnemonic() != "" {
		t.Fatalf("unexpected state after export: %s %q", w.Step(), w.Mnemonic())
	}
	if err := w.Export(exported); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("second export: %v", err)
	}
	if err := w.Restart(); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("restart after export: %v", err)
	}
	if w.Step() != StepExported {
		t.Fatalf("restart changed exported session to %s", w.Step())
	}
}

func TestNewWizardMnemonicError(t *testing.T) {
	_, err := NewWizard(func() (string, error) { return "", errors.New("no entropy") })
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestWizardsRegistry(t *testing.T) {
	r := NewWizards(counterMnemonic())
	a, err := r.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	b, err := r.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if a.ID() == b.ID() || a.Mnemonic() == b.Mnemonic() {
		t.Fatalf("sessions are not independent")
	}

	got, err := r.Get(a.ID())
	if err != nil || got != a {
		t.Fatalf("Get = %v, %v", got, err)
	}
	r.Discard(a.ID())
	if _, err := r.Get(a.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d", r.Len())
	}
}

func TestStepString(t *testing.T) {
	if StepCollectPassword.String() != "collect_password" || Step(9).String() != "step(9)" {
		t.Fatalf("unexpected step names")
	}
}
