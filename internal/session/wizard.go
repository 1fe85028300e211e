// Package session holds the state the calling shell keeps between user actions:
// wallet creation wizards, the device scanner and the current configuration.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Step is a wallet creation wizard step
type Step int

const (
	StepShowMnemonic Step = iota
	StepCollectPassword
	StepExported
)

func (s Step) String() string {
	switch s {
	case StepShowMnemonic:
		return "show_mnemonic"
	case StepCollectPassword:
		return "collect_password"
	case StepExported:
		return "exported"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

var (
	ErrWrongStep       = errors.New("action not allowed at this wizard step")
	ErrSessionNotFound = errors.New("wizard session not found")
)

// MnemonicFunc generates the words shown to the user
type MnemonicFunc func() (string, error)

// Wizard is one wallet creation session. The mnemonic is generated once and
// stays the same until Restart.
type Wizard struct {
	mu          sync.Mutex
	id          string
	step        Step
	mnemonic    string
	newMnemonic MnemonicFunc
}

// NewWizard starts a session at StepShowMnemonic
func NewWizard(newMnemonic MnemonicFunc) (*Wizard, error) {
	mnemonic, err := newMnemonic()
	if err != nil {
		return nil, fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return &Wizard{
		id:          uuid.NewString(),
		step:        StepShowMnemonic,
		mnemonic:    mnemonic,
		newMnemonic: newMnemonic,
	}, nil
}

func (w *Wizard) ID() string {
	return w.id
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Mnemonic returns the session mnemonic
func (w *Wizard) Mnemonic() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mnemonic
}

// ConfirmWords moves from StepShowMnemonic to StepCollectPassword
func (w *Wizard) ConfirmWords() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepShowMnemonic {
		return fmt.Errorf("%w: confirm at %s", ErrWrongStep, w.step)
	}
	w.step = StepCollectPassword
	return nil
}

// Export runs fn with the session mnemonic and moves to StepExported only if fn succeeds.
// The session is locked while fn runs, so a second export waits and then fails.
func (w *Wizard) Export(fn func(mnemonic string) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepCollectPassword {
		return fmt.Errorf("%w: export at %s", ErrWrongStep, w.step)
	}
	if err := fn(w.mnemonic); err != nil {
		return err
	}
	w.step = StepExported
	w.mnemonic = ""
	return nil
}

// Restart generates a new mnemonic and goes back to StepShowMnemonic.
// An exported session cannot be restarted.
func (w *Wizard) Restart() error {
	mnemonic, err := w.newMnemonic()
	if err != nil {
		return fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepExported {
		return fmt.Errorf("%w: restart at %s", ErrWrongStep, w.step)
	}
	w.mnemonic = mnemonic
	w.step = StepShowMnemonic
	return nil
}

// Wizards is a registry of sessions keyed by id
type Wizards struct {
	mu          sync.Mutex
	sessions    map[string]*Wizard
	newMnemonic MnemonicFunc
}

func NewWizards(newMnemonic MnemonicFunc) *Wizards {
	return &Wizards{
		sessions:    make(map[string]*Wizard),
		newMnemonic: newMnemonic,
	}
}

// Start creates and registers a new wizard
func (r *Wizards) Start() (*Wizard, error) {
	w, err := NewWizard(r.newMnemonic)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.sessions[w.ID()] = w
	r.mu.Unlock()
	return w, nil
}

// Get returns the wizard with id or ErrSessionNotFound
func (r *Wizards) Get(id string) (*Wizard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return w, nil
}

// Discard drops a session, e.g. when the user navigates away
func (r *Wizards) Discard(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Wizards) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
