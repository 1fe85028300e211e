package session

import (
	"sync"

	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
)

// ConfigStore holds the in-memory configuration of the running shell
type ConfigStore struct {
	mu  sync.RWMutex
	cfg model.ConfigObject
}

func NewConfigStore(cfg model.ConfigObject) *ConfigStore {
	return &ConfigStore{cfg: cfg.Clone()}
}

// Get returns a copy of the current configuration
func (s *ConfigStore) Get() model.ConfigObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Replace swaps in cfg, e.g. after opening a config file
func (s *ConfigStore) Replace(cfg model.ConfigObject) {
	s.mu.Lock()
	s.cfg = cfg.Clone()
	s.mu.Unlock()
}

// Update runs fn on a copy of the current configuration while holding the
// write lock and stores its result. On error the configuration is unchanged.
func (s *ConfigStore) Update(fn func(cfg model.ConfigObject) (model.ConfigObject, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.cfg.Clone())
	if err != nil {
		return err
	}
	s.cfg = next.Clone()
	return nil
}
