package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/lily-wallet-setup/bitcoin"
	"github.com/AlexZinkM/lily-wallet-setup/internal/logging"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"

	"golang.org/x/sync/semaphore"
)

// ScanState is the enumeration state of a Scanner
type ScanState int

const (
	ScanIdle ScanState = iota
	Scanning
	ScanReady
)

func (s ScanState) String() string {
	switch s {
	case ScanIdle:
		return "idle"
	case Scanning:
		return "scanning"
	case ScanReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrScanInProgress   = errors.New("scan already in progress")
	ErrDeviceActionBusy = errors.New("another device action is in progress")
	ErrNoSuchDevice     = errors.New("no unconfigured device at this index")
)

// DeviceAction configures one device and returns what it imported
type DeviceAction func(ctx context.Context, device model.Device) (model.ImportedDevice, error)

// Scanner tracks configured and detected devices. One scan and one device
// action may be in flight at a time; extra requests are rejected, not queued.
type Scanner struct {
	enumerator bitcoin.Enumerator
	threshold  int
	action     *semaphore.Weighted

	mu           sync.Mutex
	state        ScanState
	configured   []model.ImportedDevice
	unconfigured []model.Device
	active       int
}

// NewScanner creates a Scanner. Scanning stops being offered once threshold
// devices are configured; threshold <= 0 means no limit.
func NewScanner(enumerator bitcoin.Enumerator, threshold int) *Scanner {
	return &Scanner{
		enumerator:   enumerator,
		threshold:    threshold,
		action:       semaphore.NewWeighted(1),
		configured:   []model.ImportedDevice{},
		unconfigured: []model.Device{},
		active:       -1,
	}
}

// Scan enumerates devices and stores those not configured yet.
// Enumeration errors leave an empty list and are returned to the caller.
func (s *Scanner) Scan(ctx context.Context) ([]model.Device, error) {
	s.mu.Lock()
	if s.state == Scanning {
		s.mu.Unlock()
		return nil, ErrScanInProgress
	}
	s.state = Scanning
	configured := s.configuredDevicesLocked()
	s.mu.Unlock()

	unconfigured, err := bitcoin.ScanDevices(ctx, s.enumerator, configured)

	s.mu.Lock()
	defer s.mu.Unlock()
	// devices configured while the scan ran must not reappear
	s.unconfigured = bitcoin.Reconcile(s.configuredDevicesLocked(), unconfigured)
	s.state = ScanReady
	return cloneDevices(s.unconfigured), err
}

// CanScan is false while scanning or once enough devices are configured
func (s *Scanner) CanScan() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Scanning {
		return false
	}
	return s.threshold <= 0 || len(s.configured) < s.threshold
}

func (s *Scanner) State() ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Configured returns the imported devices in import order
func (s *Scanner) Configured() []model.ImportedDevice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ImportedDevice, len(s.configured))
	copy(out, s.configured)
	return out
}

// ConfiguredDevices returns the configured devices without their keys
func (s *Scanner) ConfiguredDevices() []model.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configuredDevicesLocked()
}

func (s *Scanner) Unconfigured() []model.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDevices(s.unconfigured)
}

// Active returns the index of the device whose action is running, or -1
func (s *Scanner) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Configure runs action on the unconfigured device at index. Only one action
// runs at a time; a concurrent call gets ErrDeviceActionBusy.
// On success the device moves from unconfigured to configured.
func (s *Scanner) Configure(ctx context.Context, index int, action DeviceAction) (model.ImportedDevice, error) {
	if !s.action.TryAcquire(1) {
		return model.ImportedDevice{}, ErrDeviceActionBusy
	}
	defer s.action.Release(1)

	s.mu.Lock()
	if index < 0 || index >= len(s.unconfigured) {
		s.mu.Unlock()
		return model.ImportedDevice{}, fmt.Errorf("%w: %d", ErrNoSuchDevice, index)
	}
	device := s.unconfigured[index]
	s.active = index
	s.mu.Unlock()

	logging.L.Info("configuring device", "fingerprint", device.Fingerprint, "model", device.Model)
	imported, err := action(ctx, device)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = -1
	if err != nil {
		logging.L.Warn("device action failed", "fingerprint", device.Fingerprint, "err", err)
		return model.ImportedDevice{}, err
	}

	imported.Device = device
	s.configured = append(s.configured, imported)
	s.unconfigured = bitcoin.Reconcile(s.configuredDevicesLocked(), s.unconfigured)
	return imported, nil
}

func (s *Scanner) configuredDevicesLocked() []model.Device {
	out := make([]model.Device, 0, len(s.configured))
	for _, d := range s.configured {
		out = append(out, d.Device)
	}
	return out
}

func cloneDevices(in []model.Device) []model.Device {
	out := make([]model.Device, len(in))
	copy(out, in)
	return out
}
