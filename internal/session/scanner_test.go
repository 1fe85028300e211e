package session

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/AlexZinkM/lily-wallet-setup/internal/client"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
)

type fakeEnumerator struct {
	mu      sync.Mutex
	devices []model.Device
	err     error
	block   chan struct{}
	started chan struct{}
}

func (f *fakeEnumerator) Enumerate(ctx context.Context) ([]model.Device, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Device(nil), f.devices...), f.err
}

func dev(fp string) model.Device {
	return model.Device{Fingerprint: fp, Model: "coldcard"}
}

func importXPub(xpub string) DeviceAction {
	return func(ctx context.Context, d model.Device) (model.ImportedDevice, error) {
		return model.ImportedDevice{XPub: xpub, DerivationPath: "m/48'/0'/0'/2'"}, nil
	}
}

func TestScannerScanAndConfigure(t *testing.T) {
	e := &fakeEnumerator{devices: []model.Device{dev("AAA"), dev("BBB")}}
	s := NewScanner(e, 3)
	ctx := context.Background()

	if s.State() != ScanIdle || !s.CanScan() {
		t.Fatalf("unexpected initial state")
	}

	got, err := s.Scan(ctx)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(got, e.devices) || s.State() != ScanReady {
		t.Fatalf("Scan = %+v (%s)", got, s.State())
	}

	imported, err := s.Configure(ctx, 0, importXPub("xpub-a"))
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if imported.Fingerprint != "AAA" || imported.XPub != "xpub-a" {
		t.Fatalf("imported = %+v", imported)
	}
	if !reflect.DeepEqual(s.Unconfigured(), []model.Device{dev("BBB")}) {
		t.Fatalf("unconfigured = %+v", s.Unconfigured())
	}

	got, err = s.Scan(ctx)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(got, []model.Device{dev("BBB")}) {
		t.Fatalf("rescan = %+v", got)
	}
	if !reflect.DeepEqual(s.ConfiguredDevices(), []model.Device{dev("AAA")}) {
		t.Fatalf("configured = %+v", s.Configured())
	}
}

func TestScannerEnumerationFailure(t *testing.T) {
	e := &fakeEnumerator{err: errors.New("backend down")}
	s := NewScanner(e, 0)

	got, err := s.Scan(context.Background())
	if !errors.Is(err, client.ErrEnumerationFailed) {
		t.Fatalf("expected ErrEnumerationFailed, got %v", err)
	}
	if len(got) != 0 || len(s.Unconfigured()) != 0 {
		t.Fatalf("expected no devices, got %+v", got)
	}
	if s.State() != ScanReady || !s.CanScan() {
		t.Fatalf("scanner must allow a retry")
	}
}

func TestScannerRejectsConcurrentScan(t *testing.T) {
	e := &fakeEnumerator{
		devices: []model.Device{dev("AAA")},
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	s := NewScanner(e, 0)

	done := make(chan error, 1)
	go func() {
		_, err := s.Scan(context.Background())
		done <- err
	}()
	<-e.started

	if s.CanScan() || s.State() != Scanning {
		t.Fatalf("scanner should report scanning")
	}
	if _, err := s.Scan(context.Background()); !errors.Is(err, ErrScanInProgress) {
		t.Fatalf("expected ErrScanInProgress, got %v", err)
	}

	close(e.block)
	if err := <-done; err != nil {
		t.Fatalf("Scan: %v", err)
	}
}

func TestScannerSingleDeviceAction(t *testing.T) {
	e := &fakeEnumerator{devices: []model.Device{dev("AAA"), dev("BBB")}}
	s := NewScanner(e, 0)
	ctx := context.Background()
	if _, err := s.Scan(ctx); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	slow := func(ctx context.Context, d model.Device) (model.ImportedDevice, error) {
		close(started)
		<-release
		return model.ImportedDevice{XPub: "xpub-a"}, nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Configure(ctx, 0, slow)
		done <- err
	}()
	<-started

	if s.Active() != 0 {
		t.Fatalf("Active = %d", s.Active())
	}
	if _, err := s.Configure(ctx, 1, importXPub("xpub-b")); !errors.Is(err, ErrDeviceActionBusy) {
		t.Fatalf("expected ErrDeviceActionBusy, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if s.Active() != -1 {
		t.Fatalf("Active = %d after completion", s.Active())
	}

	if _, err := s.Configure(ctx, 0, importXPub("xpub-b")); err != nil {
		t.Fatalf("Configure after release: %v", err)
	}
	if len(s.Configured()) != 2 || len(s.Unconfigured()) != 0 {
		t.Fatalf("unexpected lists %+v %+v", s.Configured(), s.Unconfigured())
	}
}

func TestScannerConfigureErrors(t *testing.T) {
	e := &fakeEnumerator{devices: []model.Device{dev("AAA")}}
	s := NewScanner(e, 0)
	ctx := context.Background()
	if _, err := s.Scan(ctx); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if _, err := s.Configure(ctx, 5, importXPub("x")); !errors.Is(err, ErrNoSuchDevice) {
		t.Fatalf("expected ErrNoSuchDevice, got %v", err)
	}

	failure := errors.New("device locked")
	failing := func(context.Context, model.Device) (model.ImportedDevice, error) {
		return model.ImportedDevice{}, failure
	}
	if _, err := s.Configure(ctx, 0, failing); !errors.Is(err, failure) {
		t.Fatalf("expected action error, got %v", err)
	}
	if len(s.Configured()) != 0 || len(s.Unconfigured()) != 1 {
		t.Fatalf("failed action changed the lists")
	}
}

func TestScannerThreshold(t *testing.T) {
	e := &fakeEnumerator{devices: []model.Device{dev("AAA"), dev("BBB")}}
	s := NewScanner(e, 1)
	ctx := context.Background()
	if _, err := s.Scan(ctx); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if _, err := s.Configure(ctx, 0, importXPub("x")); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if s.CanScan() {
		t.Fatalf("CanScan should be false at threshold")
	}
}
