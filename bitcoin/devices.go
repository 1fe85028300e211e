package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/lily-wallet-setup/internal/client"
	"github.com/AlexZinkM/lily-wallet-setup/internal/logging"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
)

// Enumerator lists the hardware wallets currently connected
type Enumerator interface {
	Enumerate(ctx context.Context) ([]model.Device, error)
}

// Reconcile returns the devices of enumerated whose fingerprint is not in configured.
// Order is kept; fingerprints are compared exactly. Neither input is modified.
func Reconcile(configured, enumerated []model.Device) []model.Device {
	known := make(map[string]struct{}, len(configured))
	for _, d := range configured {
		known[d.Fingerprint] = struct{}{}
	}

	out := make([]model.Device, 0, len(enumerated))
	for _, d := range enumerated {
		if _, ok := known[d.Fingerprint]; ok {
			continue
		}
		out = append(out, d)
	}
	return out
}

// ScanDevices enumerates once and reconciles against configured.
// On failure the list is empty and the error wraps client.ErrEnumerationFailed.
func ScanDevices(ctx context.Context, enumerator Enumerator, configured []model.Device) ([]model.Device, error) {
	enumerated, err := enumerator.Enumerate(ctx)
	if err != nil {
		logging.L.Warn("device enumeration failed", "err", err)
		if !errors.Is(err, client.ErrEnumerationFailed) {
			err = fmt.Errorf("%w: %v", client.ErrEnumerationFailed, err)
		}
		return []model.Device{}, err
	}

	unconfigured := Reconcile(configured, enumerated)
	logging.L.Debug("devices scanned", "enumerated", len(enumerated), "unconfigured", len(unconfigured))
	return unconfigured, nil
}
