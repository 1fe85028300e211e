package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
)

const (
	defaultTimeout = 30 * time.Second

	// Cosigner xpub paths for P2WSH multisig (BIP48 script type 2)
	MultisigPathMainnet = "m/48'/0'/0'/2'"
	MultisigPathTestnet = "m/48'/1'/0'/2'"
)

// ErrEnumerationFailed is returned when the device backend cannot list devices.
// Callers show it as "no devices detected" and let the user scan again.
var ErrEnumerationFailed = errors.New("no devices detected")

// HWIClient is a client for the local hardware wallet backend
type HWIClient struct {
	baseURL string
	client  *http.Client
}

// NewHWIClient creates a new backend client
func NewHWIClient(baseURL string, timeout time.Duration) *HWIClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HWIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Enumerate lists connected devices (GET /enumerate)
func (c *HWIClient) Enumerate(ctx context.Context) ([]model.Device, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/enumerate", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnumerationFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnumerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrEnumerationFailed, resp.StatusCode)
	}

	var devices []model.Device
	if err := json.NewDecoder(resp.Body).Decode(&devices); err != nil {
		return nil, fmt.Errorf("%w: failed to decode devices: %v", ErrEnumerationFailed, err)
	}
	if devices == nil {
		devices = []model.Device{}
	}
	return devices, nil
}

type xpubRequest struct {
	DeviceType string `json:"deviceType"`
	DevicePath string `json:"devicePath"`
	Path       string `json:"path"`
}

type xpubResponse struct {
	XPub string `json:"xpub"`
}

// GetXPub asks a device for the extended public key at path (POST /xpub)
func (c *HWIClient) GetXPub(ctx context.Context, device model.Device, path string) (string, error) {
	body, err := json.Marshal(xpubRequest{
		DeviceType: device.Type,
		DevicePath: device.Path,
		Path:       path,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal xpub request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/xpub", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create xpub request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get xpub: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get xpub from %s: status %d", device.Fingerprint, resp.StatusCode)
	}

	var out xpubResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode xpub: %w", err)
	}
	if out.XPub == "" {
		return "", fmt.Errorf("device %s returned an empty xpub", device.Fingerprint)
	}
	return out.XPub, nil
}

// MultisigPath returns the cosigner path for network
func MultisigPath(network model.Network) string {
	if network == model.NetworkTestnet {
		return MultisigPathTestnet
	}
	return MultisigPathMainnet
}
