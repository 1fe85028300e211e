package model

// Device is a hardware wallet as reported by the device backend
type Device struct {
	Fingerprint string `json:"fingerprint"`
	Model       string `json:"model"`
	Type        string `json:"type,omitempty"` // HWI device type, e.g. "coldcard"
	Path        string `json:"path,omitempty"` // HWI device path
}

// ImportedDevice is a configured device together with the xpub extracted from it
type ImportedDevice struct {
	Device
	XPub           string `json:"xpub,omitempty"`
	DerivationPath string `json:"derivationPath,omitempty"`
}

// DevicesResponse represents response for GET /devices and POST /devices/scan
type DevicesResponse struct {
	State        string   `json:"state"` // idle, scanning, ready
	CanScan      bool     `json:"canScan"`
	Active       int      `json:"active"` // unconfigured index with a running action, -1 if none
	Configured   []Device `json:"configured"`
	Unconfigured []Device `json:"unconfigured"`
	Message      string   `json:"message,omitempty"`
}

// ConfigureDeviceResponse represents response for POST /devices/{index}/configure
type ConfigureDeviceResponse struct {
	Device         Device `json:"device"`
	XPub           string `json:"xpub"`
	DerivationPath string `json:"derivationPath"`
}
