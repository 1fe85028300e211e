package model

// WizardResponse represents response for POST /wallet/create and GET /wallet/create/{id}
type WizardResponse struct {
	SessionID string   `json:"sessionId"`
	Step      string   `json:"step"` // show_mnemonic, collect_password, exported
	Words     []string `json:"words"`
}

// ExportRequest represents request for POST /wallet/create/{id}/export
type ExportRequest struct {
	AccountName string `json:"accountName" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Network     string `json:"network,omitempty"` // defaults to BITCOIN_NETWORK
}

// ExportResponse represents response for POST /wallet/create/{id}/export
type ExportResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	WalletID          string `json:"walletId"`
	XPub              string `json:"xpub"`
	ParentFingerprint string `json:"parentFingerprint"`
	FileName          string `json:"fileName"`
	ContentType       string `json:"contentType"`
	Artifact          string `json:"artifact"` // base64 of the exported file
	QR                string `json:"QR"`       // base64 PNG of the xpub
}
