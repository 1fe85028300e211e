package bitcoin

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlexZinkM/lily-wallet-setup/internal/common"
	"github.com/AlexZinkM/lily-wallet-setup/internal/crypto"
	"github.com/AlexZinkM/lily-wallet-setup/internal/keys"
	"github.com/AlexZinkM/lily-wallet-setup/internal/logging"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	addressTypeP2WSH = "P2WSH"
)

var (
	// ErrEmptyPassword blocks an export before any key material is derived
	ErrEmptyPassword    = crypto.ErrEmptyPassword
	ErrEmptyAccountName = errors.New("account name cannot be empty")
)

// ExportOptions tunes the artifact. The zero value writes an envelope with default scrypt cost.
type ExportOptions struct {
	Format crypto.Format
	Params crypto.Params
	Now    func() time.Time
}

// Export is the result of CreateAndExportWallet. Nothing has been written yet:
// the caller hands Artifact to an exporter and only then replaces its config with Config.
type Export struct {
	Config      model.ConfigObject
	Wallet      model.WalletRecord
	Artifact    []byte
	FileName    string
	ContentType string
}

// NewMnemonic returns a fresh 24-word mnemonic
func NewMnemonic() (string, error) {
	return keys.GenerateMnemonic()
}

// CreateAndExportWallet derives the account keys for mnemonic, appends a single-signer
// wallet record to a copy of cfg and encrypts the result with password.
// An empty mnemonic means a new one is generated.
// password must be []byte for security (caller should zero it after use)
func CreateAndExportWallet(cfg model.ConfigObject, mnemonic, accountName string, password []byte, network model.Network, opts ExportOptions) (*Export, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	accountName = strings.TrimSpace(accountName)
	if accountName == "" {
		return nil, ErrEmptyAccountName
	}
	if _, err := keys.ChainParams(network); err != nil {
		return nil, err
	}

	if mnemonic == "" {
		var err error
		mnemonic, err = NewMnemonic()
		if err != nil {
			return nil, fmt.Errorf("failed to generate mnemonic: %w", err)
		}
	}

	accountKeys, err := keys.DeriveAccount(mnemonic, network)
	if err != nil {
		return nil, err
	}

	wallet := model.WalletRecord{
		ID:          uuid.NewString(),
		Name:        accountName,
		Network:     network,
		AddressType: addressTypeP2WSH,
		Quorum: model.Quorum{
			RequiredSigners: 1,
			TotalSigners:    1,
		},
		XPub:              accountKeys.XPub,
		XPrv:              accountKeys.XPrv,
		Mnemonic:          mnemonic,
		ParentFingerprint: accountKeys.FingerprintHex(),
	}

	updated := cfg.Clone()
	updated.Wallets = append(updated.Wallets, wallet)
	updated.IsEmpty = false

	plaintext, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	defer clear(plaintext)

	artifact, err := crypto.EncryptConfig(plaintext, password, crypto.Options{
		Format: opts.Format,
		Params: opts.Params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt config: %w", err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	logging.L.Info("wallet created", "id", wallet.ID, "network", network, "wallets", len(updated.Wallets))

	return &Export{
		Config:      updated,
		Wallet:      wallet,
		Artifact:    artifact,
		FileName:    common.ConfigFileName(now()),
		ContentType: common.ConfigContentType,
	}, nil
}

// XPubQRCode generates QR code of xpub in base64
func XPubQRCode(xpub string) (string, error) {
	qr, err := qrcode.New(xpub, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
