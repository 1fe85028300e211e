package bitcoin

import (
	"bytes"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/AlexZinkM/lily-wallet-setup/internal/crypto"
	"github.com/AlexZinkM/lily-wallet-setup/internal/keys"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testXPub     = "xpub6CatWdiZiodmUeTDp8LT5or8nmbKNcuyvz7WyksVFkKB4RHwCD3XyuvPEbvqAQY3rAPshWcMLoP2fMFMKHPJ4ZeZXYVUhLv1VMrjPC7PW6V"
)

var testOptions = ExportOptions{Params: crypto.Params{N: 1 << 10, R: 8, P: 1}}

var fileNamePattern = regexp.MustCompile(`^lily_wallet_config-\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(Z|[+-]\d{2}:\d{2})\.txt$`)

func TestCreateWalletNamedTestOnMainnet(t *testing.T) {
	export, err := CreateAndExportWallet(model.NewConfigObject(), "", "Test", []byte("secret"), model.NetworkMainnet, testOptions)
	if err != nil {
		t.Fatalf("CreateAndExportWallet: %v", err)
	}

	w := export.Wallet
	if w.Name != "Test" || w.Network != model.NetworkMainnet {
		t.Fatalf("unexpected wallet %+v", w)
	}
	if w.Quorum != (model.Quorum{RequiredSigners: 1, TotalSigners: 1}) {
		t.Fatalf("quorum = %+v", w.Quorum)
	}
	if w.AddressType != "P2WSH" {
		t.Fatalf("addressType = %q", w.AddressType)
	}
	if n := keys.WordCount(w.Mnemonic); n != 24 {
		t.Fatalf("mnemonic has %d words", n)
	}
	if !strings.HasPrefix(w.XPub, "xpub") || !strings.HasPrefix(w.XPrv, "xprv") {
		t.Fatalf("unexpected key prefixes %q %q", w.XPub[:4], w.XPrv[:4])
	}
	if len(w.ParentFingerprint) != 8 {
		t.Fatalf("parentFingerprint = %q", w.ParentFingerprint)
	}
	if w.ID == "" {
		t.Fatalf("missing id")
	}
	if !fileNamePattern.MatchString(export.FileName) {
		t.Fatalf("file name %q does not match pattern", export.FileName)
	}
	if export.ContentType != "text/plain;charset=utf-8;" {
		t.Fatalf("content type = %q", export.ContentType)
	}
	if export.Config.IsEmpty || len(export.Config.Wallets) != 1 {
		t.Fatalf("unexpected config %+v", export.Config)
	}
}

func TestCreateWalletKnownMnemonic(t *testing.T) {
	now := func() time.Time { return time.Date(2020, time.June, 1, 13, 4, 5, 0, time.UTC) }
	opts := testOptions
	opts.Now = now

	export, err := CreateAndExportWallet(model.NewConfigObject(), testMnemonic, "Savings", []byte("pw"), model.NetworkMainnet, opts)
	if err != nil {
		t.Fatalf("CreateAndExportWallet: %v", err)
	}
	if export.Wallet.XPub != testXPub {
		t.Fatalf("xpub = %s", export.Wallet.XPub)
	}
	if export.Wallet.ParentFingerprint != "73c5da0a" {
		t.Fatalf("parentFingerprint = %s", export.Wallet.ParentFingerprint)
	}
	if export.Wallet.Mnemonic != testMnemonic {
		t.Fatalf("mnemonic not kept")
	}
	if export.FileName != "lily_wallet_config-2020-06-01T13:04:05Z.txt" {
		t.Fatalf("file name = %s", export.FileName)
	}
}

func TestCreateWalletDoesNotMutateInput(t *testing.T) {
	existing := model.WalletRecord{ID: "w1", Name: "old", Quorum: model.Quorum{RequiredSigners: 1, TotalSigners: 1}}
	cfg := model.ConfigObject{IsEmpty: false, Wallets: make([]model.WalletRecord, 1, 4)}
	cfg.Wallets[0] = existing

	export, err := CreateAndExportWallet(cfg, testMnemonic, "new", []byte("pw"), model.NetworkTestnet, testOptions)
	if err != nil {
		t.Fatalf("CreateAndExportWallet: %v", err)
	}

	if len(cfg.Wallets) != 1 || cfg.Wallets[:2][1].ID != "" {
		t.Fatalf("input config was modified: %+v", cfg.Wallets[:2])
	}
	if len(export.Config.Wallets) != 2 {
		t.Fatalf("expected 2 wallets, got %d", len(export.Config.Wallets))
	}
	if export.Config.Wallets[0] != existing || export.Config.Wallets[1].Name != "new" {
		t.Fatalf("unexpected wallets %+v", export.Config.Wallets)
	}
	if export.Wallet.Network != model.NetworkTestnet || !strings.HasPrefix(export.Wallet.XPub, "tpub") {
		t.Fatalf("unexpected testnet wallet %+v", export.Wallet)
	}
}

func TestCreateWalletValidation(t *testing.T) {
	cfg := model.NewConfigObject()

	tests := []struct {
		name     string
		mnemonic string
		account  string
		password []byte
		network  model.Network
		check    func(error) bool
	}{
		{
			name:    "empty password",
			account: "Test",
			network: model.NetworkMainnet,
			check:   func(err error) bool { return errors.Is(err, ErrEmptyPassword) },
		},
		{
			name:     "empty password wins over bad mnemonic",
			mnemonic: "not a mnemonic",
			account:  "Test",
			password: []byte{},
			network:  model.NetworkMainnet,
			check:    func(err error) bool { return errors.Is(err, ErrEmptyPassword) },
		},
		{
			name:     "blank account",
			account:  "   ",
			password: []byte("pw"),
			network:  model.NetworkMainnet,
			check:    func(err error) bool { return errors.Is(err, ErrEmptyAccountName) },
		},
		{
			name:     "unknown network",
			account:  "Test",
			password: []byte("pw"),
			network:  model.Network("regtest"),
			check:    func(err error) bool { return err != nil },
		},
		{
			name:     "invalid mnemonic",
			mnemonic: strings.Repeat("abandon ", 23) + "bitcoinz",
			account:  "Test",
			password: []byte("pw"),
			network:  model.NetworkMainnet,
			check:    keys.IsDerivationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			export, err := CreateAndExportWallet(cfg, tt.mnemonic, tt.account, tt.password, tt.network, testOptions)
			if export != nil {
				t.Fatalf("expected no export, got %+v", export)
			}
			if !tt.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

func TestExportRoundTrip(t *testing.T) {
	password := []byte("correct horse ünïcödé")
	export, err := CreateAndExportWallet(model.NewConfigObject(), testMnemonic, "Wallet ☃ 日本", password, model.NetworkMainnet, testOptions)
	if err != nil {
		t.Fatalf("CreateAndExportWallet: %v", err)
	}

	cfg, err := OpenConfig(export.Artifact, password)
	if err != nil {
		t.Fatalf("OpenConfig: %v", err)
	}
	if cfg.IsEmpty != export.Config.IsEmpty || len(cfg.Wallets) != 1 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Wallets[0] != export.Wallet {
		t.Fatalf("wallet mismatch:\n got %+v\nwant %+v", cfg.Wallets[0], export.Wallet)
	}
	if !bytes.Contains(export.Artifact, []byte(`"cipherText"`)) {
		t.Fatalf("artifact is not an envelope")
	}
}

func TestExportRoundTripOpenSSL(t *testing.T) {
	opts := testOptions
	opts.Format = crypto.FormatOpenSSL

	export, err := CreateAndExportWallet(model.NewConfigObject(), testMnemonic, "Legacy", []byte("pw"), model.NetworkMainnet, opts)
	if err != nil {
		t.Fatalf("CreateAndExportWallet: %v", err)
	}
	if !bytes.HasPrefix(export.Artifact, []byte("U2FsdGVkX1")) {
		t.Fatalf("artifact is not in CryptoJS format: %q", export.Artifact[:16])
	}

	cfg, err := OpenConfig(export.Artifact, []byte("pw"))
	if err != nil {
		t.Fatalf("OpenConfig: %v", err)
	}
	if cfg.Wallets[0] != export.Wallet {
		t.Fatalf("wallet mismatch")
	}
}

func TestOpenConfigWrongPassword(t *testing.T) {
	export, err := CreateAndExportWallet(model.NewConfigObject(), testMnemonic, "Test", []byte("right"), model.NetworkMainnet, testOptions)
	if err != nil {
		t.Fatalf("CreateAndExportWallet: %v", err)
	}

	if _, err := OpenConfig(export.Artifact, []byte("wrong")); !errors.Is(err, crypto.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := OpenConfig(export.Artifact, nil); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestOpenConfigCryptoJSVector(t *testing.T) {
	artifact := []byte("U2FsdGVkX18BAgMEBQYHCD2fJgWgg0MPcxd8KWxrBMmHANVUiO/EltqVE2IGoiPC")
	cfg, err := OpenConfig(artifact, []byte("correct horse"))
	if err != nil {
		t.Fatalf("OpenConfig: %v", err)
	}
	if cfg.IsEmpty || cfg.Wallets == nil || len(cfg.Wallets) != 0 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestNewMnemonic(t *testing.T) {
	a, err := NewMnemonic()
	if err != nil {
		t.Fatalf("NewMnemonic: %v", err)
	}
	b, err := NewMnemonic()
	if err != nil {
		t.Fatalf("NewMnemonic: %v", err)
	}
	if keys.WordCount(a) != 24 || !keys.ValidateMnemonic(a) {
		t.Fatalf("invalid mnemonic %q", a)
	}
	if a == b {
		t.Fatalf("two mnemonics are equal")
	}
}

func TestXPubQRCode(t *testing.T) {
	qr, err := XPubQRCode(testXPub)
	if err != nil {
		t.Fatalf("XPubQRCode: %v", err)
	}
	png, err := base64.StdEncoding.DecodeString(qr)
	if err != nil {
		t.Fatalf("QR is not base64: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("QR is not a PNG")
	}
}
