// Package keys derives the BIP84 account keys of a software wallet from its mnemonic.
package keys

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlexZinkM/lily-wallet-setup/internal/model"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

const (
	// MnemonicEntropyBits is the entropy size for 24-word mnemonics.
	MnemonicEntropyBits = 256

	// DerivationPath is the native segwit account path. Coin type stays 0 on
	// every network so imports match wallets created by the desktop app.
	DerivationPath = "m/84'/0'/0'"
)

// DerivationError wraps any failure while turning a mnemonic into keys
type DerivationError struct {
	Err error
}

func (e *DerivationError) Error() string {
	return "key derivation failed: " + e.Err.Error()
}

func (e *DerivationError) Unwrap() error {
	return e.Err
}

// IsDerivationError checks if error is DerivationError
func IsDerivationError(err error) bool {
	var de *DerivationError
	return errors.As(err, &de)
}

// AccountKeys are the serialized keys at DerivationPath
type AccountKeys struct {
	XPub              string
	XPrv              string
	MasterFingerprint [4]byte
}

// FingerprintHex returns the master fingerprint as 8 lowercase hex chars
func (k *AccountKeys) FingerprintHex() string {
	return hex.EncodeToString(k.MasterFingerprint[:])
}

// GenerateMnemonic creates a new 24-word BIP-39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	defer clear(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ChainParams selects the version bytes for a network
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	switch network {
	case model.NetworkMainnet:
		return &chaincfg.MainNetParams, nil
	case model.NetworkTestnet:
		return &chaincfg.TestNet3Params, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

// ParsePath parses a BIP32 path such as m/84'/0'/0' (h is accepted as hardened marker)
func ParsePath(path string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("invalid derivation path %q: must start with m", path)
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil || n >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("invalid derivation path %q: bad index %q", path, part)
		}
		idx := uint32(n)
		if hardened {
			idx += hdkeychain.HardenedKeyStart
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

// DeriveAccount derives xpub/xprv at DerivationPath and the master fingerprint.
// Same mnemonic and network always give the same result.
func DeriveAccount(mnemonic string, network model.Network) (*AccountKeys, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, &DerivationError{Err: err}
	}

	// PBKDF2-HMAC-SHA512, 2048 rounds, empty passphrase
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, &DerivationError{Err: fmt.Errorf("invalid mnemonic: %w", err)}
	}
	defer clear(seed)

	master, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return nil, &DerivationError{Err: fmt.Errorf("master key: %w", err)}
	}

	masterPub, err := master.ECPubKey()
	if err != nil {
		return nil, &DerivationError{Err: fmt.Errorf("master public key: %w", err)}
	}

	path, err := ParsePath(DerivationPath)
	if err != nil {
		return nil, &DerivationError{Err: err}
	}

	child := master
	for _, idx := range path {
		child, err = child.Derive(idx)
		if err != nil {
			return nil, &DerivationError{Err: fmt.Errorf("derive %d: %w", idx, err)}
		}
	}

	neutered, err := child.Neuter()
	if err != nil {
		return nil, &DerivationError{Err: fmt.Errorf("neuter: %w", err)}
	}

	keys := &AccountKeys{
		XPub: neutered.String(),
		XPrv: child.String(),
	}
	copy(keys.MasterFingerprint[:], btcutil.Hash160(masterPub.SerializeCompressed())[:4])
	return keys, nil
}

// WordCount returns the number of words in a mnemonic
func WordCount(mnemonic string) int {
	return len(strings.Fields(mnemonic))
}

// ValidateMnemonic checks word list membership and checksum
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}
