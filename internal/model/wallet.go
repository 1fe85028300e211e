package model

import (
	"errors"
	"fmt"
	"strings"
)

// Network is the network tag stored in wallet records ("mainnet" / "testnet")
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

// ParseNetwork maps user input to a Network tag
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet", "main", "bitcoin":
		return NetworkMainnet, nil
	case "testnet", "test":
		return NetworkTestnet, nil
	default:
		return "", fmt.Errorf("unknown network %q (allowed: mainnet, testnet)", s)
	}
}

// Quorum is the signer threshold policy of a wallet
type Quorum struct {
	RequiredSigners int `json:"requiredSigners"`
	TotalSigners    int `json:"totalSigners"`
}

// Validate checks 1 <= RequiredSigners <= TotalSigners
func (q Quorum) Validate() error {
	if q.RequiredSigners < 1 {
		return errors.New("requiredSigners must be at least 1")
	}
	if q.RequiredSigners > q.TotalSigners {
		return fmt.Errorf("requiredSigners (%d) must not exceed totalSigners (%d)", q.RequiredSigners, q.TotalSigners)
	}
	return nil
}

// WalletRecord is one wallet entry of the configuration file
type WalletRecord struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Network           Network `json:"network"`
	AddressType       string  `json:"addressType"` // e.g. "P2WSH"
	Quorum            Quorum  `json:"quorum"`
	XPub              string  `json:"xpub"`
	XPrv              string  `json:"xprv"`
	Mnemonic          string  `json:"mnemonic"`          // space separated words
	ParentFingerprint string  `json:"parentFingerprint"` // master key fingerprint, 8 hex chars
}

// ConfigObject is the decrypted content of a configuration file
type ConfigObject struct {
	IsEmpty bool           `json:"isEmpty"`
	Wallets []WalletRecord `json:"wallets"`
}

// NewConfigObject returns an empty configuration
func NewConfigObject() ConfigObject {
	return ConfigObject{IsEmpty: true, Wallets: []WalletRecord{}}
}

// Clone returns a copy that does not share the wallets slice with c
func (c ConfigObject) Clone() ConfigObject {
	out := ConfigObject{
		IsEmpty: c.IsEmpty,
		Wallets: make([]WalletRecord, len(c.Wallets)),
	}
	copy(out.Wallets, c.Wallets)
	return out
}

// WalletSummary is a wallet record without secret material
type WalletSummary struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Network           Network `json:"network"`
	AddressType       string  `json:"addressType"`
	Quorum            Quorum  `json:"quorum"`
	XPub              string  `json:"xpub"`
	ParentFingerprint string  `json:"parentFingerprint"`
}

// Summary strips xprv and mnemonic
func (w WalletRecord) Summary() WalletSummary {
	return WalletSummary{
		ID:                w.ID,
		Name:              w.Name,
		Network:           w.Network,
		AddressType:       w.AddressType,
		Quorum:            w.Quorum,
		XPub:              w.XPub,
		ParentFingerprint: w.ParentFingerprint,
	}
}

// ConfigSummary represents response for GET /config
type ConfigSummary struct {
	IsEmpty bool            `json:"isEmpty"`
	Wallets []WalletSummary `json:"wallets"`
}

// Summary returns the configuration without secret material
func (c ConfigObject) Summary() ConfigSummary {
	out := ConfigSummary{
		IsEmpty: c.IsEmpty,
		Wallets: make([]WalletSummary, 0, len(c.Wallets)),
	}
	for _, w := range c.Wallets {
		out.Wallets = append(out.Wallets, w.Summary())
	}
	return out
}

// ConfigFile represents the encrypted envelope written to lily_wallet_config-*.txt
type ConfigFile struct {
	Version    int    `json:"version"`
	KDF        string `json:"kdf"` // "scrypt"
	N          int    `json:"n"`
	R          int    `json:"r"`
	P          int    `json:"p"`
	Cipher     string `json:"cipher"` // "aes-256-gcm"
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// OpenConfigRequest represents request for POST /config/open
type OpenConfigRequest struct {
	Artifact string `json:"artifact" binding:"required"`
	Password string `json:"password" binding:"required"`
}
