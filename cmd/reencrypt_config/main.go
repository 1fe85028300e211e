// One-off: decrypt a legacy CryptoJS ("Salted__") configuration file and write it
// again as a scrypt/AES-GCM envelope. Wallets are copied unchanged.
// Usage: go run ./cmd/reencrypt_config <legacy.txt> <out.txt>
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlexZinkM/lily-wallet-setup/internal/config"
	"github.com/AlexZinkM/lily-wallet-setup/internal/crypto"
	"github.com/AlexZinkM/lily-wallet-setup/internal/logging"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: reencrypt_config <legacy.txt> <out.txt>")
		os.Exit(2)
	}

	password, err := config.ReadPassword("Password: ", false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(password)

	if err := reencrypt(os.Args[1], os.Args[2], password, crypto.DefaultParams); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func reencrypt(inPath, outPath string, password []byte, params crypto.Params) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inPath, err)
	}

	format, err := crypto.DetectFormat(data)
	if err != nil {
		return err
	}
	if format != crypto.FormatOpenSSL {
		return fmt.Errorf("%s is already in %s format", inPath, format)
	}

	plaintext, err := crypto.DecryptOpenSSL(data, password)
	if err != nil {
		return fmt.Errorf("decrypt failed: %w", err)
	}
	defer clear(plaintext)

	// Check the content really is a configuration before writing it again
	var cfg model.ConfigObject
	if err := json.Unmarshal(plaintext, &cfg); err != nil {
		return fmt.Errorf("invalid config content: %w", err)
	}

	out, err := crypto.EncryptConfig(plaintext, password, crypto.Options{
		Format: crypto.FormatEnvelope,
		Params: params,
	})
	if err != nil {
		return err
	}

	if _, err := os.Stat(outPath); err == nil {
		return fmt.Errorf("%s already exists", outPath)
	}
	if err := os.WriteFile(outPath, out, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	logging.L.Info("config re-encrypted", "in", inPath, "out", outPath, "wallets", len(cfg.Wallets))
	return nil
}
