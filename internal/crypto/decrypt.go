package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/AlexZinkM/lily-wallet-setup/internal/model"

	"golang.org/x/crypto/scrypt"
)

// DetectFormat reports which encoding an artifact uses
func DetectFormat(data []byte) (Format, error) {
	data = bytes.TrimSpace(stripBOM(data))
	switch {
	case len(data) == 0:
		return "", fmt.Errorf("%w: empty file", ErrUnsupportedFormat)
	case data[0] == '{':
		return FormatEnvelope, nil
	case bytes.HasPrefix(data, []byte(openSSLBase64Prefix)):
		return FormatOpenSSL, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// DecryptConfig decrypts an artifact produced by EncryptConfig (either format)
// password must be []byte for security (caller should zero it after use)
func DecryptConfig(data, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}

	format, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}

	if format == FormatOpenSSL {
		return DecryptOpenSSL(data, password)
	}
	return decryptEnvelope(data, password)
}

func decryptEnvelope(data, password []byte) ([]byte, error) {
	var configFile model.ConfigFile
	if err := json.Unmarshal(stripBOM(data), &configFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	if configFile.Version != envelopeVersion || configFile.KDF != kdfScrypt || configFile.Cipher != cipherAESGCM {
		return nil, fmt.Errorf("%w: version %d, kdf %q, cipher %q",
			ErrUnsupportedFormat, configFile.Version, configFile.KDF, configFile.Cipher)
	}

	// params come from the file, bound them before scrypt allocates
	params := Params{N: configFile.N, R: configFile.R, P: configFile.P}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(configFile.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(configFile.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(configFile.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(nonce) != aesGCM.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}

	return plaintext, nil
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}
