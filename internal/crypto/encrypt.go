package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/AlexZinkM/lily-wallet-setup/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	envelopeVersion = 1
	kdfScrypt       = "scrypt"
	cipherAESGCM    = "aes-256-gcm"

	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

// Format selects the artifact encoding
type Format string

const (
	// FormatEnvelope is a JSON envelope carrying scrypt params, salt, nonce and AES-GCM ciphertext
	FormatEnvelope Format = "envelope"
	// FormatOpenSSL is the "Salted__" base64 text written by CryptoJS AES.encrypt
	FormatOpenSSL Format = "openssl"
)

// ParseFormat maps config input to a Format
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatEnvelope:
		return FormatEnvelope, nil
	case FormatOpenSSL:
		return FormatOpenSSL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Params are the scrypt cost parameters used for new envelopes
type Params struct {
	N int
	R int
	P int
}

// DefaultParams:
// N=2^18 (~256MB RAM, 0.5-2s) keeps brute force expensive while still
// working on phones with per-app memory limits around 256-512MB.
var DefaultParams = Params{N: 1 << 18, R: 8, P: 1}

// Upper bounds accepted for scrypt params. N=MaxScryptN with r=8 needs 1GiB.
const (
	MaxScryptN = 1 << 20
	maxScryptR = 32
	maxScryptP = 16
)

// Validate checks that N is a power of two in (1, MaxScryptN] and R, P are small
func (p Params) Validate() error {
	if p.N <= 1 || p.N > MaxScryptN || p.N&(p.N-1) != 0 {
		return fmt.Errorf("%w: scrypt N %d must be a power of two in [2, %d]", ErrUnsupportedFormat, p.N, MaxScryptN)
	}
	if p.R < 1 || p.R > maxScryptR {
		return fmt.Errorf("%w: scrypt r %d out of range [1, %d]", ErrUnsupportedFormat, p.R, maxScryptR)
	}
	if p.P < 1 || p.P > maxScryptP {
		return fmt.Errorf("%w: scrypt p %d out of range [1, %d]", ErrUnsupportedFormat, p.P, maxScryptP)
	}
	return nil
}

var (
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)

// Options controls EncryptConfig
type Options struct {
	Format Format
	Params Params // zero value means DefaultParams
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncryptConfig encrypts serialized configuration bytes into a self-describing artifact.
// password must be []byte for security (caller should zero it after use)
func EncryptConfig(plaintext, password []byte, opts Options) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}

	switch opts.Format {
	case "", FormatEnvelope:
		params := opts.Params
		if params == (Params{}) {
			params = DefaultParams
		}
		return encryptEnvelope(plaintext, password, params)
	case FormatOpenSSL:
		return EncryptOpenSSL(plaintext, password)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

func encryptEnvelope(plaintext, password []byte, params Params) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
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

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	configFile := model.ConfigFile{
		Version:    envelopeVersion,
		KDF:        kdfScrypt,
		N:          params.N,
		R:          params.R,
		P:          params.P,
		Cipher:     cipherAESGCM,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	fileData, err := json.MarshalIndent(configFile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config file: %w", err)
	}

	// UTF-8 BOM for proper display in Windows
	out := make([]byte, 0, len(utf8BOM)+len(fileData))
	out = append(out, utf8BOM...)
	return append(out, fileData...), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
