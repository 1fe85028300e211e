package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// OpenSSL "enc" compatible layout, as produced by CryptoJS AES.encrypt(text, passphrase):
// base64("Salted__" || salt[8] || AES-256-CBC(PKCS#7)), key and IV from EVP_BytesToKey(MD5, 1 round).
const (
	openSSLMagic        = "Salted__"
	openSSLBase64Prefix = "U2FsdGVkX1"
	openSSLSaltLen      = 8
	openSSLKeyLen       = 32
)

// EncryptOpenSSL encrypts plaintext in the CryptoJS passphrase format.
// Returned bytes are base64 text.
func EncryptOpenSSL(plaintext, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}

	salt := make([]byte, openSSLSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return encryptOpenSSLWithSalt(plaintext, password, salt)
}

func encryptOpenSSLWithSalt(plaintext, password, salt []byte) ([]byte, error) {
	key, iv := evpBytesToKey(password, salt)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	defer clear(padded)

	raw := make([]byte, len(openSSLMagic)+len(salt)+len(padded))
	n := copy(raw, openSSLMagic)
	n += copy(raw[n:], salt)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(raw[n:], padded)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

// DecryptOpenSSL decrypts CryptoJS passphrase output.
// The payload is always a JSON document, so a plaintext that is not valid JSON is
// reported as ErrInvalidPassword: CBC has no authentication tag.
func DecryptOpenSSL(data, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}

	text := bytes.TrimSpace(stripBOM(data))
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(raw, text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	raw = raw[:n]

	headerLen := len(openSSLMagic) + openSSLSaltLen
	if len(raw) < headerLen+aes.BlockSize || !bytes.HasPrefix(raw, []byte(openSSLMagic)) {
		return nil, fmt.Errorf("%w: missing salt header", ErrUnsupportedFormat)
	}
	salt := raw[len(openSSLMagic):headerLen]
	ciphertext := raw[headerLen:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a multiple of the block size", ErrUnsupportedFormat)
	}

	key, iv := evpBytesToKey(password, salt)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, ok := pkcs7Unpad(plaintext, aes.BlockSize)
	if !ok || !json.Valid(unpadded) {
		clear(plaintext)
		return nil, ErrInvalidPassword
	}
	return unpadded, nil
}

// evpBytesToKey is OpenSSL's EVP_BytesToKey with MD5 and a single iteration
func evpBytesToKey(password, salt []byte) (key, iv []byte) {
	var (
		derived []byte
		prev    []byte
	)
	for len(derived) < openSSLKeyLen+aes.BlockSize {
		h := md5.New()
		h.Write(prev)
		h.Write(password)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:openSSLKeyLen], derived[openSSLKeyLen : openSSLKeyLen+aes.BlockSize]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, false
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, false
		}
	}
	return data[:len(data)-padLen], true
}
