// Seal GitHub token to store in config file
package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Environment variable with sealing key
const KeyEnv = "IMAGEGEN_SECRET_KEY"

const (
	saltLen = 16
	keyLen  = 32 // AES-256

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var (
	ErrKeyNotSet     = errors.New("secret key not set, export " + KeyEnv)
	ErrEmptyToken    = errors.New("empty token")
	ErrInvalidSealed = errors.New("invalid sealed token")
)

// Key from IMAGEGEN_SECRET_KEY
func Key() (string, error) {
	key := strings.TrimSpace(os.Getenv(KeyEnv))
	if key == "" {
		return "", ErrKeyNotSet
	}
	return key, nil
}

func aead(key string, salt []byte) (cipher.AEAD, error) {
	derived, err := scrypt.Key([]byte(key), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("cannot derive key: %w", err)
	}
	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal token with key, return hex: salt + nonce + ciphertext
func Seal(key, token string) (string, error) {
	if key == "" {
		return "", ErrKeyNotSet
	} else if token == "" {
		return "", ErrEmptyToken
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("cannot generate salt: %w", err)
	}

	gcm, err := aead(key, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("cannot generate nonce: %w", err)
	}

	sealed := append(salt, nonce...)
	sealed = gcm.Seal(sealed, nonce, []byte(token), salt)
	return hex.EncodeToString(sealed), nil
}

// Open sealed token created by Seal
func Open(key, sealed string) (string, error) {
	if key == "" {
		return "", ErrKeyNotSet
	}

	data, err := hex.DecodeString(strings.TrimSpace(sealed))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSealed, err)
	} else if len(data) < saltLen {
		return "", ErrInvalidSealed
	}

	salt := data[:saltLen]
	gcm, err := aead(key, salt)
	if err != nil {
		return "", err
	}

	data = data[saltLen:]
	if len(data) < gcm.NonceSize()+gcm.Overhead() {
		return "", ErrInvalidSealed
	}

	token, err := gcm.Open(nil, data[:gcm.NonceSize()], data[gcm.NonceSize():], salt)
	if err != nil {
		// wrong key or corrupted value
		return "", fmt.Errorf("%w: %w", ErrInvalidSealed, err)
	}
	return string(token), nil
}
