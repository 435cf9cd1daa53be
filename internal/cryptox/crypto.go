// Package cryptox implements the envelope cipher: per-file data-encrypting
// keys (DEK), AES-256-GCM payload encryption, and wrapping of DEKs under a
// key-encrypting key (KEK).
//
// Every call that encrypts generates its own random 96-bit IV. In particular
// the content IV and the key-wrap IV produced for the same file are always
// independent; reusing one for the other would repeat an IV under a key,
// which breaks GCM.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/kapish505/CipherVault/internal/common"
)

// KeySize is the DEK/KEK length in bytes (AES-256).
const KeySize = 32

// ivSize is the GCM nonce length in bytes.
const ivSize = 12

// GenerateDEK returns a fresh random 256-bit data-encrypting key.
// Each file gets its own DEK; a DEK is never reused across files.
func GenerateDEK() []byte {
	return common.GenerateRandByteArray(KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext under key with AES-256-GCM and a random IV.
// The ciphertext (tag included) and the IV are returned separately so they
// can be persisted as independent fields.
func Encrypt(plaintext, key []byte) (ciphertext, iv []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrEncryptionFailed, err)
	}

	iv = common.GenerateRandByteArray(ivSize)
	ciphertext = aesgcm.Seal(nil, iv, plaintext, nil)
	return ciphertext, iv, nil
}

// Decrypt opens ciphertext with the given key and IV. An authentication
// failure returns common.ErrDecryptionFailed; altered plaintext is never
// returned.
func Decrypt(ciphertext, iv, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryptionFailed, err)
	}

	plaintext, err := aesgcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, common.ErrDecryptionFailed
	}
	return plaintext, nil
}

// WrapKey encrypts the raw DEK bytes under the KEK, returning the wrapped
// key and the IV used for wrapping. The IV is fresh and unrelated to any
// content IV produced for the same file.
func WrapKey(dek, kek []byte) (wrapped, iv []byte, err error) {
	aesgcm, err := newGCM(kek)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrEncryptionFailed, err)
	}

	iv = common.GenerateRandByteArray(ivSize)
	wrapped = aesgcm.Seal(nil, iv, dek, nil)
	return wrapped, iv, nil
}

// UnwrapKey recovers a DEK wrapped by WrapKey. Failure returns
// common.ErrKeyUnwrapFailed, which callers must keep distinct from a content
// decryption failure: the former means "wrong KEK" (likely wrong identity),
// the latter means the stored ciphertext is damaged.
func UnwrapKey(wrapped, iv, kek []byte) ([]byte, error) {
	aesgcm, err := newGCM(kek)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrKeyUnwrapFailed, err)
	}

	dek, err := aesgcm.Open(nil, iv, wrapped, nil)
	if err != nil {
		return nil, common.ErrKeyUnwrapFailed
	}
	return dek, nil
}

// EncodeField converts a binary crypto field (ciphertext, IV, wrapped key)
// to its stable textual form for persistence.
func EncodeField(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeField is the inverse of EncodeField.
func DecodeField(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
