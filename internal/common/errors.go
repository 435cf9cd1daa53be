// Package common defines shared constants and sentinel errors used across
// CipherVault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Crypto errors.
	ErrKeyDerivationFailed = errors.New("key derivation failed")
	ErrEncryptionFailed    = errors.New("encryption failed")

	// ErrDecryptionFailed covers both "wrong key" and "corrupted ciphertext".
	// The two are reported identically: distinguishing them would hand an
	// oracle to whoever supplied the ciphertext.
	ErrDecryptionFailed = errors.New("decryption failed: wrong key or corrupted ciphertext")

	// ErrKeyUnwrapFailed is kept distinct from ErrDecryptionFailed so the UI
	// can say "you may not have permission" instead of "file corrupted".
	ErrKeyUnwrapFailed = errors.New("key unwrap failed")

	// Storage client errors.
	ErrStorageUploadFailed   = errors.New("storage upload failed")
	ErrStorageDownloadFailed = errors.New("storage download failed")

	// Record store errors.
	ErrRecordNotFound  = errors.New("record not found")
	ErrCycleRejected   = errors.New("move rejected: would create a folder cycle")
	ErrOwnerMismatch   = errors.New("owner mismatch")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
