// Package keyring binds key material to a user identity: it derives the
// durable key-encrypting key (KEK) from the identity string and carries the
// acting identity through an explicit Session value.
package keyring

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/kapish505/CipherVault/internal/common"
)

const (
	kekIterations = 100_000
	kekLength     = 32

	// kekSaltPrefix is hashed together with the normalized identity to form
	// the PBKDF2 salt. Deriving the salt from the identity means the same
	// identity always reproduces the same KEK with no salt material to
	// persist. The identity is public, so the salt is not a secret; that
	// weakens the derivation against precomputation if a KEK ever leaks.
	// Changing the scheme (e.g. deriving from a wallet signature instead)
	// would orphan every previously wrapped key, so it stays as is.
	kekSaltPrefix = "ciphervault-kek-salt:"
)

// NormalizeIdentity canonicalizes an identity string. Identities compare
// case-insensitively: 0xABC and 0xabc derive the same KEK.
func NormalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

// DeriveKEK derives the 256-bit key-encrypting key for an identity using
// PBKDF2-HMAC-SHA256. The function is deterministic in the normalized
// identity and never returns a partial key.
func DeriveKEK(identity string) ([]byte, error) {
	id := NormalizeIdentity(identity)
	if id == "" {
		return nil, fmt.Errorf("%w: empty identity", common.ErrKeyDerivationFailed)
	}

	salt := sha256.Sum256([]byte(kekSaltPrefix + id))
	return pbkdf2.Key([]byte(id), salt[:], kekIterations, kekLength, sha256.New), nil
}
