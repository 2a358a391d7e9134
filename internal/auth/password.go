// Package auth implements the authentication gateway over the users
// store: signup, login and the reserved administrator bootstrap.
//
// Credential comparison is a pluggable [Verifier] strategy. The default
// [PlainVerifier] stores and compares secrets verbatim, matching the
// historical behavior of the stored data; [Argon2Verifier] is a drop-in
// argon2id replacement for deployments that can migrate stored
// credentials.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Verifier abstracts how passwords are stored and checked so a hashing
// scheme can be substituted without changing the gateway contract.
type Verifier interface {
	// Hash converts a plaintext secret into its stored form.
	Hash(secret string) (string, error)
	// Verify reports whether the plaintext secret matches the stored form.
	Verify(secret, stored string) (bool, error)
}

// PlainVerifier stores secrets verbatim and compares them in constant
// time. This matches the stored records predating hashing; swap in
// [Argon2Verifier] once existing credentials are migrated.
type PlainVerifier struct{}

func (PlainVerifier) Hash(secret string) (string, error) { return secret, nil }

func (PlainVerifier) Verify(secret, stored string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(secret), []byte(stored)) == 1, nil
}

// Argon2 parameters (OWASP recommended second choice: m=19456, t=2, p=1)
const (
	argon2Time    = 2
	argon2Memory  = 19 * 1024
	argon2Threads = 1
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

// Argon2Verifier stores secrets as argon2id hashes in the format
// $argon2id$v=19$m=19456,t=2,p=1$salt$hash.
type Argon2Verifier struct{}

func (Argon2Verifier) Hash(secret string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(secret), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads, b64Salt, b64Hash), nil
}

func (Argon2Verifier) Verify(secret, stored string) (bool, error) {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return false, fmt.Errorf("unsupported hash type: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("parsing version: %w", err)
	}

	var memory, timeCost uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return false, fmt.Errorf("parsing parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decoding salt: %w", err)
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decoding hash: %w", err)
	}

	hash := argon2.IDKey([]byte(secret), salt, timeCost, memory, threads, uint32(len(expectedHash)))
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1, nil
}
