package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/config"
	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
)

// PasswordConfig holds the parameters for the Argon2id password hashing algorithm
type PasswordConfig struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultPasswordConfig returns the default configuration for password hashing
func DefaultPasswordConfig() *PasswordConfig {
	return &PasswordConfig{
		Memory:      constants.DefaultPasswordHashMemory,
		Iterations:  constants.DefaultPasswordHashIterations,
		Parallelism: constants.DefaultPasswordHashParallelism,
		SaltLength:  constants.DefaultPasswordHashSaltLength,
		KeyLength:   constants.DefaultPasswordHashKeyLength,
	}
}

// ConfigFromAppConfig creates a password config from the application config
func ConfigFromAppConfig(cfg *config.AppConfig) *PasswordConfig {
	return &PasswordConfig{
		Memory:      cfg.PasswordHash.Memory,
		Iterations:  cfg.PasswordHash.Iterations,
		Parallelism: cfg.PasswordHash.Parallelism,
		SaltLength:  cfg.PasswordHash.SaltLength,
		KeyLength:   cfg.PasswordHash.KeyLength,
	}
}

// HashPassword generates a hash of the provided password using Argon2id
// Returns the encoded hash and the salt used for hashing
func HashPassword(password string, cfg *PasswordConfig) (string, string, error) {
	salt := make([]byte, cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		cfg.Iterations,
		cfg.Memory,
		cfg.Parallelism,
		cfg.KeyLength,
	)

	encodedHash := base64.StdEncoding.EncodeToString(hash)
	encodedSalt := base64.StdEncoding.EncodeToString(salt)

	return encodedHash, encodedSalt, nil
}

// VerifyPassword compares a password with a hash and salt using Argon2id.
// The derived key length follows the stored hash, so hashes made with a
// different key length still verify.
func VerifyPassword(password, encodedHash, encodedSalt string, cfg *PasswordConfig) (bool, error) {
	hash, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(encodedSalt)
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}

	if len(hash) == 0 {
		return false, fmt.Errorf("empty hash")
	}

	comparisonHash := argon2.IDKey(
		[]byte(password),
		salt,
		cfg.Iterations,
		cfg.Memory,
		cfg.Parallelism,
		uint32(len(hash)),
	)

	// Constant-time comparison
	return subtle.ConstantTimeCompare(hash, comparisonHash) == 1, nil
}

// PassphraseVerifier checks operator passphrases against the configured hash.
type PassphraseVerifier struct {
	hash string
	salt string
	cfg  *PasswordConfig
}

// NewPassphraseVerifier creates a verifier for the operator settings.
//
// Parameters:
//   - operator: Settings holding the base64 passphrase hash and salt
//   - cfg: Argon2id parameters the hash was created with
//
// Returns:
//   - A verifier; it rejects every passphrase when no hash is configured
func NewPassphraseVerifier(operator *config.OperatorSettings, cfg *PasswordConfig) *PassphraseVerifier {
	if cfg == nil {
		cfg = DefaultPasswordConfig()
	}
	return &PassphraseVerifier{
		hash: operator.PassphraseHash,
		salt: operator.PassphraseSalt,
		cfg:  cfg,
	}
}

// Enabled reports whether a passphrase is configured.
func (v *PassphraseVerifier) Enabled() bool {
	return v.hash != "" && v.salt != ""
}

// Verify reports whether passphrase matches the configured hash.
func (v *PassphraseVerifier) Verify(passphrase string) (bool, error) {
	if !v.Enabled() {
		return false, nil
	}
	return VerifyPassword(passphrase, v.hash, v.salt, v.cfg)
}
