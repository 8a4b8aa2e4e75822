// Package security holds the self-contained authentication primitives:
// password hashing with a pluggable scheme policy, and the signed token codec.
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SchemePBKDF2 = "pbkdf2_sha256"
	SchemeBcrypt = "bcrypt"
)

const (
	pbkdf2Iterations = 29000
	pbkdf2SaltLen    = 16
	pbkdf2KeyLen     = 32
)

// Hasher hashes and verifies credential secrets. NeedsRehash reports whether a
// stored hash was produced under a scheme other than the current primary; it is
// advisory only, callers decide whether to act on it.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encoded string) bool
	NeedsRehash(encoded string) bool
}

// scheme is a single hashing algorithm driver.
type scheme interface {
	Name() string
	hash(secret string) (string, error)
	// owns reports whether this driver produced the encoded hash.
	owns(encoded string) bool
	verify(secret, encoded string) bool
}

// Policy combines a primary scheme with legacy schemes accepted only for
// verification, so hashes minted under an older policy keep verifying.
type Policy struct {
	primary scheme
	legacy  []scheme
}

// NewPolicy builds a Policy from a primary scheme name. Every other known
// scheme is registered as legacy, so policy migration never locks users out.
// Unknown names fall back to pbkdf2_sha256.
func NewPolicy(primaryScheme string) *Policy {
	all := map[string]scheme{
		SchemePBKDF2: pbkdf2Scheme{},
		SchemeBcrypt: bcryptScheme{},
	}
	primary, ok := all[primaryScheme]
	if !ok {
		primary = all[SchemePBKDF2]
	}
	p := &Policy{primary: primary}
	for name, s := range all {
		if name != primary.Name() {
			p.legacy = append(p.legacy, s)
		}
	}
	return p
}

func (p *Policy) Hash(secret string) (string, error) {
	return p.primary.hash(secret)
}

// Verify checks the secret against the stored hash under whichever scheme
// produced it. A malformed or unrecognized hash verifies as false, never faults.
func (p *Policy) Verify(secret, encoded string) bool {
	if p.primary.owns(encoded) {
		return p.primary.verify(secret, encoded)
	}
	for _, s := range p.legacy {
		if s.owns(encoded) {
			return s.verify(secret, encoded)
		}
	}
	return false
}

func (p *Policy) NeedsRehash(encoded string) bool {
	return !p.primary.owns(encoded)
}

// ── pbkdf2_sha256 ────────────────────────────────────────────────────────────

// pbkdf2Scheme encodes hashes as $pbkdf2-sha256$<iterations>$<salt>$<key>,
// with salt and key in unpadded base64url.
type pbkdf2Scheme struct{}

func (pbkdf2Scheme) Name() string { return SchemePBKDF2 }

func (pbkdf2Scheme) hash(secret string) (string, error) {
	salt := make([]byte, pbkdf2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	dk := pbkdf2.Key([]byte(secret), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return fmt.Sprintf("$pbkdf2-sha256$%d$%s$%s",
		pbkdf2Iterations,
		base64.RawURLEncoding.EncodeToString(salt),
		base64.RawURLEncoding.EncodeToString(dk),
	), nil
}

func (pbkdf2Scheme) owns(encoded string) bool {
	return strings.HasPrefix(encoded, "$pbkdf2-sha256$")
}

func (pbkdf2Scheme) verify(secret, encoded string) bool {
	parts := strings.Split(encoded, "$")
	// ["", "pbkdf2-sha256", iterations, salt, key]
	if len(parts) != 5 {
		return false
	}
	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return false
	}
	salt, err := base64.RawURLEncoding.DecodeString(parts[3])
	if err != nil {
		return false
	}
	want, err := base64.RawURLEncoding.DecodeString(parts[4])
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(secret), salt, iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// ── bcrypt ───────────────────────────────────────────────────────────────────

type bcryptScheme struct{}

func (bcryptScheme) Name() string { return SchemeBcrypt }

func (bcryptScheme) hash(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (bcryptScheme) owns(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

func (bcryptScheme) verify(secret, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(secret)) == nil
}
