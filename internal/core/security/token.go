package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// Claims is the flat claim set carried in a token payload. Numeric values
// decode as float64, the JSON default.
type Claims map[string]any

// Subject returns the "sub" claim, or "" when absent or not a string.
func (c Claims) Subject() string {
	sub, _ := c["sub"].(string)
	return sub
}

// TokenCodec mints and verifies compact signed tokens of the form
//
//	base64url(header) "." base64url(payload) "." base64url(signature)
//
// signed with HMAC-SHA256 over the encoded header and payload. Tokens are
// stateless: no session record backs them and there is no revocation list, so
// a token stays valid for its full TTL.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), now: time.Now}
}

var encodedHeader = b64urlEncode([]byte(`{"alg":"HS256","typ":"JWT"}`))

// Issue serializes the claims plus injected iat/exp and signs the result.
// ttlSeconds may be negative, producing an already-expired token.
func (tc *TokenCodec) Issue(claims Claims, ttlSeconds int64) (string, error) {
	now := tc.now().Unix()
	payload := make(map[string]any, len(claims)+2)
	for k, v := range claims {
		payload[k] = v
	}
	payload["iat"] = now
	payload["exp"] = now + ttlSeconds

	// json.Marshal sorts map keys, giving a canonical byte form to sign.
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	signingInput := encodedHeader + "." + b64urlEncode(body)
	return signingInput + "." + b64urlEncode(tc.sign(signingInput)), nil
}

// Verify checks structure, signature and expiry, returning the decoded claims
// or nil. Every failure mode (wrong part count, bad base64, signature
// mismatch, malformed payload, expired token) yields nil with no distinction.
func (tc *TokenCodec) Verify(token string) Claims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	sig, err := b64urlDecode(parts[2])
	if err != nil {
		return nil
	}
	if !hmac.Equal(sig, tc.sign(parts[0]+"."+parts[1])) {
		return nil
	}

	body, err := b64urlDecode(parts[1])
	if err != nil {
		return nil
	}
	var claims Claims
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil
	}

	exp, ok := claims["exp"].(float64)
	if !ok || tc.now().Unix() > int64(exp) {
		return nil
	}
	return claims
}

func (tc *TokenCodec) sign(signingInput string) []byte {
	mac := hmac.New(sha256.New, tc.secret)
	mac.Write([]byte(signingInput))
	return mac.Sum(nil)
}

func b64urlEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// b64urlDecode accepts both padded and unpadded base64url input.
func b64urlDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
