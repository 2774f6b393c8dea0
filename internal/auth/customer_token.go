package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

const signingPrefix = "customer:"

// CustomerTokenCodec issues and verifies stateless customer tokens.
//
// A token is the unpadded URL-safe base64 encoding of "<ts>:<hex sig>" where
// sig = HMAC-SHA256(secret, "customer:<ts>"). Any process holding the shared
// secret can verify a token issued by any other instance.
type CustomerTokenCodec struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewCustomerTokenCodec builds a codec for the shared secret.
func NewCustomerTokenCodec(secret string, lifetime time.Duration) *CustomerTokenCodec {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &CustomerTokenCodec{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Issue generates a token bound to the current time.
func (c *CustomerTokenCodec) Issue() string {
	ts := strconv.FormatInt(c.now().Unix(), 10)
	sig := c.sign(ts)
	return base64.RawURLEncoding.EncodeToString([]byte(ts + ":" + hex.EncodeToString(sig)))
}

// Verify reports whether the token is authentic and within its lifetime.
// Malformed input of any shape yields false, never an error.
func (c *CustomerTokenCodec) Verify(token string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return false
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 2 {
		return false
	}

	issuedAt, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return false
	}

	sig, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	if !hmac.Equal(sig, c.sign(parts[0])) {
		return false
	}

	age := c.now().Unix() - issuedAt
	return age <= int64(c.lifetime/time.Second)
}

func (c *CustomerTokenCodec) sign(ts string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(signingPrefix + ts))
	return mac.Sum(nil)
}
