package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec() (*CustomerTokenCodec, *fakeClock) {
	clock := newFakeClock()
	codec := NewCustomerTokenCodec("test-secret", 24*time.Hour)
	codec.now = clock.Now
	return codec, clock
}

func TestCustomerTokenRoundTrip(t *testing.T) {
	codec, _ := newTestCodec()

	token := codec.Issue()
	require.NotEmpty(t, token)
	assert.True(t, codec.Verify(token))
}

func TestCustomerTokenAnySingleCharMutationFails(t *testing.T) {
	codec, _ := newTestCodec()
	token := codec.Issue()

	for i := 0; i < len(token); i++ {
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		assert.False(t, codec.Verify(string(mutated)), "mutation at index %d must invalidate the token", i)
	}
}

func TestCustomerTokenVerifyFailsClosed(t *testing.T) {
	codec, _ := newTestCodec()

	cases := map[string]string{
		"empty string":          "",
		"not base64":            "!!!not-base64!!!",
		"no delimiter":          base64.RawURLEncoding.EncodeToString([]byte("17000000000deadbeef")),
		"too many fields":       base64.RawURLEncoding.EncodeToString([]byte("1700000000:dead:beef")),
		"non-numeric timestamp": base64.RawURLEncoding.EncodeToString([]byte("soon:deadbeef")),
		"non-hex signature":     base64.RawURLEncoding.EncodeToString([]byte("1700000000:zzzz")),
	}
	for name, token := range cases {
		assert.False(t, codec.Verify(token), name)
	}
}

func TestCustomerTokenExpiresAfterLifetime(t *testing.T) {
	codec, clock := newTestCodec()
	token := codec.Issue()

	clock.Advance(24 * time.Hour)
	assert.True(t, codec.Verify(token), "valid exactly at the lifetime boundary")

	clock.Advance(time.Second)
	assert.False(t, codec.Verify(token), "invalid once older than the lifetime")
}

func TestCustomerTokenWrongSecretFails(t *testing.T) {
	codec, _ := newTestCodec()
	other := NewCustomerTokenCodec("other-secret", 24*time.Hour)

	assert.False(t, other.Verify(codec.Issue()))
}

func TestCustomerTokenStatelessAcrossInstances(t *testing.T) {
	issuer := NewCustomerTokenCodec("shared", 24*time.Hour)
	verifier := NewCustomerTokenCodec("shared", 24*time.Hour)

	assert.True(t, verifier.Verify(issuer.Issue()))
}
