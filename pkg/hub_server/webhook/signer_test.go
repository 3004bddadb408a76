package webhook_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/codatende/webhookhub/pkg/hub_server/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignMatchesHMACTestVectors(t *testing.T) {
	// RFC 4231 test cases 1 and 2.
	key1, _ := hex.DecodeString("0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	sig, err := webhook.Sign(string(key1), []byte("Hi There"))
	require.NoError(t, err)
	assert.Equal(t, "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7", sig)

	sig, err = webhook.Sign("Jefe", []byte("what do ya want for nothing?"))
	require.NoError(t, err)
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", sig)
}

func TestSignIsReproducible(t *testing.T) {
	body := []byte(`{"event":"ticket.created","data":{"id":"tkt_1"},"timestamp":"2024-01-01T00:00:00.000Z"}`)

	sig, err := webhook.Sign("s3cr3t", body)
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("s3cr3t"))
	mac.Write(body)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), sig)

	again, err := webhook.Sign("s3cr3t", body)
	require.NoError(t, err)
	assert.Equal(t, sig, again)
}

func TestSignWithoutSecret(t *testing.T) {
	sig, err := webhook.Sign("", []byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, sig)
}

func TestVerify(t *testing.T) {
	body := []byte(`{"event":"message.received"}`)
	sig, err := webhook.Sign("s3cr3t", body)
	require.NoError(t, err)

	assert.True(t, webhook.Verify("s3cr3t", body, sig))
	assert.True(t, webhook.Verify("s3cr3t", body, "sha256="+sig))
	assert.False(t, webhook.Verify("other", body, sig))
	assert.False(t, webhook.Verify("s3cr3t", []byte(`{"event":"message.received" }`), sig))
	assert.False(t, webhook.Verify("s3cr3t", body, "not-hex"))
	assert.False(t, webhook.Verify("s3cr3t", body, ""))
}
