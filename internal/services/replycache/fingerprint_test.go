package replycache_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wagateway/gateway/internal/domain/models"
	"github.com/wagateway/gateway/internal/services/replycache"
)

func TestFingerprint_Deterministic(t *testing.T) {
	inputs := []string{"", "hello", "Halo, apa kabar?", strings.Repeat("x", 5000)}

	for _, msg := range inputs {
		a := replycache.Fingerprint(models.PlatformWeb, msg)
		b := replycache.Fingerprint(models.PlatformWeb, msg)
		assert.Equal(t, a, b)
		assert.True(t, strings.HasPrefix(a, replycache.KeyPrefix))
	}
}

func TestFingerprint_PlatformSeparatesKeys(t *testing.T) {
	web := replycache.Fingerprint(models.PlatformWeb, "hello")
	wa := replycache.Fingerprint(models.PlatformWhatsApp, "hello")

	assert.NotEqual(t, web, wa)
}

func TestFingerprint_LongSharedPrefixDoesNotCollide(t *testing.T) {
	prefix := strings.Repeat("a", 1000)

	k1 := replycache.Fingerprint(models.PlatformWeb, prefix+"1")
	k2 := replycache.Fingerprint(models.PlatformWeb, prefix+"2")

	assert.NotEqual(t, k1, k2)
}

func TestFingerprint_SeparatorPreventsBoundaryAmbiguity(t *testing.T) {
	k1 := replycache.Fingerprint(models.Platform("we"), "bhello")
	k2 := replycache.Fingerprint(models.Platform("web"), "hello")

	assert.NotEqual(t, k1, k2)
}

func TestFingerprint_DoesNotContainMessage(t *testing.T) {
	key := replycache.Fingerprint(models.PlatformWeb, "my secret plan")

	assert.NotContains(t, key, "secret")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", replycache.Preview("short", 50))
	assert.Equal(t, "abc...", replycache.Preview("abcdef", 3))
	assert.Equal(t, "héé...", replycache.Preview("hééllo", 3))
}
