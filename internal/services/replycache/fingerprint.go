package replycache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/wagateway/gateway/internal/domain/models"
)

// KeyPrefix namespaces reply entries inside the cache backend.
const KeyPrefix = "reply:"

// Fingerprint derives the cache key for a message on a platform.
// The whole message is hashed, so messages sharing a long prefix never collide.
func Fingerprint(platform models.Platform, message string) string {
	h := sha256.New()
	h.Write([]byte(platform))
	h.Write([]byte{0})
	h.Write([]byte(message))
	return KeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Preview returns at most limit runes of message for logging.
func Preview(message string, limit int) string {
	runes := []rune(message)
	if len(runes) <= limit {
		return message
	}
	return string(runes[:limit]) + "..."
}
