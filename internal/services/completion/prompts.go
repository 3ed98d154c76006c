package completion

import "github.com/wagateway/gateway/internal/domain/models"

// DefaultPrompts are the system prompts used when none are configured.
var DefaultPrompts = map[models.Platform]string{
	models.PlatformWhatsApp: "You are a friendly assistant replying inside WhatsApp. " +
		"Keep answers short and conversational, use plain text without markdown tables, " +
		"and answer in the language the user writes in.",
	models.PlatformWeb: "You are a helpful assistant answering questions from a web chat widget. " +
		"Be clear and well structured. Markdown is allowed.",
	models.PlatformDefault: "You are a helpful assistant. Answer accurately and concisely.",
}

// SystemPrompt selects the prompt for a platform, falling back to the default prompt.
func SystemPrompt(prompts map[models.Platform]string, platform models.Platform) string {
	if p, ok := prompts[platform]; ok && p != "" {
		return p
	}
	if p, ok := prompts[models.PlatformDefault]; ok && p != "" {
		return p
	}
	return DefaultPrompts[models.PlatformDefault]
}
