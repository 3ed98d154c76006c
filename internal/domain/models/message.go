package models

// Origin is the channel an inbound message arrived from.
type Origin string

const (
	// OriginChat is a message received by the WhatsApp client.
	OriginChat Origin = "chat"
	// OriginWeb is a message received on the HTTP chat endpoint.
	OriginWeb Origin = "web"
)

// Platform selects the system prompt used for a completion.
type Platform string

const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformWeb      Platform = "web"
	PlatformDefault  Platform = "default"
)

// Platform returns the platform tag used for messages of this origin.
func (o Origin) Platform() Platform {
	switch o {
	case OriginChat:
		return PlatformWhatsApp
	case OriginWeb:
		return PlatformWeb
	default:
		return PlatformDefault
	}
}

// CompletionRequest is a single request to the completion API.
type CompletionRequest struct {
	Platform Platform
	Message  string
	// SystemPrompt overrides the prompt selected by Platform when set.
	SystemPrompt string
}

// CompletionResult is a successful completion.
type CompletionResult struct {
	Text string
}

// Reply is the outcome of handling one inbound message.
type Reply struct {
	Text   string
	Cached bool
}
