package conversation

import (
	"strings"
	"time"
)

// Message types as stored in the history JSON. The history column holds
// LangChain-style message envelopes, so types beyond these three can appear.
const (
	MessageTypeHuman  = "human"
	MessageTypeAI     = "ai"
	MessageTypeSystem = "system"
)

// MessageData carries the payload of a single message. Only the content is
// meaningful to the dashboard; other fields in the stored JSON are ignored.
type MessageData struct {
	Content string `json:"content"`
}

// Message is one entry in a conversation history. Ordering within a
// conversation is chronological and must be preserved.
type Message struct {
	Type string      `json:"type"`
	Data MessageData `json:"data"`
}

// IsAI reports whether the message was authored by the assistant.
func (m Message) IsAI() bool {
	return m.Type == MessageTypeAI
}

// Content returns the message text, empty when the stored record lacks it.
func (m Message) Content() string {
	return m.Data.Content
}

// Conversation is a stored chat session with its full message history.
// Read-only to this service; ownership stays with the bot that writes it.
type Conversation struct {
	ConversationID string    `json:"conversation_id"`
	History        []Message `json:"history"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Transcript renders the history as human-readable lines, one per message.
// Messages without content are skipped rather than rendered blank.
func (c Conversation) Transcript() []string {
	lines := make([]string, 0, len(c.History))
	for _, msg := range c.History {
		content := strings.TrimSpace(msg.Content())
		if content == "" {
			continue
		}
		lines = append(lines, titleCase(msg.Type)+": "+content)
	}
	return lines
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
