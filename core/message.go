package core

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for messages
const (
	// MaxMessageTextLength is the inclusive upper bound on message text
	// length, counted in characters rather than bytes
	MaxMessageTextLength = 255
)

// Message represents a text post authored by an Account.
// PostedAtEpoch is supplied by the caller (the server accepts the client's
// timestamp), not generated here.
type Message struct {
	ID            int64  `json:"message_id,omitempty"`
	PostedBy      int64  `json:"posted_by"`
	Text          string `json:"message_text"`
	PostedAtEpoch int64  `json:"time_posted_epoch"`
}

// HasBlankText reports whether the message text is empty or whitespace-only.
func (m *Message) HasBlankText() bool {
	return strings.TrimSpace(m.Text) == ""
}

// TextTooLong reports whether the message text exceeds MaxMessageTextLength.
// Multi-byte text counts one per rune, so a 100-rune CJK message passes.
func (m *Message) TextTooLong() bool {
	return utf8.RuneCountInString(m.Text) > MaxMessageTextLength
}
