package gateway

import "encoding/json"

// Frame is the envelope for every message crossing the bridge socket, both
// directions. Type selects the payload shape; ID correlates request/response
// pairs for lookups that need an answer.
type Frame struct {
	Type  string          `json:"type"`
	ID    string          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Inbound frame types.
const (
	frameMessage  = "message"  // chat message event
	frameResponse = "response" // answer to a request frame
)

// Outbound frame types.
const (
	frameSendText     = "send_text"
	frameSendMedia    = "send_media"
	frameReact        = "react"
	frameProfileImage = "profile_image"
	frameGroupMeta    = "group_metadata"
)

type messageEvent struct {
	ID                string `json:"id"`
	ChatJID           string `json:"chat_jid"`
	SenderJID         string `json:"sender_jid"`
	QuotedParticipant string `json:"quoted_participant,omitempty"`
	Text              string `json:"text"`
	IsGroup           bool   `json:"is_group"`
}

type sendTextPayload struct {
	ChatJID  string `json:"chat_jid"`
	Text     string `json:"text"`
	QuoteID  string `json:"quote_id,omitempty"`
	QuoteJID string `json:"quote_participant,omitempty"`
}

type sendMediaPayload struct {
	ChatJID  string `json:"chat_jid"`
	Kind     string `json:"kind"` // image, video, audio
	URL      string `json:"url,omitempty"`
	Data     []byte `json:"data,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	FileName string `json:"file_name,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

type reactPayload struct {
	ChatJID   string `json:"chat_jid"`
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji"`
}

type profileImageRequest struct {
	UserJID string `json:"user_jid"`
	Quality string `json:"quality"`
}

type profileImageResponse struct {
	URL string `json:"url"`
}

type groupMetaRequest struct {
	GroupJID string `json:"group_jid"`
}

type groupMetaResponse struct {
	JID          string   `json:"jid"`
	Subject      string   `json:"subject"`
	Description  string   `json:"description"`
	OwnerJID     string   `json:"owner_jid"`
	Participants []string `json:"participants"`
	CreatedAt    int64    `json:"created_at"`
}
