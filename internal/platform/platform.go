// Package platform defines the messaging-transport contract the command layer
// consumes. The concrete gateway lives in platform/gateway; everything above it
// only sees these types.
package platform

import (
	"context"
	"strings"
)

// Message is one incoming chat message, already decoded from the wire.
type Message struct {
	ID                string
	ChatJID           string // conversation the message arrived in
	SenderJID         string // author (participant JID in groups)
	QuotedParticipant string // set when the message replies to someone
	Text              string
	IsGroup           bool
}

// ImageQuality selects the resolution of a profile-picture lookup.
type ImageQuality string

const (
	QualityPreview ImageQuality = "preview"
	QualityFull    ImageQuality = "image"
)

// Media references an asset to send: either a remote URL or inline bytes.
type Media struct {
	URL      string
	Data     []byte
	MimeType string
	FileName string
}

// GroupInfo is the subset of group metadata commands care about.
type GroupInfo struct {
	JID          string
	Subject      string
	Description  string
	OwnerJID     string
	Participants []string
	CreatedAt    int64
}

// Transport is the platform socket abstraction. Implementations are
// asynchronous, fallible, and rate-limited by the platform itself.
type Transport interface {
	SendText(ctx context.Context, chatJID, text string) error
	// SendReply quotes the given message, the usual way a bot answers a command.
	SendReply(ctx context.Context, chatJID string, quote *Message, text string) error
	SendImage(ctx context.Context, chatJID string, media Media, caption string) error
	SendVideo(ctx context.Context, chatJID string, media Media, caption string) error
	SendAudio(ctx context.Context, chatJID string, media Media) error
	React(ctx context.Context, chatJID, messageID, emoji string) error

	ProfileImageURL(ctx context.Context, userJID string, quality ImageQuality) (string, error)
	GroupMetadata(ctx context.Context, groupJID string) (*GroupInfo, error)
}

// BareNumber strips the server part and any device suffix from a JID:
// "4915551234:12@s.whatsapp.net" -> "4915551234".
func BareNumber(jid string) string {
	if i := strings.IndexByte(jid, '@'); i >= 0 {
		jid = jid[:i]
	}
	if i := strings.IndexByte(jid, ':'); i >= 0 {
		jid = jid[:i]
	}
	return jid
}

// UserJID builds a personal-chat JID from a bare phone number.
func UserJID(number string) string {
	return BareNumber(number) + "@s.whatsapp.net"
}

// IsGroupJID reports whether the JID addresses a group conversation.
func IsGroupJID(jid string) bool {
	return strings.HasSuffix(jid, "@g.us")
}
