package gateway

import (
	"context"

	"cypherbot/internal/platform"
)

// platform.Transport implementation. Each method is one frame on the wire.

func (c *Client) SendText(ctx context.Context, chatJID, text string) error {
	return c.send(ctx, frameSendText, sendTextPayload{ChatJID: chatJID, Text: text})
}

func (c *Client) SendReply(ctx context.Context, chatJID string, quote *platform.Message, text string) error {
	p := sendTextPayload{ChatJID: chatJID, Text: text}
	if quote != nil {
		p.QuoteID = quote.ID
		p.QuoteJID = quote.SenderJID
	}
	return c.send(ctx, frameSendText, p)
}

func (c *Client) SendImage(ctx context.Context, chatJID string, media platform.Media, caption string) error {
	return c.sendMedia(ctx, chatJID, "image", media, caption)
}

func (c *Client) SendVideo(ctx context.Context, chatJID string, media platform.Media, caption string) error {
	return c.sendMedia(ctx, chatJID, "video", media, caption)
}

func (c *Client) SendAudio(ctx context.Context, chatJID string, media platform.Media) error {
	return c.sendMedia(ctx, chatJID, "audio", media, "")
}

func (c *Client) sendMedia(ctx context.Context, chatJID, kind string, media platform.Media, caption string) error {
	return c.send(ctx, frameSendMedia, sendMediaPayload{
		ChatJID:  chatJID,
		Kind:     kind,
		URL:      media.URL,
		Data:     media.Data,
		MimeType: media.MimeType,
		FileName: media.FileName,
		Caption:  caption,
	})
}

func (c *Client) React(ctx context.Context, chatJID, messageID, emoji string) error {
	return c.send(ctx, frameReact, reactPayload{ChatJID: chatJID, MessageID: messageID, Emoji: emoji})
}

func (c *Client) ProfileImageURL(ctx context.Context, userJID string, quality platform.ImageQuality) (string, error) {
	var resp profileImageResponse
	err := c.request(ctx, frameProfileImage, profileImageRequest{
		UserJID: userJID,
		Quality: string(quality),
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *Client) GroupMetadata(ctx context.Context, groupJID string) (*platform.GroupInfo, error) {
	var resp groupMetaResponse
	if err := c.request(ctx, frameGroupMeta, groupMetaRequest{GroupJID: groupJID}, &resp); err != nil {
		return nil, err
	}
	return &platform.GroupInfo{
		JID:          resp.JID,
		Subject:      resp.Subject,
		Description:  resp.Description,
		OwnerJID:     resp.OwnerJID,
		Participants: resp.Participants,
		CreatedAt:    resp.CreatedAt,
	}, nil
}
