package gateway

import (
	"context"
	"net/url"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/messaging"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

var _ messaging.Gateway = (*Client)(nil)

func (c *Client) Conversations(ctx context.Context) ([]messaging.Conversation, error) {
	var convs []messaging.Conversation
	if err := c.get(ctx, "/mensajes/conversaciones", nil, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

func (c *Client) CreateConversation(ctx context.Context, data messaging.CreateConversation) (messaging.Conversation, error) {
	var conv messaging.Conversation
	if err := c.post(ctx, "/mensajes/conversaciones", data, &conv); err != nil {
		return messaging.Conversation{}, err
	}
	return conv, nil
}

func (c *Client) Messages(ctx context.Context, conversationID string) ([]messaging.Message, error) {
	var msgs []messaging.Message
	if err := c.get(ctx, "/mensajes/conversacion/"+conversationID, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *Client) ConversationInfo(ctx context.Context, conversationID string) (messaging.Conversation, error) {
	var conv messaging.Conversation
	if err := c.get(ctx, "/mensajes/conversaciones/"+conversationID, nil, &conv); err != nil {
		return messaging.Conversation{}, err
	}
	return conv, nil
}

func (c *Client) Send(ctx context.Context, data messaging.SendMessage) (messaging.Message, error) {
	var msg messaging.Message
	if err := c.post(ctx, "/mensajes", data, &msg); err != nil {
		return messaging.Message{}, err
	}
	return msg, nil
}

func (c *Client) MarkRead(ctx context.Context, messageID string) error {
	return c.put(ctx, "/mensajes/"+messageID+"/leer", nil, nil)
}

func (c *Client) SearchUsers(ctx context.Context, query string) ([]social.UserInfo, error) {
	q := url.Values{}
	q.Set("q", query)
	var users []social.UserInfo
	if err := c.get(ctx, "/usuarios/search/query", q, &users); err != nil {
		return nil, err
	}
	return users, nil
}
