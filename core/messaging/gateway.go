package messaging

import (
	"context"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

// Gateway is the slice of the remote gateway the messaging controller and
// the detail view's conversation mode depend on.
type Gateway interface {
	Conversations(ctx context.Context) ([]Conversation, error)
	CreateConversation(ctx context.Context, data CreateConversation) (Conversation, error)
	Messages(ctx context.Context, conversationID string) ([]Message, error)
	ConversationInfo(ctx context.Context, conversationID string) (Conversation, error)
	Send(ctx context.Context, data SendMessage) (Message, error)
	MarkRead(ctx context.Context, messageID string) error
	SearchUsers(ctx context.Context, query string) ([]social.UserInfo, error)
}
