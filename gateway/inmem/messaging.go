package inmem

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/messaging"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

var _ messaging.Gateway = (*Store)(nil)

func (s *Store) Conversations(ctx context.Context) ([]messaging.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []messaging.Conversation
	for _, c := range s.conversations {
		if !s.participates(c) {
			continue
		}
		c.Unread = s.unreadIn(c.ID)
		if msgs := s.messages[c.ID]; len(msgs) > 0 {
			last := msgs[len(msgs)-1]
			c.LastMessage = &last
		}
		out = append(out, c)
	}
	return sortedByTimeDesc(out, func(c messaging.Conversation) time.Time {
		if c.LastMessage != nil {
			return c.LastMessage.SentAt
		}
		return c.CreatedAt
	}), nil
}

func (s *Store) participates(c messaging.Conversation) bool {
	for _, p := range c.Participants {
		if p.ID == s.self.ID {
			return true
		}
	}
	return false
}

func (s *Store) unreadIn(convID string) int {
	n := 0
	for _, m := range s.messages[convID] {
		if !m.Read && m.AuthorID != s.self.ID {
			n++
		}
	}
	return n
}

func (s *Store) CreateConversation(ctx context.Context, data messaging.CreateConversation) (messaging.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv := messaging.Conversation{
		ID:        uuid.NewString(),
		Kind:      data.Kind,
		Name:      data.Name,
		CreatedAt: nowFunc(),
	}
	for _, id := range data.Participants {
		conv.Participants = append(conv.Participants, s.userInfo(id))
	}
	s.conversations = append(s.conversations, conv)
	return conv, nil
}

func (s *Store) userInfo(id string) social.UserInfo {
	for _, acct := range s.accounts {
		if acct.user.ID == id {
			u := acct.user
			return social.UserInfo{ID: u.ID, Name: u.Name, LastName: u.LastName, Avatar: u.Avatar}
		}
	}
	return social.UserInfo{ID: id}
}

func (s *Store) Messages(ctx context.Context, conversationID string) ([]messaging.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]messaging.Message, len(s.messages[conversationID]))
	copy(out, s.messages[conversationID])
	return out, nil
}

func (s *Store) ConversationInfo(ctx context.Context, conversationID string) (messaging.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversations {
		if c.ID == conversationID {
			c.Unread = s.unreadIn(c.ID)
			return c, nil
		}
	}
	return messaging.Conversation{}, ErrNotFound
}

func (s *Store) Send(ctx context.Context, data messaging.SendMessage) (messaging.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, c := range s.conversations {
		if c.ID == data.ConversationID {
			found = true
			break
		}
	}
	if !found {
		return messaging.Message{}, ErrNotFound
	}
	msg := messaging.Message{
		ID:             uuid.NewString(),
		ConversationID: data.ConversationID,
		AuthorID:       s.self.ID,
		Content:        data.Content,
		SentAt:         nowFunc(),
	}
	s.messages[data.ConversationID] = append(s.messages[data.ConversationID], msg)
	return msg, nil
}

func (s *Store) MarkRead(ctx context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for convID, msgs := range s.messages {
		for i := range msgs {
			if msgs[i].ID == messageID {
				s.messages[convID][i].Read = true
				return nil
			}
		}
	}
	return ErrNotFound
}

func (s *Store) SearchUsers(ctx context.Context, query string) ([]social.UserInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []social.UserInfo
	for _, acct := range s.accounts {
		u := acct.user
		if containsFold(u.Name+" "+u.LastName, query) || containsFold(u.Email, query) {
			out = append(out, social.UserInfo{ID: u.ID, Name: u.Name, LastName: u.LastName, Avatar: u.Avatar})
		}
	}
	return out, nil
}
