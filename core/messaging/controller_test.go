package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

type fakeGateway struct {
	conversations []Conversation
	users         []social.UserInfo
	createCalls   int
	searchCalls   int
}

func (g *fakeGateway) Conversations(ctx context.Context) ([]Conversation, error) {
	return g.conversations, nil
}

func (g *fakeGateway) CreateConversation(ctx context.Context, data CreateConversation) (Conversation, error) {
	g.createCalls++
	return Conversation{ID: "conv-new", Kind: data.Kind, Name: data.Name}, nil
}

func (g *fakeGateway) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	return nil, nil
}

func (g *fakeGateway) ConversationInfo(ctx context.Context, conversationID string) (Conversation, error) {
	return Conversation{ID: conversationID}, nil
}

func (g *fakeGateway) Send(ctx context.Context, data SendMessage) (Message, error) {
	return Message{ID: "m-1", ConversationID: data.ConversationID, Content: data.Content}, nil
}

func (g *fakeGateway) MarkRead(ctx context.Context, messageID string) error { return nil }

func (g *fakeGateway) SearchUsers(ctx context.Context, query string) ([]social.UserInfo, error) {
	g.searchCalls++
	return g.users, nil
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func setupController(t *testing.T, gw Gateway) *Controller {
	t.Helper()
	sess := session.TestSession(session.User{ID: "u-1", Name: "Ana"})
	return NewController(gw, sess, core.TestConfig(), nopLogger{}, core.NewBroadcast())
}

func TestSearchUsersMinLength(t *testing.T) {
	gw := &fakeGateway{users: []social.UserInfo{{ID: "u-2", Name: "Luis"}}}
	c := setupController(t, gw)
	ctx := context.Background()

	assert.Nil(t, c.SearchUsers(ctx, "l"))
	assert.Nil(t, c.SearchUsers(ctx, "  l  "))
	assert.Zero(t, gw.searchCalls)

	hits := c.SearchUsers(ctx, "lu")
	assert.Equal(t, 1, gw.searchCalls)
	assert.Len(t, hits, 1)
}

func TestSearchUsersExcludesSelf(t *testing.T) {
	gw := &fakeGateway{users: []social.UserInfo{
		{ID: "u-1", Name: "Ana"},
		{ID: "u-2", Name: "Luis"},
	}}
	c := setupController(t, gw)

	hits := c.SearchUsers(context.Background(), "an")
	if assert.Len(t, hits, 1) {
		assert.Equal(t, "u-2", hits[0].ID)
	}
}

// Starting a chat with someone who already shares a private conversation
// must reuse it instead of creating a duplicate.
func TestStartIndividualDeduplicates(t *testing.T) {
	existing := Conversation{
		ID:   "conv-1",
		Kind: KindPrivate,
		Participants: []social.UserInfo{
			{ID: "u-1"}, {ID: "u-2"},
		},
	}
	gw := &fakeGateway{conversations: []Conversation{existing}}
	c := setupController(t, gw)
	ctx := context.Background()
	c.Load(ctx)

	conv, err := c.StartIndividual(ctx, social.UserInfo{ID: "u-2", Name: "Luis"})
	if err != nil {
		t.Fatalf("StartIndividual() failed: %v", err)
	}
	assert.Equal(t, "conv-1", conv.ID)
	assert.Zero(t, gw.createCalls)

	// a group chat containing the same user does not count
	conv, err = c.StartIndividual(ctx, social.UserInfo{ID: "u-3", Name: "Eva"})
	if err != nil {
		t.Fatalf("StartIndividual() failed: %v", err)
	}
	assert.Equal(t, "conv-new", conv.ID)
	assert.Equal(t, 1, gw.createCalls)
	// participants back-filled when the backend omits them
	assert.Len(t, conv.Participants, 2)
}

func TestStartGroupValidation(t *testing.T) {
	gw := &fakeGateway{}
	c := setupController(t, gw)
	ctx := context.Background()

	_, err := c.StartGroup(ctx, "", []social.UserInfo{{ID: "u-2"}})
	assert.Error(t, err)
	_, err = c.StartGroup(ctx, "Estudio", nil)
	assert.Error(t, err)
	assert.Zero(t, gw.createCalls)

	conv, err := c.StartGroup(ctx, "Estudio", []social.UserInfo{{ID: "u-2"}})
	if err != nil {
		t.Fatalf("StartGroup() failed: %v", err)
	}
	assert.Equal(t, KindGroup, conv.Kind)
}
