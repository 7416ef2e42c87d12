package messaging

import (
	"context"
	"sync"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

// searchMinChars is the query length below which no user search is issued.
const searchMinChars = 2

// Controller owns the conversation list and the new-conversation flows.
// Individual message threads are owned by the detail view.
type Controller struct {
	gw     Gateway
	sess   *session.Session
	conf   *core.Config
	logger core.Logger

	mu            sync.Mutex
	conversations []Conversation
	searchResults []social.UserInfo

	Banner core.Banner
}

func NewController(gw Gateway, sess *session.Session, conf *core.Config, logger core.Logger, bus *core.Broadcast) *Controller {
	c := &Controller{gw: gw, sess: sess, conf: conf, logger: logger}
	// out-of-band "conversation updated" signal: reload whichever list is
	// currently shown
	bus.Subscribe(core.TopicConversationUpdated, func() { c.Load(context.Background()) })
	return c
}

func (c *Controller) Load(ctx context.Context) {
	convs, err := c.gw.Conversations(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Error("loading conversations", err, c.sess.User())
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al cargar conversaciones"), c.conf.BannerDelay)
		return
	}
	c.conversations = convs
}

func (c *Controller) Conversations() []Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Conversation(nil), c.conversations...)
}

// SearchUsers queries by name fragment. Queries shorter than two characters
// clear the results and hit nothing.
func (c *Controller) SearchUsers(ctx context.Context, query string) []social.UserInfo {
	query = core.CleanString(query)
	if len([]rune(query)) < searchMinChars {
		c.mu.Lock()
		c.searchResults = nil
		c.mu.Unlock()
		return nil
	}
	users, err := c.gw.SearchUsers(ctx, query)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("searching users", err)
		c.searchResults = nil
		return nil
	}
	// never offer the session user
	self := c.sess.User().ID
	kept := users[:0]
	for _, u := range users {
		if u.ID != self {
			kept = append(kept, u)
		}
	}
	c.searchResults = kept
	return append([]social.UserInfo(nil), kept...)
}

// StartIndividual creates a private conversation with the given user, or
// returns the existing one without issuing any create call when the pair
// already shares a private conversation.
func (c *Controller) StartIndividual(ctx context.Context, other social.UserInfo) (Conversation, error) {
	self := c.sess.User().ID

	c.mu.Lock()
	for _, conv := range c.conversations {
		if conv.IsGroup() {
			continue
		}
		for _, p := range conv.Participants {
			if p.ID == other.ID {
				c.mu.Unlock()
				return conv, nil
			}
		}
	}
	c.mu.Unlock()

	conv, err := c.gw.CreateConversation(ctx, CreateConversation{
		Kind:         KindPrivate,
		Participants: []string{self, other.ID},
	})
	if err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al crear conversación"), c.conf.BannerDelay)
		return Conversation{}, err
	}
	if len(conv.Participants) == 0 {
		usr := c.sess.User()
		conv.Participants = []social.UserInfo{
			{ID: usr.ID, Name: usr.Name, LastName: usr.LastName, Avatar: usr.Avatar},
			other,
		}
	}

	c.mu.Lock()
	c.conversations = append([]Conversation{conv}, c.conversations...)
	c.mu.Unlock()
	return conv, nil
}

// StartGroup creates a group conversation. A non-empty name and at least
// one other participant are required before any call is issued.
func (c *Controller) StartGroup(ctx context.Context, name string, others []social.UserInfo) (Conversation, error) {
	name = core.CleanString(name)
	if name == "" {
		err := core.NewValidationError(nil, core.FieldError{Field: "nombre", Error: "Las conversaciones grupales deben tener un nombre"})
		c.Banner.Show(core.BannerError, core.DisplayError(err, ""), c.conf.BannerDelay)
		return Conversation{}, err
	}
	if len(others) == 0 {
		err := core.NewValidationError(nil, core.FieldError{Field: "participantes", Error: "Selecciona al menos un participante"})
		c.Banner.Show(core.BannerError, core.DisplayError(err, ""), c.conf.BannerDelay)
		return Conversation{}, err
	}

	participants := []string{c.sess.User().ID}
	for _, u := range others {
		participants = append(participants, u.ID)
	}
	conv, err := c.gw.CreateConversation(ctx, CreateConversation{
		Kind:         KindGroup,
		Name:         name,
		Participants: participants,
	})
	if err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al crear conversación"), c.conf.BannerDelay)
		return Conversation{}, err
	}

	c.mu.Lock()
	c.conversations = append([]Conversation{conv}, c.conversations...)
	c.mu.Unlock()
	return conv, nil
}
