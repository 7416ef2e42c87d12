package inspect

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/messaging"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

// ConvState tracks the message panel of a conversation item.
// Ready loops on itself for every successful send or reload; the panel only
// re-enters Loading when a different conversation is opened.
type ConvState int

const (
	ConvIdle ConvState = iota
	ConvLoading
	ConvReady
)

var errNothingOpen = errors.New("inspect: no item open")

// Detail drives the right-hand inspector pane. It holds at most one open
// item at a time; opening a new one replaces the previous selection.
type Detail struct {
	social  social.Gateway
	msging  messaging.Gateway
	session *session.Session
	conf    *core.Config
	logger  core.Logger

	Banner core.Banner

	mu        sync.Mutex
	item      Item
	comments  []social.Comment
	messages  []messaging.Message
	convID    string
	convState ConvState

	// OnCommentAdded reports a successful comment back to the feed so the
	// owning post can bump its counter.
	OnCommentAdded func(postID string)
}

func NewDetail(sg social.Gateway, mg messaging.Gateway, sess *session.Session, conf *core.Config, logger core.Logger) *Detail {
	return &Detail{social: sg, msging: mg, session: sess, conf: conf, logger: logger}
}

// Open replaces the current selection. Post items fetch their comment
// thread; conversation items fetch their message history and mark unread
// messages as read. Re-opening the conversation that is already shown is a
// no-op so the ready panel is not torn down under the user.
func (d *Detail) Open(ctx context.Context, it Item) error {
	switch v := it.(type) {
	case ConversationItem:
		return d.openConversation(ctx, v)
	case PostItem:
		return d.openPost(ctx, v)
	default:
		d.mu.Lock()
		d.item = it
		d.comments = nil
		d.messages = nil
		d.convID = ""
		d.convState = ConvIdle
		d.mu.Unlock()
		return nil
	}
}

func (d *Detail) openPost(ctx context.Context, it PostItem) error {
	d.mu.Lock()
	d.item = it
	d.comments = nil
	d.messages = nil
	d.convID = ""
	d.convState = ConvIdle
	d.mu.Unlock()

	comments, err := d.social.Comments(ctx, it.Post.ID)
	if err != nil {
		d.logger.Error("loading comments", err, d.session.User())
		return errors.Wrap(err, "loading comments")
	}
	d.mu.Lock()
	if cur, ok := d.item.(PostItem); ok && cur.Post.ID == it.Post.ID {
		d.comments = comments
	}
	d.mu.Unlock()
	return nil
}

func (d *Detail) openConversation(ctx context.Context, it ConversationItem) error {
	d.mu.Lock()
	if d.convID == it.Conversation.ID && d.convState != ConvIdle {
		d.item = it
		d.mu.Unlock()
		return nil
	}
	d.item = it
	d.comments = nil
	d.messages = nil
	d.convID = it.Conversation.ID
	d.convState = ConvLoading
	d.mu.Unlock()

	msgs, err := d.msging.Messages(ctx, it.Conversation.ID)
	if err != nil {
		d.logger.Error("loading messages", err, d.session.User())
		return errors.Wrap(err, "loading messages")
	}

	d.mu.Lock()
	if d.convID != it.Conversation.ID {
		d.mu.Unlock()
		return nil
	}
	d.messages = msgs
	d.convState = ConvReady
	self := d.session.User().ID
	var unread []string
	for _, m := range msgs {
		if !m.Read && m.AuthorID != self {
			unread = append(unread, m.ID)
		}
	}
	d.mu.Unlock()

	for _, id := range unread {
		if err := d.msging.MarkRead(ctx, id); err != nil {
			d.logger.Warn("marking message read", err)
		}
	}
	return nil
}

// Close clears the selection.
func (d *Detail) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.item = nil
	d.comments = nil
	d.messages = nil
	d.convID = ""
	d.convState = ConvIdle
}

func (d *Detail) Item() Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.item
}

func (d *Detail) Comments() []social.Comment {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]social.Comment, len(d.comments))
	copy(out, d.comments)
	return out
}

func (d *Detail) Messages() []messaging.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]messaging.Message, len(d.messages))
	copy(out, d.messages)
	return out
}

func (d *Detail) ConversationState() ConvState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.convState
}

// SubmitComment posts a comment on the open post item and appends it
// optimistically to the local thread.
func (d *Detail) SubmitComment(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "contenido", Error: "el comentario no puede estar vacío"})
	}

	d.mu.Lock()
	it, ok := d.item.(PostItem)
	d.mu.Unlock()
	if !ok {
		return errNothingOpen
	}

	comment, err := d.social.CreateComment(ctx, it.Post.ID, content)
	if err != nil {
		d.Banner.Show(core.BannerError, core.DisplayError(err, "No se pudo publicar el comentario"), d.conf.BannerDelay)
		return errors.Wrap(err, "creating comment")
	}
	if comment.Author == nil {
		u := d.session.User()
		comment.Author = &social.UserInfo{ID: u.ID, Name: u.Name, LastName: u.LastName, Avatar: u.Avatar}
	}

	d.mu.Lock()
	if cur, stillOpen := d.item.(PostItem); stillOpen && cur.Post.ID == it.Post.ID {
		d.comments = append(d.comments, comment)
	}
	d.mu.Unlock()

	if d.OnCommentAdded != nil {
		d.OnCommentAdded(it.Post.ID)
	}
	return nil
}

// Send delivers a message on the open conversation. The message list stays
// ready; the sent message is appended in place.
func (d *Detail) Send(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "contenido", Error: "el mensaje no puede estar vacío"})
	}

	d.mu.Lock()
	if d.convState != ConvReady {
		d.mu.Unlock()
		return errNothingOpen
	}
	convID := d.convID
	d.mu.Unlock()

	msg, err := d.msging.Send(ctx, messaging.SendMessage{ConversationID: convID, Content: content})
	if err != nil {
		d.Banner.Show(core.BannerError, core.DisplayError(err, "No se pudo enviar el mensaje"), d.conf.BannerDelay)
		return errors.Wrap(err, "sending message")
	}

	d.mu.Lock()
	if d.convID == convID {
		d.messages = append(d.messages, msg)
	}
	d.mu.Unlock()
	return nil
}

// Reload refreshes the open conversation's messages without leaving ready.
func (d *Detail) Reload(ctx context.Context) error {
	d.mu.Lock()
	if d.convState != ConvReady {
		d.mu.Unlock()
		return errNothingOpen
	}
	convID := d.convID
	d.mu.Unlock()

	msgs, err := d.msging.Messages(ctx, convID)
	if err != nil {
		return errors.Wrap(err, "loading messages")
	}
	d.mu.Lock()
	if d.convID == convID {
		d.messages = msgs
	}
	d.mu.Unlock()
	return nil
}
