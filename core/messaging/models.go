package messaging

import (
	"time"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

// Conversation kinds.
const (
	KindPrivate = "privada"
	KindGroup   = "grupal"
)

type Conversation struct {
	ID           string            `json:"id_conversacion"`
	Kind         string            `json:"tipo"`
	Name         string            `json:"nombre,omitempty"`
	CreatedAt    time.Time         `json:"fecha_creacion"`
	Participants []social.UserInfo `json:"participantes,omitempty"`
	LastMessage  *Message          `json:"ultimo_mensaje,omitempty"`
	Unread       int               `json:"mensajes_no_leidos"`
}

// IsGroup reports the conversation kind.
func (c Conversation) IsGroup() bool { return c.Kind == KindGroup }

// Other returns the other participant of a private conversation.
func (c Conversation) Other(selfID string) (social.UserInfo, bool) {
	for _, p := range c.Participants {
		if p.ID != selfID {
			return p, true
		}
	}
	return social.UserInfo{}, false
}

type Message struct {
	ID             string    `json:"id_mensaje"`
	ConversationID string    `json:"id_conversacion"`
	AuthorID       string    `json:"id_user"`
	Content        string    `json:"contenido"`
	SentAt         time.Time `json:"fecha_envio"`
	Read           bool      `json:"leido"`
}

// CreateConversation is the wire payload for POST /mensajes/conversaciones.
type CreateConversation struct {
	Kind         string   `json:"tipo"`
	Name         string   `json:"nombre,omitempty"`
	Participants []string `json:"participantes"`
}

// SendMessage is the wire payload for POST /mensajes.
type SendMessage struct {
	ConversationID string `json:"id_conversacion"`
	Content        string `json:"contenido"`
}
