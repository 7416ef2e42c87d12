package inspect

import (
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/academic"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/carpool"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/messaging"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/notify"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/social"
)

// Item is the polymorphic selection the detail view renders. It is a sealed
// set of variants dispatched by type switch; no field sniffing.
type Item interface {
	itemKind() string
}

type PostItem struct {
	Post social.Post
}

type RideItem struct {
	Ride carpool.Ride
}

type ConversationItem struct {
	Conversation messaging.Conversation
}

type GradeItem struct {
	Grade   academic.Grade
	Subject academic.Subject
}

type NotificationItem struct {
	Notification notify.Notification
}

func (PostItem) itemKind() string         { return "publicacion" }
func (RideItem) itemKind() string         { return "ruta" }
func (ConversationItem) itemKind() string { return "conversacion" }
func (GradeItem) itemKind() string        { return "nota" }
func (NotificationItem) itemKind() string { return "notificacion" }

// Kind names the variant for rendering decisions.
func Kind(it Item) string {
	if it == nil {
		return ""
	}
	return it.itemKind()
}
