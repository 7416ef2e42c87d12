package notify

import (
	"context"
	"sync"
	"time"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
)

// Notification kinds.
const (
	KindComment        = "comentario"
	KindReaction       = "reaccion"
	KindFriendRequest  = "solicitud_amistad"
	KindFriendAccepted = "amistad_aceptada"
	KindRideRequest    = "solicitud_ruta"
	KindMessage        = "mensaje"
	KindNewGrade       = "nota_nueva"
	KindOther          = "otro"
)

type Notification struct {
	ID          string    `json:"id_notificacion"`
	UserID      string    `json:"id_user"`
	Content     string    `json:"contenido"`
	Kind        string    `json:"tipo"`
	SentAt      time.Time `json:"fecha_envio"`
	Read        bool      `json:"leida"`
	ReferenceID string    `json:"id_referencia,omitempty"`
}

// Gateway is the slice of the remote gateway the notifications controller
// depends on.
type Gateway interface {
	Notifications(ctx context.Context, skip, limit int) ([]Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
	SetJoinState(ctx context.Context, requestID, state string) error
}

// Controller owns the notification list. Responding to a ride-request
// notification is the one place the process-wide carpooling-updated signal
// is published from.
type Controller struct {
	gw     Gateway
	sess   *session.Session
	conf   *core.Config
	logger core.Logger
	bus    *core.Broadcast

	mu            sync.Mutex
	notifications []Notification
	unread        int

	Banner core.Banner
}

func NewController(gw Gateway, sess *session.Session, conf *core.Config, logger core.Logger, bus *core.Broadcast) *Controller {
	return &Controller{gw: gw, sess: sess, conf: conf, logger: logger, bus: bus}
}

func (c *Controller) Load(ctx context.Context) {
	notifications, err := c.gw.Notifications(ctx, 0, c.conf.API.PageSize)
	if err != nil {
		c.logger.Error("loading notifications", err, c.sess.User())
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al cargar notificaciones"), c.conf.BannerDelay)
		return
	}
	unread, err := c.gw.UnreadCount(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = notifications
	if err == nil {
		c.unread = unread
	}
}

func (c *Controller) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.notifications...)
}

func (c *Controller) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

func (c *Controller) MarkRead(ctx context.Context, id string) error {
	if err := c.gw.MarkNotificationRead(ctx, id); err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al marcar notificación"), c.conf.BannerDelay)
		return err
	}
	c.mu.Lock()
	for i := range c.notifications {
		if c.notifications[i].ID == id && !c.notifications[i].Read {
			c.notifications[i].Read = true
			if c.unread > 0 {
				c.unread--
			}
		}
	}
	c.mu.Unlock()
	return nil
}

func (c *Controller) MarkAllRead(ctx context.Context) error {
	if err := c.gw.MarkAllRead(ctx); err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al marcar notificaciones"), c.conf.BannerDelay)
		return err
	}
	c.mu.Lock()
	for i := range c.notifications {
		c.notifications[i].Read = true
	}
	c.unread = 0
	c.mu.Unlock()
	return nil
}

func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.gw.DeleteNotification(ctx, id); err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al eliminar notificación"), c.conf.BannerDelay)
		return err
	}
	c.mu.Lock()
	kept := c.notifications[:0]
	for _, n := range c.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	c.notifications = kept
	c.mu.Unlock()
	return nil
}

// RespondRideRequest accepts or rejects a join request straight from its
// notification, marks the notification read and broadcasts the update so
// the carpooling controller reloads.
func (c *Controller) RespondRideRequest(ctx context.Context, n Notification, accept bool) error {
	state := "rechazado"
	okMsg := "Solicitud rechazada."
	if accept {
		state = "aceptado"
		okMsg = "¡Pasajero aceptado! Se ha unido a tu ruta."
	}
	if err := c.gw.SetJoinState(ctx, n.ReferenceID, state); err != nil {
		c.Banner.Show(core.BannerError, core.DisplayError(err, "Error al responder solicitud"), c.conf.BannerDelay)
		return err
	}
	_ = c.MarkRead(ctx, n.ID)
	c.bus.Publish(core.TopicCarpoolingUpdated)
	c.Banner.Show(core.BannerSuccess, okMsg, c.conf.BannerDelay)
	return nil
}
