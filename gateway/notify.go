package gateway

import (
	"context"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/notify"
)

var _ notify.Gateway = (*Client)(nil)

func (c *Client) Notifications(ctx context.Context, skip, limit int) ([]notify.Notification, error) {
	var items []notify.Notification
	if err := c.get(ctx, "/notificaciones", pageQuery(skip, limit), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"no_leidas"`
	}
	if err := c.get(ctx, "/notificaciones/no-leidas", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.put(ctx, "/notificaciones/"+id+"/leer", nil, nil)
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.put(ctx, "/notificaciones/leer-todas", nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.delete(ctx, "/notificaciones/"+id)
}
