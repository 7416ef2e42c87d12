package inmem

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/notify"
)

var _ notify.Gateway = (*Store)(nil)

// PushNotification appends a notification for a user; seed/test hook.
func (s *Store) PushNotification(n notify.Notification) notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.SentAt.IsZero() {
		n.SentAt = nowFunc()
	}
	s.notifications = append(s.notifications, n)
	return n
}

func (s *Store) Notifications(ctx context.Context, skip, limit int) ([]notify.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var mine []notify.Notification
	for _, n := range s.notifications {
		if n.UserID == s.self.ID {
			mine = append(mine, n)
		}
	}
	mine = sortedByTimeDesc(mine, func(n notify.Notification) time.Time { return n.SentAt })
	return paginate(mine, skip, limit), nil
}

func (s *Store) UnreadCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.notifications {
		if it.UserID == s.self.ID && !it.Read {
			n++
		}
	}
	return n, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) MarkAllRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].UserID == s.self.ID {
			s.notifications[i].Read = true
		}
	}
	return nil
}

func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
