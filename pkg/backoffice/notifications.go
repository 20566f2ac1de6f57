package backoffice

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gega19/barber-app-backoffice-sub001/internal/models"
)

type NotificationsService struct {
	c *Client
}

type NotificationListFilters struct {
	UserID string
	Type   string
	Unread bool
}

// SendNotificationInput targets one user via UserID, a role via
// TargetRole, or everyone when both are empty.
type SendNotificationInput struct {
	UserID     *string        `json:"userId,omitempty"`
	TargetRole string         `json:"targetRole,omitempty"`
	Type       string         `json:"type,omitempty"`
	Title      string         `json:"title"`
	Body       string         `json:"body,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

func (s *NotificationsService) List(ctx context.Context, page, limit int, filters *NotificationListFilters) ([]models.Notification, *Pagination, error) {
	q := pageQuery(page, limit)
	if filters != nil {
		if filters.UserID != "" {
			q.Set("userId", filters.UserID)
		}
		if filters.Type != "" {
			q.Set("type", filters.Type)
		}
		if filters.Unread {
			q.Set("unread", "true")
		}
	}

	return doJSON[[]models.Notification](ctx, s.c, http.MethodGet, "/notifications", q, nil)
}

func (s *NotificationsService) Get(ctx context.Context, id string) (*models.Notification, error) {
	data, _, err := doJSON[models.Notification](ctx, s.c, http.MethodGet, "/notifications/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *NotificationsService) Send(ctx context.Context, in SendNotificationInput) (*models.Notification, error) {
	data, _, err := doJSON[models.Notification](ctx, s.c, http.MethodPost, "/notifications", nil, in)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *NotificationsService) MarkRead(ctx context.Context, id string) error {
	_, _, err := doJSON[map[string]any](ctx, s.c, http.MethodPatch, "/notifications/"+id+"/read", nil, nil)
	return err
}

func (s *NotificationsService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	q := url.Values{}
	if userID != "" {
		q.Set("userId", userID)
	}

	data, _, err := doJSON[struct {
		Unread int64 `json:"unread"`
	}](ctx, s.c, http.MethodGet, "/notifications/unread-count", q, nil)
	if err != nil {
		return 0, err
	}
	return data.Unread, nil
}

func (s *NotificationsService) Delete(ctx context.Context, id string) error {
	_, _, err := doJSON[map[string]any](ctx, s.c, http.MethodDelete, "/notifications/"+id, nil, nil)
	return err
}
