package domain

import (
	"context"

	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/xcontext"
)

type NotificationDomain interface {
	GetList(context.Context, *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	MarkRead(context.Context, *model.MarkNotificationReadRequest) (*model.MarkNotificationReadResponse, error)
	MarkAllRead(context.Context, *model.MarkAllNotificationsReadRequest) (*model.MarkAllNotificationsReadResponse, error)
	ClearAll(context.Context, *model.ClearNotificationsRequest) (*model.ClearNotificationsResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationDomain(notificationRepo repository.NotificationRepository) *notificationDomain {
	return &notificationDomain{notificationRepo: notificationRepo}
}

func (d *notificationDomain) GetList(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Limit must be between 1 and %d", cfg.MaxLimit)
	}

	userID := xcontext.RequestUserID(ctx)
	notifications, err := d.notificationRepo.GetList(ctx, userID, req.Cursor, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	unread, err := d.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return nil, errorx.Unknown
	}

	clientNotifications := []model.Notification{}
	for i := range notifications {
		clientNotifications = append(clientNotifications, model.ConvertNotification(&notifications[i]))
	}

	var nextCursor int64
	if len(notifications) == req.Limit {
		nextCursor = notifications[len(notifications)-1].ID
	}

	return &model.GetNotificationsResponse{
		Notifications: clientNotifications,
		UnreadCount:   unread,
		NextCursor:    nextCursor,
	}, nil
}

func (d *notificationDomain) MarkRead(
	ctx context.Context, req *model.MarkNotificationReadRequest,
) (*model.MarkNotificationReadResponse, error) {
	err := d.notificationRepo.MarkRead(ctx, xcontext.RequestUserID(ctx), req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notification as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkNotificationReadResponse{}, nil
}

func (d *notificationDomain) MarkAllRead(
	ctx context.Context, req *model.MarkAllNotificationsReadRequest,
) (*model.MarkAllNotificationsReadResponse, error) {
	err := d.notificationRepo.MarkAllRead(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark all notifications as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkAllNotificationsReadResponse{}, nil
}

func (d *notificationDomain) ClearAll(
	ctx context.Context, req *model.ClearNotificationsRequest,
) (*model.ClearNotificationsResponse, error) {
	err := d.notificationRepo.ClearAll(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot clear notifications: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ClearNotificationsResponse{}, nil
}
