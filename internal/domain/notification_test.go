package domain

import (
	"fmt"
	"testing"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/idutil"
	"github.com/voluntree-lab/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_notificationDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	notificationRepo := repository.NewNotificationRepository()
	notificationDomain := NewNotificationDomain(notificationRepo)

	ids := make([]int64, 0, 5)
	for i := 0; i < 5; i++ {
		notification := &entity.Notification{
			ID:          idutil.NextNotificationID(),
			RecipientID: testutil.Member1.ID,
			Type:        entity.NotificationSystem,
			Title:       fmt.Sprintf("Announcement %d", i),
		}
		require.NoError(t, notificationRepo.Create(ctx, notification))
		ids = append(ids, notification.ID)
	}

	// Newest first, with the unread total alongside.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.Member1.ID)
	resp, err := notificationDomain.GetList(ctxUser1, &model.GetNotificationsRequest{Limit: 3})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 3)
	require.Equal(t, int64(5), resp.UnreadCount)
	require.Equal(t, ids[4], resp.Notifications[0].ID)
	require.Equal(t, ids[2], resp.Notifications[2].ID)
	require.Equal(t, ids[2], resp.NextCursor)

	// The cursor continues below the last seen id.
	resp, err = notificationDomain.GetList(ctxUser1, &model.GetNotificationsRequest{
		Cursor: resp.NextCursor,
		Limit:  3,
	})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)
	require.Equal(t, ids[1], resp.Notifications[0].ID)
	require.Equal(t, ids[0], resp.Notifications[1].ID)
	require.Zero(t, resp.NextCursor)

	// Marking one read drops the unread count; repeating is a no-op.
	_, err = notificationDomain.MarkRead(ctxUser1, &model.MarkNotificationReadRequest{ID: ids[0]})
	require.NoError(t, err)
	_, err = notificationDomain.MarkRead(ctxUser1, &model.MarkNotificationReadRequest{ID: ids[0]})
	require.NoError(t, err)

	resp, err = notificationDomain.GetList(ctxUser1, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(4), resp.UnreadCount)

	// Another member cannot mark someone else's notification.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.Member2.ID)
	_, err = notificationDomain.MarkRead(ctxUser2, &model.MarkNotificationReadRequest{ID: ids[1]})
	require.NoError(t, err)

	resp, err = notificationDomain.GetList(ctxUser1, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(4), resp.UnreadCount)

	// Mark all, then clear.
	_, err = notificationDomain.MarkAllRead(ctxUser1, &model.MarkAllNotificationsReadRequest{})
	require.NoError(t, err)

	resp, err = notificationDomain.GetList(ctxUser1, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.UnreadCount)
	require.Len(t, resp.Notifications, 5)
	for _, n := range resp.Notifications {
		require.True(t, n.Read)
	}

	_, err = notificationDomain.ClearAll(ctxUser1, &model.ClearNotificationsRequest{})
	require.NoError(t, err)

	resp, err = notificationDomain.GetList(ctxUser1, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Notifications)
}
