package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fatih/structs"
	"github.com/voluntree-lab/backend/internal/domain/notification/event"
	"github.com/voluntree-lab/backend/internal/domain/notification/proxy"
	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/idutil"
	"github.com/voluntree-lab/backend/pkg/pubsub"
	"github.com/voluntree-lab/backend/pkg/xcontext"
)

// Notifier writes notification rows and forwards them to the proxy process.
// The row insert joins the caller's transaction; Publish must only be called
// after that transaction committed, because events are derived from durable
// state.
type Notifier struct {
	notificationRepo repository.NotificationRepository
	publisher        pubsub.Publisher
}

func NewNotifier(
	notificationRepo repository.NotificationRepository,
	publisher pubsub.Publisher,
) *Notifier {
	return &Notifier{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// Metadata field names are part of the client contract; the structs tags
// pin the camelCase keys.
type applicationStatusMetadata struct {
	ActivityID    string `structs:"activityId"`
	ApplicationID string `structs:"applicationId"`
	Status        string `structs:"status"`
}

type referralMetadata struct {
	ReferredID   string `structs:"referredId"`
	ReferredName string `structs:"referredName"`
}

type rewardMetadata struct {
	ActivityID    string         `structs:"activityId"`
	ActivityXP    int            `structs:"activityXP"`
	BadgeXP       int            `structs:"badgeXP"`
	TotalXP       int            `structs:"totalXP"`
	BadgesGranted []string       `structs:"badgesGranted"`
	BadgeXPMap    map[string]int `structs:"badgeXPMap"`
}

func (n *Notifier) ApplicationStatus(
	ctx context.Context,
	application *entity.Application,
	target entity.ApplicationStatus,
	npoResponse string,
) (*entity.Notification, error) {
	notification := &entity.Notification{
		ID:          idutil.NextNotificationID(),
		RecipientID: application.ApplicantID,
		Type:        entity.NotificationApplicationStatus,
		Title:       fmt.Sprintf("Your application was %s", target),
		Body:        npoResponse,
		Link:        sql.NullString{Valid: true, String: fmt.Sprintf("/activities/%s", application.ActivityID)},
		Metadata: entity.Map(structs.Map(applicationStatusMetadata{
			ActivityID:    application.ActivityID,
			ApplicationID: application.ID,
			Status:        string(target),
		})),
	}

	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// Referral tells the referrer their code was used. Acceptance-based referral
// badges are granted later, by the reward engine of the referrer's own next
// validation.
func (n *Notifier) Referral(
	ctx context.Context, referrerID string, referred *entity.Member,
) (*entity.Notification, error) {
	notification := &entity.Notification{
		ID:          idutil.NextNotificationID(),
		RecipientID: referrerID,
		Type:        entity.NotificationReferral,
		Title:       fmt.Sprintf("%s joined with your referral code", referred.DisplayName),
		Link:        sql.NullString{Valid: true, String: fmt.Sprintf("/members/%s", referred.ID)},
		Metadata: entity.Map(structs.Map(referralMetadata{
			ReferredID:   referred.ID,
			ReferredName: referred.DisplayName,
		})),
	}

	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// Reward writes the REWARD notification row carrying the full breakdown the
// UI reconciles against after a QR redirect.
func (n *Notifier) Reward(
	ctx context.Context,
	userID string,
	activity *entity.Activity,
	activityXP, badgeXP, totalXP int,
	badgesGranted []string,
	badgeXPMap map[string]int,
) (*entity.Notification, error) {
	notification := &entity.Notification{
		ID:          idutil.NextNotificationID(),
		RecipientID: userID,
		Type:        entity.NotificationReward,
		Title:       fmt.Sprintf("You earned %d XP", totalXP),
		Body:        activity.Title,
		Link:        sql.NullString{Valid: true, String: fmt.Sprintf("/activities/%s", activity.ID)},
		Metadata: entity.Map(structs.Map(rewardMetadata{
			ActivityID:    activity.ID,
			ActivityXP:    activityXP,
			BadgeXP:       badgeXP,
			TotalXP:       totalXP,
			BadgesGranted: badgesGranted,
			BadgeXPMap:    badgeXPMap,
		})),
	}

	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// Publish pushes the committed notification onto the live channel. Delivery
// is at-least-once; failures are logged and the row stays the source of
// truth for the next cold-start.
func (n *Notifier) Publish(ctx context.Context, notification *entity.Notification) {
	if n.publisher == nil {
		return
	}

	ev := event.New(
		&event.NotificationEvent{Notification: model.ConvertNotification(notification)},
		event.Metadata{To: notification.RecipientID},
	)

	b, err := json.Marshal(ev)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal notification event: %v", err)
		return
	}

	err = n.publisher.Publish(ctx, proxy.NotificationTopic, &pubsub.Pack{
		Key: []byte(notification.RecipientID),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish notification event: %v", err)
	}
}
