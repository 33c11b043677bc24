package domain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/testutil"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"github.com/voluntree-lab/backend/pkg/xredis"

	"github.com/stretchr/testify/require"
)

func newTestValidationDomain(publisher *testutil.MockPublisher, redisClient xredis.Client) *validationDomain {
	notificationRepo := repository.NewNotificationRepository()
	return NewValidationDomain(
		repository.NewValidationRepository(),
		repository.NewActivityRepository(),
		repository.NewApplicationRepository(),
		repository.NewMemberRepository(),
		repository.NewBadgeRepository(),
		repository.NewXpHistoryRepository(),
		NewNotifier(notificationRepo, publisher),
		redisClient,
	)
}

func acceptApplication(t *testing.T, ctx context.Context, activityID, applicantID string) {
	t.Helper()
	err := repository.NewApplicationRepository().Create(ctx, &entity.Application{
		Base:        entity.Base{ID: "application-" + activityID + "-" + applicantID},
		ActivityID:  activityID,
		ApplicantID: applicantID,
		Status:      entity.ApplicationAccepted,
	})
	require.NoError(t, err)
}

func Test_validationDomain_Validate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	publisher := &testutil.MockPublisher{}
	redisClient := testutil.NewMockRedisClient()
	validationDomain := newTestValidationDomain(publisher, redisClient)

	acceptApplication(t, ctx, testutil.LocalActivity1.ID, testutil.Member1.ID)

	// A valid token with an accepted application rewards the activity xp.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.Member1.ID)
	resp, err := validationDomain.Validate(ctxUser1, &model.ValidateRequest{
		ActivityID: testutil.LocalActivity1.ID,
		Token:      "fixture-token-1",
	})
	require.NoError(t, err)
	require.Equal(t, 20, resp.ActivityXP)
	require.Equal(t, 0, resp.BadgeXP)
	require.Equal(t, 20, resp.TotalXP)
	require.Empty(t, resp.BadgesGranted)

	member, err := repository.NewMemberRepository().GetByID(ctx, testutil.Member1.ID)
	require.NoError(t, err)
	require.Equal(t, 20, member.XP)

	// One combined history entry carries the full credit.
	entries, err := repository.NewXpHistoryRepository().GetList(
		ctx, testutil.Member1.ID, time.Time{}, "", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 20, entries[0].Points)
	require.Equal(t, testutil.LocalActivity1.Title, entries[0].Title)

	// The committed notification was published to the live channel.
	require.Len(t, publisher.Published, 1)
	require.Equal(t, []byte(testutil.Member1.ID), publisher.Published[0].Key)

	notifications, err := repository.NewNotificationRepository().GetList(
		ctx, testutil.Member1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationReward, notifications[0].Type)
	require.Equal(t, testutil.LocalActivity1.ID, notifications[0].Metadata["activityId"])

	// The monthly leaderboard was bumped post-commit.
	period := time.Now().Format("01-2006")
	board, err := redisClient.ZRevRangeWithScores(ctx, "leaderboard:"+period, 0, 10)
	require.NoError(t, err)
	require.Len(t, board, 1)
	require.Equal(t, testutil.Member1.ID, board[0].Member)
	require.Equal(t, float64(20), board[0].Score)

	// A second redemption conflicts and leaves every balance untouched.
	_, err = validationDomain.Validate(ctxUser1, &model.ValidateRequest{
		ActivityID: testutil.LocalActivity1.ID,
		Token:      "fixture-token-1",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.AlreadyValidated), err.(errorx.Error).Code)

	member, err = repository.NewMemberRepository().GetByID(ctx, testutil.Member1.ID)
	require.NoError(t, err)
	require.Equal(t, 20, member.XP)

	entries, err = repository.NewXpHistoryRepository().GetList(
		ctx, testutil.Member1.ID, time.Time{}, "", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func Test_validationDomain_Validate_tokenMismatch(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	validationDomain := newTestValidationDomain(&testutil.MockPublisher{}, nil)
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.Member1.ID)

	// A wrong token and an unknown activity produce the same error, so a
	// scanner cannot probe which activity ids exist.
	_, badToken := errAndCode(t, validationDomain, ctxUser1, testutil.LocalActivity1.ID, "wrong-token")
	_, unknownActivity := errAndCode(t, validationDomain, ctxUser1, "no-such-activity", "wrong-token")
	require.Equal(t, uint64(errorx.TokenMismatch), badToken)
	require.Equal(t, uint64(errorx.TokenMismatch), unknownActivity)
}

func errAndCode(
	t *testing.T, d *validationDomain, ctx context.Context, activityID, token string,
) (error, uint64) {
	t.Helper()
	_, err := d.Validate(ctx, &model.ValidateRequest{ActivityID: activityID, Token: token})
	require.Error(t, err)
	xerr, ok := err.(errorx.Error)
	require.True(t, ok)
	return err, xerr.Code
}

func Test_validationDomain_Validate_eligibility(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	validationDomain := newTestValidationDomain(&testutil.MockPublisher{}, nil)
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.Member2.ID)

	// Local activities need an accepted application.
	_, err := validationDomain.Validate(ctxUser2, &model.ValidateRequest{
		ActivityID: testutil.LocalActivity1.ID,
		Token:      "fixture-token-1",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.IneligibleForActivity), err.(errorx.Error).Code)

	// Events are open-door.
	resp, err := validationDomain.Validate(ctxUser2, &model.ValidateRequest{
		ActivityID: testutil.EventActivity1.ID,
		Token:      "fixture-token-2",
	})
	require.NoError(t, err)
	require.Equal(t, 10, resp.TotalXP)
}

func Test_validationDomain_Validate_closedActivity(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	validationDomain := newTestValidationDomain(&testutil.MockPublisher{}, nil)
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.Member1.ID)
	acceptApplication(t, ctx, testutil.LocalActivity1.ID, testutil.Member1.ID)

	// Closing an activity drops the token; the printed QR dies with it.
	err := repository.NewActivityRepository().UpdateStatus(
		ctx, testutil.LocalActivity1.ID, entity.ActivityOpen, entity.ActivityClosed,
		map[string]any{"qr_token": nil, "qr_token_issued_at": nil})
	require.NoError(t, err)

	_, err = validationDomain.Validate(ctxUser1, &model.ValidateRequest{
		ActivityID: testutil.LocalActivity1.ID,
		Token:      "fixture-token-1",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.NotOpen), err.(errorx.Error).Code)
}

func Test_validationDomain_RedeemQR(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	validationDomain := newTestValidationDomain(&testutil.MockPublisher{}, nil)
	acceptApplication(t, ctx, testutil.LocalActivity1.ID, testutil.Member1.ID)

	redeem := func(userID, activityID, token string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/validate-activity", nil)
		rctx := testutil.MockContextWithUserID(ctx, userID)
		rctx = xcontext.WithHTTPWriter(rctx, w)
		rctx = xcontext.WithHTTPRequest(rctx, r)

		resp, err := validationDomain.RedeemQR(rctx, &model.RedeemQRRequest{
			ActivityID: activityID,
			Token:      token,
		})
		require.NoError(t, err)
		require.Nil(t, resp)
		return w
	}

	// A fresh scan lands on the success page with the full breakdown.
	w := redeem(testutil.Member1.ID, testutil.LocalActivity1.ID, "fixture-token-1")
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t,
		"https://app.example.com/dashboard?validation=success&xp=20&activityTitle=Beach+Cleanup&activityId=activity1",
		w.Header().Get("Location"))

	// Scanning again is informational, not an error page.
	w = redeem(testutil.Member1.ID, testutil.LocalActivity1.ID, "fixture-token-1")
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t,
		"https://app.example.com/dashboard?validation=already-validated",
		w.Header().Get("Location"))

	// Everything else lands on the error page with the reason.
	w = redeem(testutil.Member2.ID, testutil.LocalActivity1.ID, "wrong-token")
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t,
		"https://app.example.com/dashboard?validation=error&message=Token+does+not+match",
		w.Header().Get("Location"))
}

func Test_validationDomain_Validate_grantsBadges(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	testutil.InsertBadgeFixtures(ctx)

	publisher := &testutil.MockPublisher{}
	validationDomain := newTestValidationDomain(publisher, nil)

	acceptApplication(t, ctx, testutil.LocalActivity1.ID, testutil.Member1.ID)
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.Member1.ID)

	// The first validation unlocks the milestone badge; its bonus folds
	// into the same commit.
	resp, err := validationDomain.Validate(ctxUser1, &model.ValidateRequest{
		ActivityID: testutil.LocalActivity1.ID,
		Token:      "fixture-token-1",
	})
	require.NoError(t, err)
	require.Equal(t, 20, resp.ActivityXP)
	require.Equal(t, 5, resp.BadgeXP)
	require.Equal(t, 25, resp.TotalXP)
	require.Len(t, resp.BadgesGranted, 1)
	require.Equal(t, testutil.FirstValidationBadge.ID, resp.BadgesGranted[0].ID)
	require.Equal(t, 5, resp.BadgesGranted[0].XP)

	member, err := repository.NewMemberRepository().GetByID(ctx, testutil.Member1.ID)
	require.NoError(t, err)
	require.Equal(t, 25, member.XP)

	owned, err := repository.NewBadgeRepository().GetMemberBadges(ctx, testutil.Member1.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Equal(t, testutil.FirstValidationBadge.ID, owned[0].BadgeID)

	// XP history mirrors the breakdown.
	entries, err := repository.NewXpHistoryRepository().GetList(
		ctx, testutil.Member1.ID, time.Time{}, "", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 25, entries[0].Points)

	sum, err := repository.NewXpHistoryRepository().SumPointsByUser(ctx, testutil.Member1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(member.XP), sum)
}
