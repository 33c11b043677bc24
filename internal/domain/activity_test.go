package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func newTestActivityDomain() *activityDomain {
	return NewActivityDomain(
		repository.NewActivityRepository(),
		repository.NewOrganizationRepository(),
		repository.NewMemberRepository(),
	)
}

func Test_activityDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	activityDomain := newTestActivityDomain()
	ctxStaff1 := testutil.MockContextWithUserID(ctx, testutil.NpoStaff1.ID)

	// Create a draft local activity.
	createResp, err := activityDomain.Create(ctxStaff1, &model.CreateActivityRequest{
		OrganizationID: testutil.Organization1.ID,
		Type:           "local",
		Category:       "beach-cleanup",
		Title:          "Harbour Cleanup",
		Frequency:      "once",
		Country:        "PT",
		SDG:            14,
		XpReward:       30,
		StartDate:      time.Now().Add(24 * time.Hour).Format(model.DefaultTimeLayout),
	})
	require.NoError(t, err)

	activity, err := repository.NewActivityRepository().GetByID(ctx, createResp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ActivityDraft, activity.Status)
	require.False(t, activity.QrToken.Valid)

	// No QR before opening.
	_, err = activityDomain.GetQR(ctxStaff1, &model.GetActivityQRRequest{ID: createResp.ID})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.NotOpen), err.(errorx.Error).Code)

	// Opening a presence activity issues the token.
	transitionResp, err := activityDomain.Transition(ctxStaff1, &model.TransitionActivityRequest{
		ID:     createResp.ID,
		Target: "open",
	})
	require.NoError(t, err)
	require.Equal(t, "open", transitionResp.Status)

	activity, err = repository.NewActivityRepository().GetByID(ctx, createResp.ID)
	require.NoError(t, err)
	require.True(t, activity.QrToken.Valid)
	require.True(t, activity.QrTokenIssuedAt.Valid)
	token := activity.QrToken.String

	// Repeating the current status is a no-op and keeps the token.
	_, err = activityDomain.Transition(ctxStaff1, &model.TransitionActivityRequest{
		ID:     createResp.ID,
		Target: "open",
	})
	require.NoError(t, err)

	activity, err = repository.NewActivityRepository().GetByID(ctx, createResp.ID)
	require.NoError(t, err)
	require.Equal(t, token, activity.QrToken.String)

	// The QR payload embeds the token verbatim.
	qrResp, err := activityDomain.GetQR(ctxStaff1, &model.GetActivityQRRequest{ID: createResp.ID})
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf(
		"https://app.example.com/validate-activity?activityId=%s&token=%s",
		createResp.ID, token), qrResp.URL)

	// The reward is frozen once open.
	_, err = activityDomain.Update(ctxStaff1, &model.UpdateActivityRequest{
		ID:       createResp.ID,
		Title:    "Harbour Cleanup, extended",
		XpReward: 99,
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.BadRequest), err.(errorx.Error).Code)

	// Other fields stay editable.
	_, err = activityDomain.Update(ctxStaff1, &model.UpdateActivityRequest{
		ID:       createResp.ID,
		Title:    "Harbour Cleanup, extended",
		XpReward: 30,
	})
	require.NoError(t, err)

	// Closing clears the token for good.
	_, err = activityDomain.Transition(ctxStaff1, &model.TransitionActivityRequest{
		ID:     createResp.ID,
		Target: "closed",
	})
	require.NoError(t, err)

	activity, err = repository.NewActivityRepository().GetByID(ctx, createResp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ActivityClosed, activity.Status)
	require.False(t, activity.QrToken.Valid)

	// Closed is a dead end.
	_, err = activityDomain.Transition(ctxStaff1, &model.TransitionActivityRequest{
		ID:     createResp.ID,
		Target: "open",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.BadRequest), err.(errorx.Error).Code)
}

func Test_activityDomain_Create_validation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	activityDomain := newTestActivityDomain()
	ctxStaff1 := testutil.MockContextWithUserID(ctx, testutil.NpoStaff1.ID)
	startDate := time.Now().Format(model.DefaultTimeLayout)

	// Events cannot repeat.
	_, err := activityDomain.Create(ctxStaff1, &model.CreateActivityRequest{
		OrganizationID: testutil.Organization1.ID,
		Type:           "event",
		Title:          "Weekly gathering",
		Frequency:      "role",
		XpReward:       10,
		StartDate:      startDate,
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.BadRequest), err.(errorx.Error).Code)

	// Negative rewards are refused.
	_, err = activityDomain.Create(ctxStaff1, &model.CreateActivityRequest{
		OrganizationID: testutil.Organization1.ID,
		Type:           "online",
		Title:          "Translate articles",
		Frequency:      "role",
		XpReward:       -5,
		StartDate:      startDate,
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.BadRequest), err.(errorx.Error).Code)

	// Staff cannot create under a foreign organization.
	_, err = activityDomain.Create(ctxStaff1, &model.CreateActivityRequest{
		OrganizationID: testutil.Organization2.ID,
		Type:           "local",
		Title:          "Forest walk",
		Frequency:      "once",
		XpReward:       10,
		StartDate:      startDate,
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.PermissionDenied), err.(errorx.Error).Code)

	// A zero reward is a valid recognition-only activity.
	_, err = activityDomain.Create(ctxStaff1, &model.CreateActivityRequest{
		OrganizationID: testutil.Organization1.ID,
		Type:           "local",
		Title:          "Orientation visit",
		Frequency:      "once",
		XpReward:       0,
		StartDate:      startDate,
	})
	require.NoError(t, err)
}

func Test_activityDomain_GetQR_onlineActivity(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	activityDomain := newTestActivityDomain()
	ctxStaff1 := testutil.MockContextWithUserID(ctx, testutil.NpoStaff1.ID)

	createResp, err := activityDomain.Create(ctxStaff1, &model.CreateActivityRequest{
		OrganizationID: testutil.Organization1.ID,
		Type:           "online",
		Title:          "Remote mentoring",
		Frequency:      "role",
		XpReward:       10,
		StartDate:      time.Now().Format(model.DefaultTimeLayout),
	})
	require.NoError(t, err)

	// Opening an online activity issues no token.
	_, err = activityDomain.Transition(ctxStaff1, &model.TransitionActivityRequest{
		ID:     createResp.ID,
		Target: "open",
	})
	require.NoError(t, err)

	activity, err := repository.NewActivityRepository().GetByID(ctx, createResp.ID)
	require.NoError(t, err)
	require.False(t, activity.QrToken.Valid)

	_, err = activityDomain.GetQR(ctxStaff1, &model.GetActivityQRRequest{ID: createResp.ID})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.WrongType), err.(errorx.Error).Code)
}

func Test_activityDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	activityDomain := newTestActivityDomain()

	// The fixtures seed three activities with distinct created_at values.
	resp, err := activityDomain.GetList(ctx, &model.GetListActivityRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Activities, 2)
	require.NotEmpty(t, resp.NextCursor)

	// Newest first.
	require.Equal(t, testutil.DraftActivity1.ID, resp.Activities[0].ID)
	require.Equal(t, testutil.EventActivity1.ID, resp.Activities[1].ID)

	// The cursor picks up where the first page stopped.
	resp, err = activityDomain.GetList(ctx, &model.GetListActivityRequest{
		Cursor: resp.NextCursor,
		Limit:  2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Activities, 1)
	require.Equal(t, testutil.LocalActivity1.ID, resp.Activities[0].ID)
	require.Empty(t, resp.NextCursor)

	// Filters narrow by status and type.
	resp, err = activityDomain.GetList(ctx, &model.GetListActivityRequest{Status: "open"})
	require.NoError(t, err)
	require.Len(t, resp.Activities, 2)

	resp, err = activityDomain.GetList(ctx, &model.GetListActivityRequest{Type: "event"})
	require.NoError(t, err)
	require.Len(t, resp.Activities, 1)
	require.Equal(t, testutil.EventActivity1.ID, resp.Activities[0].ID)

	// Limits outside the cap are refused.
	_, err = activityDomain.GetList(ctx, &model.GetListActivityRequest{Limit: 51})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.BadRequest), err.(errorx.Error).Code)
}
