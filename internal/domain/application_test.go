package domain

import (
	"testing"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func newTestApplicationDomain(publisher *testutil.MockPublisher) *applicationDomain {
	return NewApplicationDomain(
		repository.NewApplicationRepository(),
		repository.NewActivityRepository(),
		repository.NewMemberRepository(),
		NewNotifier(repository.NewNotificationRepository(), publisher),
	)
}

func Test_applicationDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	publisher := &testutil.MockPublisher{}
	applicationDomain := newTestApplicationDomain(publisher)

	// Apply successfully.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.Member2.ID)
	applyResp, err := applicationDomain.Apply(ctxUser2, &model.ApplyRequest{
		ActivityID: testutil.LocalActivity1.ID,
		Message:    "I would love to help",
	})
	require.NoError(t, err)
	require.NotEmpty(t, applyResp.ApplicationID)

	activity, err := repository.NewActivityRepository().GetByID(ctx, testutil.LocalActivity1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, activity.Applicants)

	// A live application blocks a second one.
	_, err = applicationDomain.Apply(ctxUser2, &model.ApplyRequest{
		ActivityID: testutil.LocalActivity1.ID,
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.AlreadyApplied), err.(errorx.Error).Code)

	// Staff of another organization cannot review it.
	ctxStaff2 := testutil.MockContextWithUserID(ctx, testutil.NpoStaff2.ID)
	_, err = applicationDomain.SetStatus(ctxStaff2, &model.SetApplicationStatusRequest{
		ID:     applyResp.ApplicationID,
		Target: "accepted",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.PermissionDenied), err.(errorx.Error).Code)

	// The owning staff accepts with a response.
	ctxStaff1 := testutil.MockContextWithUserID(ctx, testutil.NpoStaff1.ID)
	_, err = applicationDomain.SetStatus(ctxStaff1, &model.SetApplicationStatusRequest{
		ID:          applyResp.ApplicationID,
		Target:      "accepted",
		NpoResponse: "See you on the beach",
	})
	require.NoError(t, err)

	// Both sides of the mirror carry the same state.
	application, err := repository.NewApplicationRepository().GetByID(ctx, applyResp.ApplicationID)
	require.NoError(t, err)
	require.Equal(t, entity.ApplicationAccepted, application.Status)
	require.Equal(t, "See you on the beach", application.NpoResponse.String)
	require.Equal(t, testutil.NpoStaff1.ID, application.LastStatusUpdatedBy.String)

	mirrors, err := repository.NewApplicationRepository().GetListForMember(
		ctx, testutil.Member2.ID, "")
	require.NoError(t, err)
	require.Len(t, mirrors, 1)
	require.Equal(t, application.ID, mirrors[0].ID)
	require.Equal(t, application.Status, mirrors[0].Status)
	require.Equal(t, application.NpoResponse, mirrors[0].NpoResponse)
	require.Equal(t, application.UpdatedAt.UnixNano(), mirrors[0].UpdatedAt.UnixNano())

	// Accepted applicants stay counted.
	activity, err = repository.NewActivityRepository().GetByID(ctx, testutil.LocalActivity1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, activity.Applicants)

	// The applicant was notified and the event left the building.
	notifications, err := repository.NewNotificationRepository().GetList(
		ctx, testutil.Member2.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationApplicationStatus, notifications[0].Type)
	require.Equal(t, "accepted", notifications[0].Metadata["status"])
	require.Len(t, publisher.Published, 1)

	// Accepted is terminal.
	_, err = applicationDomain.SetStatus(ctxStaff1, &model.SetApplicationStatusRequest{
		ID:     applyResp.ApplicationID,
		Target: "rejected",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.BadRequest), err.(errorx.Error).Code)

	// Nothing pending anymore for the organization dashboard.
	countResp, err := applicationDomain.GetPendingCount(ctxStaff1,
		&model.GetPendingApplicationCountRequest{OrganizationID: testutil.Organization1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), countResp.Count)
}

func Test_applicationDomain_CancelAndReapply(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	publisher := &testutil.MockPublisher{}
	applicationDomain := newTestApplicationDomain(publisher)

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.Member1.ID)
	applyResp, err := applicationDomain.Apply(ctxUser1, &model.ApplyRequest{
		ActivityID: testutil.EventActivity1.ID,
	})
	require.NoError(t, err)

	// Only the applicant can cancel.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.Member2.ID)
	_, err = applicationDomain.SetStatus(ctxUser2, &model.SetApplicationStatusRequest{
		ID:     applyResp.ApplicationID,
		Target: "cancelled",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.PermissionDenied), err.(errorx.Error).Code)

	_, err = applicationDomain.SetStatus(ctxUser1, &model.SetApplicationStatusRequest{
		ID:                  applyResp.ApplicationID,
		Target:              "cancelled",
		CancellationMessage: "Something came up",
	})
	require.NoError(t, err)

	// Cancelling frees the applicants counter and stays silent.
	activity, err := repository.NewActivityRepository().GetByID(ctx, testutil.EventActivity1.ID)
	require.NoError(t, err)
	require.Equal(t, 0, activity.Applicants)
	require.Empty(t, publisher.Published)

	// A terminal application does not block a fresh one.
	secondResp, err := applicationDomain.Apply(ctxUser1, &model.ApplyRequest{
		ActivityID: testutil.EventActivity1.ID,
	})
	require.NoError(t, err)
	require.NotEqual(t, applyResp.ApplicationID, secondResp.ApplicationID)

	// Rejecting also decrements the counter and notifies the applicant.
	ctxStaff1 := testutil.MockContextWithUserID(ctx, testutil.NpoStaff1.ID)
	_, err = applicationDomain.SetStatus(ctxStaff1, &model.SetApplicationStatusRequest{
		ID:          secondResp.ApplicationID,
		Target:      "rejected",
		NpoResponse: "The event is full",
	})
	require.NoError(t, err)

	activity, err = repository.NewActivityRepository().GetByID(ctx, testutil.EventActivity1.ID)
	require.NoError(t, err)
	require.Equal(t, 0, activity.Applicants)
	require.Len(t, publisher.Published, 1)

	// Touching a rejected application reports the rejection.
	_, err = applicationDomain.SetStatus(ctxStaff1, &model.SetApplicationStatusRequest{
		ID:     secondResp.ApplicationID,
		Target: "accepted",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.AlreadyRejected), err.(errorx.Error).Code)
}

func Test_applicationDomain_Apply_notOpen(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	applicationDomain := newTestApplicationDomain(&testutil.MockPublisher{})
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.Member1.ID)

	_, err := applicationDomain.Apply(ctxUser1, &model.ApplyRequest{
		ActivityID: testutil.DraftActivity1.ID,
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.NotOpen), err.(errorx.Error).Code)
}
