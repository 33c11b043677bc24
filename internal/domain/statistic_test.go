package domain

import (
	"testing"
	"time"

	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	redisClient := testutil.NewMockRedisClient()
	statisticDomain := NewStatisticDomain(redisClient)

	period := time.Now().Format("01-2006")
	key := "leaderboard:" + period
	require.NoError(t, redisClient.ZIncrBy(ctx, key, 50, testutil.Member1.ID))
	require.NoError(t, redisClient.ZIncrBy(ctx, key, 80, testutil.Member2.ID))
	require.NoError(t, redisClient.ZIncrBy(ctx, key, 20, testutil.Admin1.ID))

	// Ranked by xp, current month by default.
	resp, err := statisticDomain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)
	require.Equal(t, testutil.Member2.ID, resp.Entries[0].UserID)
	require.Equal(t, int64(80), resp.Entries[0].XP)
	require.Equal(t, int64(1), resp.Entries[0].Rank)
	require.Equal(t, testutil.Member1.ID, resp.Entries[1].UserID)
	require.Equal(t, testutil.Admin1.ID, resp.Entries[2].UserID)

	// A signed-in caller also gets their own rank.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.Member1.ID)
	resp, err = statisticDomain.GetLeaderboard(ctxUser1, &model.GetLeaderboardRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.MyRank)

	// Unranked members simply have no rank.
	ctxStaff1 := testutil.MockContextWithUserID(ctx, testutil.NpoStaff1.ID)
	resp, err = statisticDomain.GetLeaderboard(ctxStaff1, &model.GetLeaderboardRequest{})
	require.NoError(t, err)
	require.Zero(t, resp.MyRank)

	// Past periods are separate boards.
	resp, err = statisticDomain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{
		Period: "01-2020",
	})
	require.NoError(t, err)
	require.Empty(t, resp.Entries)

	// Without redis the endpoint reports unavailability.
	_, err = NewStatisticDomain(nil).GetLeaderboard(ctx, &model.GetLeaderboardRequest{})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.Unavailable), err.(errorx.Error).Code)
}

func Test_userDomain_GetMember_hidesPrivateFields(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userDomain := NewUserDomain(
		repository.NewMemberRepository(),
		NewNotifier(repository.NewNotificationRepository(), &testutil.MockPublisher{}))

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.Member1.ID)
	me, err := userDomain.GetMe(ctxUser1, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.Member1.Email, me.Email)
	require.Equal(t, testutil.Member1.ReferralCode, me.ReferralCode)

	// Public profiles drop contact details and the referral code.
	profile, err := userDomain.GetMember(ctx, &model.GetMemberRequest{ID: testutil.Member1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Member1.DisplayName, profile.DisplayName)
	require.Empty(t, profile.Email)
	require.Empty(t, profile.ReferralCode)
}
