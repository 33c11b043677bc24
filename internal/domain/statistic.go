package domain

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/voluntree-lab/backend/internal/common"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"github.com/voluntree-lab/backend/pkg/xredis"
)

type StatisticDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type statisticDomain struct {
	redisClient xredis.Client
}

func NewStatisticDomain(redisClient xredis.Client) *statisticDomain {
	return &statisticDomain{redisClient: redisClient}
}

// GetLeaderboard reads the monthly sorted set the reward path maintains. The
// board is advisory; the members table stays the balance of record.
func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if d.redisClient == nil {
		return nil, errorx.New(errorx.Unavailable, "Leaderboard is unavailable")
	}

	period := req.Period
	if period == "" {
		period = time.Now().Format("01-2006")
	}

	limit := req.Limit
	if limit == 0 {
		limit = xcontext.Configs(ctx).Engagement.LeaderboardLimit
	}

	key := common.RedisKeyLeaderboard(period)
	zs, err := d.redisClient.ZRevRangeWithScores(ctx, key, 0, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	for i, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}

		entries = append(entries, model.LeaderboardEntry{
			UserID: member,
			XP:     int64(z.Score),
			Rank:   int64(i + 1),
		})
	}

	var myRank int64
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		rank, err := d.redisClient.ZRevRank(ctx, key, userID)
		if err == nil {
			myRank = int64(rank) + 1
		} else if !errors.Is(err, redis.Nil) {
			xcontext.Logger(ctx).Warnf("Cannot read member rank: %v", err)
		}
	}

	return &model.GetLeaderboardResponse{Entries: entries, MyRank: myRank}, nil
}
