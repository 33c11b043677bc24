package common

import "fmt"

func RedisKeyLeaderboard(period string) string {
	return fmt.Sprintf("leaderboard:%s", period)
}
