package model

type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	XP     int64  `json:"xp"`
	Rank   int64  `json:"rank"`
}

type GetLeaderboardRequest struct {
	Period string `json:"period"`
	Limit  int    `json:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries,omitempty"`
	MyRank  int64              `json:"my_rank,omitempty"`
}
