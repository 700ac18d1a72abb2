package model

// ========== Codeforces 官方 API 响应结构（GET /contest.list） ==========

// CodeforcesListResponse GET /contest.list 的根响应
type CodeforcesListResponse struct {
	Status  string              `json:"status"` // OK / FAILED
	Comment string              `json:"comment"`
	Result  []CodeforcesContest `json:"result"`
}

// CodeforcesContest 单条比赛
type CodeforcesContest struct {
	ID               int64  `json:"id"`               // 比赛ID，用于拼接链接
	Name             string `json:"name"`             // 比赛名称
	Phase            string `json:"phase"`            // BEFORE / CODING / FINISHED
	StartTimeSeconds int64  `json:"startTimeSeconds"` // 开赛时间（Unix秒）
	DurationSeconds  int64  `json:"durationSeconds"`  // 时长（秒）
}
