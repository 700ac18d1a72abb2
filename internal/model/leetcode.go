package model

// ========== LeetCode 接口响应结构（GraphQL 主通道 + REST 降级通道） ==========

// LeetCodeGraphQLResponse POST /graphql 的根响应
type LeetCodeGraphQLResponse struct {
	Data struct {
		AllContests []LeetCodeContest `json:"allContests"`
	} `json:"data"`
}

// LeetCodeListResponse 降级 REST 接口（GET /contest/api/list/ 等）的根响应
type LeetCodeListResponse struct {
	Contests []LeetCodeContest `json:"contests"`
}

// LeetCodeContest 单条比赛
type LeetCodeContest struct {
	Title     string `json:"title"`     // 比赛标题
	TitleSlug string `json:"titleSlug"` // 链接用slug
	StartTime int64  `json:"startTime"` // 开赛时间（Unix秒）
	Duration  int64  `json:"duration"`  // 时长（秒）
}
