package model

import "encoding/json"

// ========== CodeChef 官方 API 响应结构（GET /api/list/contests/all） ==========

// CodeChefListResponse 根响应。三段列表在线上版本返回过数组与对象两种形态，
// 先保留原始字节，由适配器兼容解码。
type CodeChefListResponse struct {
	Status          string          `json:"status"`
	PresentContests json.RawMessage `json:"present_contests"` // 进行中
	FutureContests  json.RawMessage `json:"future_contests"`  // 未开始
	PastContests    json.RawMessage `json:"past_contests"`    // 已结束
}

// CodeChefContest 单条比赛。新旧接口字段名不一致（contest_* 前缀 vs 无前缀），
// 两套都声明，取值时前者优先。
type CodeChefContest struct {
	ContestCode         string `json:"contest_code"`
	ContestName         string `json:"contest_name"`
	Name                string `json:"name"`
	ContestStartDateISO string `json:"contest_start_date_iso"` // ISO格式开赛时间
	StartDate           string `json:"start_date"`             // 旧格式："02 Jan 2006 15:04:05"
	ContestEndDateISO   string `json:"contest_end_date_iso"`
	EndDate             string `json:"end_date"`
}
