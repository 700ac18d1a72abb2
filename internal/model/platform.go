package model

import "time"

// PlatformType 平台类型枚举
type PlatformType string

const (
	PlatformCodeforces PlatformType = "Codeforces"
	PlatformCodeChef   PlatformType = "CodeChef"
	PlatformLeetCode   PlatformType = "LeetCode"
)

// 比赛状态：未开始/进行中/已结束
const (
	StatusUpcoming = "upcoming"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// RawContest 所有平台归一化后的比赛通用结构（入库前的中间形态，合并后丢弃）
type RawContest struct {
	Name     string       // 比赛名称
	Platform PlatformType // 来源平台
	Date     time.Time    // 开赛时间
	Link     string       // 比赛链接
	Status   string       // 状态（平台不提供时按当前时间推导）
}

// SolutionVideo 题解视频（来自播放列表接口，仅在内存中与比赛做匹配，不落库）
type SolutionVideo struct {
	Platform    PlatformType // 所属平台播放列表
	Title       string       // 视频标题（自由文本，靠包含关系匹配比赛名）
	VideoURL    string       // 视频链接
	PublishedAt time.Time    // 发布时间
}
