package interfaces

import (
	"context"

	"ContestSync/internal/config"
	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

// PlatformAdapter 所有平台必须实现的核心接口。
// FetchContests 不向外抛错：网络/解析失败在适配器内部记日志并降级为空列表，
// 单个平台失败不影响整轮聚合。
type PlatformAdapter interface {
	GetName() string                                        // 平台名称（入库的platform字段）
	FetchContests(ctx context.Context) []*model.RawContest  // 抓取并归一化比赛列表
}

// Factory 平台适配器工厂函数签名
// 入参：平台配置、日志实例
// 出参：实现PlatformAdapter接口的适配器实例
type Factory func(cfg *config.PlatformConfig, logger *logrus.Logger) PlatformAdapter
