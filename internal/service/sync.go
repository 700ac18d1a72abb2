package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// RefreshService 整轮刷新：并发调用全部适配器，合并结果后按 (name, platform) upsert。
// 适配器内部fail-soft，部分平台失败只会让结果变少；仓储错误才向上返回。
type RefreshService struct {
	adapters    []interfaces.PlatformAdapter
	contestRepo repository.ContestRepository
	runRepo     repository.SyncRunRepository
	logger      *logrus.Logger
	now         func() time.Time
}

func NewRefreshService(
	adapters []interfaces.PlatformAdapter,
	contestRepo repository.ContestRepository,
	runRepo repository.SyncRunRepository,
	logger *logrus.Logger,
) *RefreshService {
	return &RefreshService{
		adapters:    adapters,
		contestRepo: contestRepo,
		runRepo:     runRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// RefreshAll 扇出-扇入：等全部平台返回后再开始入库，没有部分继续的语义。
// 慢平台会拖慢整轮，单平台的超时由各自HTTP客户端的timeout配置兜底。
func (s *RefreshService) RefreshAll(ctx context.Context) error {
	started := s.now()

	results := make([][]*model.RawContest, len(s.adapters))
	var wg sync.WaitGroup
	for i, ad := range s.adapters {
		wg.Add(1)
		go func(i int, ad interfaces.PlatformAdapter) {
			defer wg.Done()
			results[i] = ad.FetchContests(ctx)
		}(i, ad)
	}
	wg.Wait()

	stats := make(map[string]int, len(s.adapters))
	upserted := 0
	for i, ad := range s.adapters {
		stats[ad.GetName()] += len(results[i])
		for _, raw := range results[i] {
			contest := &model.Contest{
				Name:     raw.Name,
				Platform: string(raw.Platform),
				Date:     raw.Date,
				Link:     raw.Link,
				Status:   raw.Status,
			}
			if err := s.contestRepo.UpsertContest(ctx, contest); err != nil {
				return fmt.Errorf("比赛入库失败(%s/%s): %w", raw.Platform, raw.Name, err)
			}
			upserted++
		}
	}

	s.recordRun(ctx, started, stats, upserted)
	s.logger.Infof("刷新完成：%d个平台，入库%d条", len(s.adapters), upserted)
	return nil
}

// recordRun 审计记录尽力而为：写失败只记日志，不影响本轮结果
func (s *RefreshService) recordRun(ctx context.Context, started time.Time, stats map[string]int, upserted int) {
	payload := map[string]interface{}{
		"fetched":  stats,
		"upserted": upserted,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.WithError(err).Warn("序列化刷新统计失败")
		return
	}
	run := &model.SyncRun{
		StartedAt:  started,
		FinishedAt: s.now(),
		Stats:      datatypes.JSON(raw),
	}
	if err := s.runRepo.RecordRun(ctx, run); err != nil {
		s.logger.WithError(err).Warn("写入刷新审计记录失败")
	}
}
