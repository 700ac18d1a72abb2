package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ContestSync/internal/adapter"
	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register("codeforces", NewCodeforcesAdapter)
}

type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	logger     *logrus.Logger
	now        func() time.Time // 可注入，测试用
}

func NewCodeforcesAdapter(cfg *config.PlatformConfig, logger *logrus.Logger) interfaces.PlatformAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
		now:        time.Now,
	}
}

// GetName ========== 实现PlatformAdapter接口 ==========
func (a *Adapter) GetName() string {
	return string(model.PlatformCodeforces)
}

// FetchContests 失败一律降级为空列表，不向调用方抛错
func (a *Adapter) FetchContests(ctx context.Context) []*model.RawContest {
	records, err := a.fetch(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("Codeforces比赛列表抓取失败，降级为空结果")
		return []*model.RawContest{}
	}
	a.logger.Infof("成功获取Codeforces比赛共%d条", len(records))
	return records
}

func (a *Adapter) fetch(ctx context.Context) ([]*model.RawContest, error) {
	listURL := fmt.Sprintf("%s/contest.list", a.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取Codeforces比赛列表失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭Codeforces响应体失败: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Codeforces响应非200: %d", resp.StatusCode)
	}

	var payload model.CodeforcesListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("解析Codeforces比赛列表失败: %w", err)
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("Codeforces接口状态异常: %s（%s）", payload.Status, payload.Comment)
	}

	now := a.now()
	var records []*model.RawContest
	for _, c := range payload.Result {
		r := normalize(c, now)
		if r == nil {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// normalize 平台字段→通用比赛结构的纯映射。
// 保留未结束的比赛，以及结束时间在30天保留窗口内的已结束比赛。
func normalize(c model.CodeforcesContest, now time.Time) *model.RawContest {
	start := time.Unix(c.StartTimeSeconds, 0)
	end := start.Add(time.Duration(c.DurationSeconds) * time.Second)

	var status string
	switch c.Phase {
	case "BEFORE":
		status = model.StatusUpcoming
	case "FINISHED":
		if end.Before(now.Add(-adapter.RetentionWindow)) {
			return nil
		}
		status = model.StatusFinished
	default:
		// CODING / PENDING_SYSTEM_TEST / SYSTEM_TEST 等都算进行中
		status = model.StatusOngoing
	}

	return &model.RawContest{
		Name:     c.Name,
		Platform: model.PlatformCodeforces,
		Date:     start,
		Link:     fmt.Sprintf("https://codeforces.com/contest/%d", c.ID),
		Status:   status,
	}
}
