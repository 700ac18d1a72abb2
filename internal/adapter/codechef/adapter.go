package codechef

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"ContestSync/internal/adapter"
	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// maxPastContests 已结束比赛只取最近若干条，接口会返回全量历史
const maxPastContests = 10

func init() {
	adapter.Register("codechef", NewCodeChefAdapter)
}

type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	logger     *logrus.Logger
	now        func() time.Time
}

func NewCodeChefAdapter(cfg *config.PlatformConfig, logger *logrus.Logger) interfaces.PlatformAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
		now:        time.Now,
	}
}

// GetName ========== 实现PlatformAdapter接口 ==========
func (a *Adapter) GetName() string {
	return string(model.PlatformCodeChef)
}

// FetchContests 失败一律降级为空列表，不向调用方抛错
func (a *Adapter) FetchContests(ctx context.Context) []*model.RawContest {
	records, err := a.fetch(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("CodeChef比赛列表抓取失败，降级为空结果")
		return []*model.RawContest{}
	}
	a.logger.Infof("成功获取CodeChef比赛共%d条", len(records))
	return records
}

func (a *Adapter) fetch(ctx context.Context) ([]*model.RawContest, error) {
	listURL := fmt.Sprintf("%s/api/list/contests/all", a.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取CodeChef比赛列表失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭CodeChef响应体失败: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CodeChef响应非200: %d", resp.StatusCode)
	}

	var payload model.CodeChefListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("解析CodeChef比赛列表失败: %w", err)
	}

	now := a.now()
	var records []*model.RawContest

	// 进行中与未开始的全部保留
	for _, c := range decodeContestList(payload.PresentContests) {
		if r := a.normalize(c, model.StatusOngoing); r != nil {
			records = append(records, r)
		}
	}
	for _, c := range decodeContestList(payload.FutureContests) {
		if r := a.normalize(c, model.StatusUpcoming); r != nil {
			records = append(records, r)
		}
	}

	// 已结束的只保留30天窗口内、按结束时间倒序的前10条
	past := decodeContestList(payload.PastContests)
	cutoff := now.Add(-adapter.RetentionWindow)
	var recent []model.CodeChefContest
	for _, c := range past {
		end, ok := a.parseTimeStr(c.ContestEndDateISO, c.EndDate)
		// 窗口边界含端点：恰好30天前结束的仍保留，与其他平台口径一致
		if !ok || end.Before(cutoff) {
			continue
		}
		recent = append(recent, c)
	}
	sort.Slice(recent, func(i, j int) bool {
		ei, _ := a.parseTimeStr(recent[i].ContestEndDateISO, recent[i].EndDate)
		ej, _ := a.parseTimeStr(recent[j].ContestEndDateISO, recent[j].EndDate)
		return ei.After(ej)
	})
	if len(recent) > maxPastContests {
		recent = recent[:maxPastContests]
	}
	for _, c := range recent {
		if r := a.normalize(c, model.StatusFinished); r != nil {
			records = append(records, r)
		}
	}

	return records, nil
}

// decodeContestList 兼容数组与对象两种返回形态
func decodeContestList(raw json.RawMessage) []model.CodeChefContest {
	if len(raw) == 0 {
		return nil
	}
	var arr []model.CodeChefContest
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr
	}
	var m map[string]model.CodeChefContest
	if err := json.Unmarshal(raw, &m); err == nil {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]model.CodeChefContest, 0, len(m))
		for _, k := range keys {
			out = append(out, m[k])
		}
		return out
	}
	return nil
}

// normalize 平台字段→通用比赛结构。开赛时间解析失败的记录直接跳过
func (a *Adapter) normalize(c model.CodeChefContest, status string) *model.RawContest {
	name := c.ContestName
	if name == "" {
		name = c.Name
	}
	start, ok := a.parseTimeStr(c.ContestStartDateISO, c.StartDate)
	if name == "" || !ok {
		a.logger.Warnf("CodeChef比赛字段不完整，跳过: code=%s", c.ContestCode)
		return nil
	}
	return &model.RawContest{
		Name:     name,
		Platform: model.PlatformCodeChef,
		Date:     start,
		Link:     fmt.Sprintf("https://www.codechef.com/%s", c.ContestCode),
		Status:   status,
	}
}

// parseTimeStr ISO字段优先，旧字段兜底；两套格式都解析不了则返回false
func (a *Adapter) parseTimeStr(iso, legacy string) (time.Time, bool) {
	candidates := []struct {
		value  string
		layout string
	}{
		{iso, time.RFC3339},
		{legacy, "02 Jan 2006 15:04:05"},
		{legacy, "2006-01-02 15:04:05"},
	}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if t, err := time.Parse(c.layout, c.value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
