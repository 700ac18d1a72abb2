package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ContestSync/internal/adapter"
	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// allContestsQuery GraphQL主通道查询
const allContestsQuery = `
query {
  allContests {
    title
    titleSlug
    startTime
    duration
  }
}`

func init() {
	adapter.Register("leetcode", NewLeetCodeAdapter)
}

type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	logger     *logrus.Logger
	now        func() time.Time
}

func NewLeetCodeAdapter(cfg *config.PlatformConfig, logger *logrus.Logger) interfaces.PlatformAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
		now:        time.Now,
	}
}

// GetName ========== 实现PlatformAdapter接口 ==========
func (a *Adapter) GetName() string {
	return string(model.PlatformLeetCode)
}

// FetchContests 三级降级链：GraphQL → REST列表接口 → 直连兜底接口。
// 按序尝试，取第一个成功的通道；全部失败降级为空列表，不向调用方抛错。
func (a *Adapter) FetchContests(ctx context.Context) []*model.RawContest {
	strategies := []struct {
		name string
		fn   func(ctx context.Context) ([]model.LeetCodeContest, error)
	}{
		{"graphql", a.fetchGraphQL},
		{"rest_list", a.fetchRESTList},
		{"direct", a.fetchDirect},
	}

	for _, s := range strategies {
		contests, err := s.fn(ctx)
		if err != nil {
			a.logger.WithError(err).Warnf("LeetCode通道%s抓取失败，尝试下一级降级", s.name)
			continue
		}
		records := a.normalizeAll(contests)
		a.logger.Infof("成功获取LeetCode比赛共%d条（通道: %s）", len(records), s.name)
		return records
	}

	a.logger.Warn("LeetCode全部降级通道失败，降级为空结果")
	return []*model.RawContest{}
}

// fetchGraphQL 主通道：POST /graphql
func (a *Adapter) fetchGraphQL(ctx context.Context) ([]model.LeetCodeContest, error) {
	body, err := json.Marshal(map[string]string{"query": allContestsQuery})
	if err != nil {
		return nil, fmt.Errorf("构造GraphQL请求体失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/graphql", a.cfg.BaseURL), strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://leetcode.com")
	req.Header.Set("Referer", "https://leetcode.com/contest/")

	var payload model.LeetCodeGraphQLResponse
	if err := a.doJSON(req, &payload); err != nil {
		return nil, err
	}
	// 字段缺失才算通道失败；合法的空数组是成功的空结果，不触发降级
	if payload.Data.AllContests == nil {
		return nil, fmt.Errorf("GraphQL响应无allContests字段")
	}
	return payload.Data.AllContests, nil
}

// fetchRESTList 一级降级：GET /contest/api/list/
func (a *Adapter) fetchRESTList(ctx context.Context) ([]model.LeetCodeContest, error) {
	return a.fetchListEndpoint(ctx, fmt.Sprintf("%s/contest/api/list/", a.cfg.BaseURL))
}

// fetchDirect 末级降级：直连info接口，尽力而为
func (a *Adapter) fetchDirect(ctx context.Context) ([]model.LeetCodeContest, error) {
	return a.fetchListEndpoint(ctx, fmt.Sprintf("%s/contest/api/info/", a.cfg.BaseURL))
}

func (a *Adapter) fetchListEndpoint(ctx context.Context, url string) ([]model.LeetCodeContest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var payload model.LeetCodeListResponse
	if err := a.doJSON(req, &payload); err != nil {
		return nil, err
	}
	if payload.Contests == nil {
		return nil, fmt.Errorf("列表接口无contests字段")
	}
	return payload.Contests, nil
}

func (a *Adapter) doJSON(req *http.Request, out interface{}) error {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求LeetCode失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭LeetCode响应体失败: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("LeetCode响应非200: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解析LeetCode响应失败: %w", err)
	}
	return nil
}

func (a *Adapter) normalizeAll(contests []model.LeetCodeContest) []*model.RawContest {
	now := a.now()
	var records []*model.RawContest
	for _, c := range contests {
		if r := normalize(c, now); r != nil {
			records = append(records, r)
		}
	}
	return records
}

// normalize 平台字段→通用比赛结构的纯映射。
// 结束时间（开赛+时长）早于30天保留窗口的比赛丢弃；状态按当前时间推导。
func normalize(c model.LeetCodeContest, now time.Time) *model.RawContest {
	start := time.Unix(c.StartTime, 0)
	end := start.Add(time.Duration(c.Duration) * time.Second)
	if end.Before(now.Add(-adapter.RetentionWindow)) {
		return nil
	}

	status := model.StatusOngoing
	if start.After(now) {
		status = model.StatusUpcoming
	} else if end.Before(now) {
		status = model.StatusFinished
	}

	return &model.RawContest{
		Name:     c.Title,
		Platform: model.PlatformLeetCode,
		Date:     start,
		Link:     fmt.Sprintf("https://leetcode.com/contest/%s", c.TitleSlug),
		Status:   status,
	}
}
