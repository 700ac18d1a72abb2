package service

import (
	"context"
	"fmt"
	"time"

	"ContestSync/internal/model"
	"ContestSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// ContestView 对外输出的比赛结构
type ContestView struct {
	ContestUUID  string    `json:"contest_uuid"`
	Name         string    `json:"name"`
	Platform     string    `json:"platform"`
	Date         time.Time `json:"date"`
	Link         string    `json:"link"`
	SolutionLink string    `json:"solution_link,omitempty"`
	Status       string    `json:"status"`
}

// ContestOverview GET /api/contests 的响应体
type ContestOverview struct {
	Upcoming []*ContestView `json:"upcoming"`
	Past     []*ContestView `json:"past"`
}

// ContestService 聚合协调器：过期判定→整轮刷新→题解匹配→时间分区
type ContestService struct {
	contestRepo repository.ContestRepository
	refresh     *RefreshService
	solutions   SolutionProvider
	staleness   time.Duration // 过期阈值，超过才触发刷新
	pastLimit   int           // 历史比赛返回上限
	logger      *logrus.Logger
	now         func() time.Time
}

func NewContestService(
	contestRepo repository.ContestRepository,
	refresh *RefreshService,
	solutions SolutionProvider,
	staleness time.Duration,
	pastLimit int,
	logger *logrus.Logger,
) *ContestService {
	if pastLimit <= 0 {
		pastLimit = 50
	}
	return &ContestService{
		contestRepo: contestRepo,
		refresh:     refresh,
		solutions:   solutions,
		staleness:   staleness,
		pastLimit:   pastLimit,
		logger:      logger,
		now:         time.Now,
	}
}

// GetContests 聚合入口。平台抓取内部降级，这里的error只来自仓储，
// 向上就是一个普通500——没有“部分成功”的响应形态。
func (s *ContestService) GetContests(ctx context.Context) (*ContestOverview, error) {
	now := s.now()

	stale, err := s.needsRefresh(ctx, now)
	if err != nil {
		return nil, err
	}
	if stale {
		s.logger.Info("库内数据过期，触发整轮刷新")
		if err := s.refresh.RefreshAll(ctx); err != nil {
			return nil, err
		}
	}

	// 分区：date >= now 为upcoming升序；date < now 为past降序截断
	upcoming, err := s.contestRepo.ListUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("查询未开始比赛失败: %w", err)
	}
	past, err := s.contestRepo.ListPast(ctx, now, s.pastLimit)
	if err != nil {
		return nil, fmt.Errorf("查询历史比赛失败: %w", err)
	}

	// 题解匹配只发生在内存视图上，不回写数据库
	videos := s.solutions.FetchSolutionVideos(ctx)
	MatchSolutions(past, videos)

	return &ContestOverview{
		Upcoming: toViews(upcoming),
		Past:     toViews(past),
	}, nil
}

// needsRefresh 库为空或最近更新早于过期阈值时需要刷新
func (s *ContestService) needsRefresh(ctx context.Context, now time.Time) (bool, error) {
	last, err := s.contestRepo.LatestUpdatedAt(ctx)
	if err != nil {
		return false, fmt.Errorf("读取最近更新时间失败: %w", err)
	}
	if last == nil {
		return true, nil
	}
	return now.Sub(*last) > s.staleness, nil
}

func toViews(contests []*model.Contest) []*ContestView {
	views := make([]*ContestView, 0, len(contests))
	for _, c := range contests {
		v := &ContestView{
			ContestUUID: c.ContestUUID,
			Name:        c.Name,
			Platform:    c.Platform,
			Date:        c.Date,
			Link:        c.Link,
			Status:      c.Status,
		}
		if c.SolutionLink != nil {
			v.SolutionLink = *c.SolutionLink
		}
		views = append(views, v)
	}
	return views
}
