package service

import (
	"context"
	"sort"
	"strings"

	"ContestSync/internal/config"
	"ContestSync/internal/model"
	"ContestSync/internal/youtube"

	"github.com/sirupsen/logrus"
)

// SolutionProvider 题解视频来源，GetContests 只依赖这个口径
type SolutionProvider interface {
	FetchSolutionVideos(ctx context.Context) []*model.SolutionVideo
}

// SolutionService 按配置的平台播放列表拉取题解视频。
// 单个列表失败只记日志，不影响其余列表（与平台适配器同样的fail-soft口径）。
type SolutionService struct {
	cfg    *config.YouTubeConfig
	client *youtube.Client
	logger *logrus.Logger
}

func NewSolutionService(cfg *config.YouTubeConfig, logger *logrus.Logger) *SolutionService {
	return &SolutionService{
		cfg:    cfg,
		client: youtube.NewClient(cfg, logger),
		logger: logger,
	}
}

// FetchSolutionVideos 拉取全部已配置播放列表，平台名排序保证遍历顺序稳定
func (s *SolutionService) FetchSolutionVideos(ctx context.Context) []*model.SolutionVideo {
	if s.cfg.APIKey == "" || len(s.cfg.Playlists) == 0 {
		return nil
	}

	platforms := make([]string, 0, len(s.cfg.Playlists))
	for p := range s.cfg.Playlists {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	var all []*model.SolutionVideo
	for _, p := range platforms {
		videos, err := s.client.FetchPlaylistVideos(ctx, model.PlatformType(p), s.cfg.Playlists[p])
		if err != nil {
			s.logger.WithError(err).Warnf("平台%s题解播放列表拉取失败，跳过", p)
			continue
		}
		all = append(all, videos...)
	}
	return all
}

// MatchSolutions 为历史比赛匹配题解视频并就地写入 SolutionLink（只改内存，不落库）。
// 匹配规则：忽略大小写后任一方包含另一方即命中，取遍历顺序里的第一个；
// 规则刻意宽松，误配换覆盖率。未命中的比赛保持原值（管理员手工设置的链接不会被清掉）。
func MatchSolutions(past []*model.Contest, videos []*model.SolutionVideo) {
	for _, contest := range past {
		name := strings.ToLower(contest.Name)
		for _, v := range videos {
			title := strings.ToLower(v.Title)
			if strings.Contains(title, name) || strings.Contains(name, title) {
				link := v.VideoURL
				contest.SolutionLink = &link
				break
			}
		}
	}
}
