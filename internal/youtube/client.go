// Package youtube 封装 YouTube Data API v3 的播放列表读取，
// 每个平台配置一个题解播放列表，按列表拉取视频元数据。
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ContestSync/internal/config"
	"ContestSync/internal/model"
	"ContestSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// maxResults 单列表最多取50条，Data API的单页上限
const maxResults = "50"

type Client struct {
	cfg        *config.YouTubeConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(cfg *config.YouTubeConfig, logger *logrus.Logger) *Client {
	// 复用平台适配器同款HTTP客户端（超时/代理/gzip）
	platformCfg := &config.PlatformConfig{
		Timeout: cfg.Timeout,
		Proxy:   cfg.Proxy,
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(platformCfg, logger),
		logger:     logger,
	}
}

// FetchPlaylistVideos 拉取单个播放列表的视频元数据
func (c *Client) FetchPlaylistVideos(ctx context.Context, platform model.PlatformType, playlistID string) ([]*model.SolutionVideo, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("playlistId", playlistID)
	q.Set("maxResults", maxResults)
	q.Set("key", c.cfg.APIKey)
	reqURL := fmt.Sprintf("%s/playlistItems?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取播放列表%s失败: %w", playlistID, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Errorf("关闭YouTube响应体失败: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("YouTube响应非200: %d", resp.StatusCode)
	}

	var payload model.YouTubePlaylistResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("解析播放列表响应失败: %w", err)
	}

	videos := make([]*model.SolutionVideo, 0, len(payload.Items))
	for _, item := range payload.Items {
		published, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		videos = append(videos, &model.SolutionVideo{
			Platform:    platform,
			Title:       item.Snippet.Title,
			VideoURL:    fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Snippet.ResourceID.VideoID),
			PublishedAt: published,
		})
	}
	return videos, nil
}
