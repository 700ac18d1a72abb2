// Package aggregator 抓取一个无API的聚合站页面，从HTML标记中提取历史比赛。
// 页面结构没有稳定契约：缺失的节点按空字符串处理，整页解析失败降级为空列表。
package aggregator

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ContestSync/internal/adapter"
	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"
	"ContestSync/internal/utils/httpclient"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register("aggregator", NewAggregatorAdapter)
}

type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	logger     *logrus.Logger
	now        func() time.Time
}

func NewAggregatorAdapter(cfg *config.PlatformConfig, logger *logrus.Logger) interfaces.PlatformAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
		now:        time.Now,
	}
}

// GetName ========== 实现PlatformAdapter接口 ==========
func (a *Adapter) GetName() string {
	return "Aggregator"
}

// FetchContests 失败一律降级为空列表，不向调用方抛错
func (a *Adapter) FetchContests(ctx context.Context) []*model.RawContest {
	records, err := a.fetch(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("聚合站页面抓取失败，降级为空结果")
		return []*model.RawContest{}
	}
	a.logger.Infof("成功解析聚合站历史比赛共%d条", len(records))
	return records
}

func (a *Adapter) fetch(ctx context.Context) ([]*model.RawContest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取聚合站页面失败: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭聚合站响应体失败: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("聚合站响应非200: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("解析聚合站HTML失败: %w", err)
	}

	cutoff := a.now().Add(-adapter.RetentionWindow)
	var records []*model.RawContest
	doc.Find(".contest-card").Each(func(_ int, card *goquery.Selection) {
		r := a.parseCard(card)
		if r == nil {
			return
		}
		if r.Date.Before(cutoff) {
			return
		}
		records = append(records, r)
	})
	return records, nil
}

// parseCard 单张卡片→通用比赛结构。节点缺失得到空字符串；
// 名称为空或结束时间解析不了的卡片跳过，不影响其余卡片
func (a *Adapter) parseCard(card *goquery.Selection) *model.RawContest {
	name := strings.TrimSpace(card.Find(".title").Text())
	endText := strings.TrimSpace(card.Find(".end-time").Text())
	platform := strings.TrimSpace(card.Find(".platform").Text())
	link, _ := card.Find("a").Attr("href")

	if name == "" {
		return nil
	}
	end, ok := parseEndTime(endText)
	if !ok {
		a.logger.Warnf("聚合站卡片结束时间无法解析，跳过: name=%s, end=%q", name, endText)
		return nil
	}

	return &model.RawContest{
		Name:     name,
		Platform: model.PlatformType(platform),
		Date:     end,
		Link:     link,
		Status:   model.StatusFinished,
	}
}

// parseEndTime 页面出现过的几种时间写法依次尝试
func parseEndTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"02 Jan 2006 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
