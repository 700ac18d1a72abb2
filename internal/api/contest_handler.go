package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"ContestSync/internal/repository"
	"ContestSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ContestHandler 聚合查询与管理员维护（题解链接、刷新审计）
type ContestHandler struct {
	contestService *service.ContestService
	contestRepo    repository.ContestRepository
	runRepo        repository.SyncRunRepository
	logger         *logrus.Logger
}

func NewContestHandler(
	contestService *service.ContestService,
	contestRepo repository.ContestRepository,
	runRepo repository.SyncRunRepository,
	logger *logrus.Logger,
) *ContestHandler {
	return &ContestHandler{
		contestService: contestService,
		contestRepo:    contestRepo,
		runRepo:        runRepo,
		logger:         logger,
	}
}

// GetContests 聚合接口
// GET /api/contests → {upcoming: [...], past: [...]}
// 平台抓取失败在适配器内部降级；走到这里的error都是仓储级的，统一回500
func (h *ContestHandler) GetContests(c *gin.Context) {
	overview, err := h.contestService.GetContests(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("聚合比赛列表失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

type setSolutionRequest struct {
	ContestUUID string `json:"contest_uuid" binding:"required"`
	VideoURL    string `json:"video_url" binding:"required"`
}

// SetSolutionLink 管理员手工指定题解链接
// POST /api/solutions（需管理员）
func (h *ContestHandler) SetSolutionLink(c *gin.Context) {
	var req setSolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contest_uuid与video_url不能为空"})
		return
	}

	contest, err := h.contestRepo.SetSolutionLink(c.Request.Context(), req.ContestUUID, req.VideoURL)
	if errors.Is(err, repository.ErrContestNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "比赛不存在"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("设置题解链接失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"contest_uuid":  contest.ContestUUID,
		"name":          contest.Name,
		"platform":      contest.Platform,
		"solution_link": req.VideoURL,
	})
}

// SyncHistory 最近的刷新周期审计记录
// GET /api/sync-runs?limit=20（需管理员）
func (h *ContestHandler) SyncHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := h.runRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("查询刷新审计记录失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	out := make([]gin.H, 0, len(runs))
	for _, run := range runs {
		out = append(out, gin.H{
			"started_at":  run.StartedAt.Format(time.RFC3339),
			"finished_at": run.FinishedAt.Format(time.RFC3339),
			"stats":       run.Stats,
		})
	}
	c.JSON(http.StatusOK, out)
}
