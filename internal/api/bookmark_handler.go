package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"ContestSync/internal/model"
	"ContestSync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BookmarkHandler 收藏CRUD（全部需要登录）
type BookmarkHandler struct {
	bookmarkRepo repository.BookmarkRepository
	contestRepo  repository.ContestRepository
	logger       *logrus.Logger
}

func NewBookmarkHandler(bookmarkRepo repository.BookmarkRepository, contestRepo repository.ContestRepository, logger *logrus.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepo: bookmarkRepo,
		contestRepo:  contestRepo,
		logger:       logger,
	}
}

type createBookmarkRequest struct {
	ContestUUID string `json:"contest_uuid" binding:"required"`
}

// Create 收藏比赛
// POST /api/bookmarks
func (h *BookmarkHandler) Create(c *gin.Context) {
	user := CurrentUser(c)
	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contest_uuid不能为空"})
		return
	}

	contest, err := h.contestRepo.GetByUUID(c.Request.Context(), req.ContestUUID)
	if errors.Is(err, repository.ErrContestNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "比赛不存在"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("查询比赛失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	bookmark := &model.Bookmark{
		UserID:    user.ID,
		ContestID: contest.ID,
	}
	if err := h.bookmarkRepo.Create(c.Request.Context(), bookmark); err != nil {
		if errors.Is(err, repository.ErrAlreadyBookmarked) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "该比赛已收藏"})
			return
		}
		h.logger.WithError(err).Error("创建收藏失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           bookmark.ID,
		"contest_uuid": contest.ContestUUID,
	})
}

// List 当前用户的全部收藏（带比赛详情）
// GET /api/bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	bookmarks, err := h.bookmarkRepo.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.WithError(err).Error("查询收藏失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	out := make([]gin.H, 0, len(bookmarks))
	for _, b := range bookmarks {
		item := gin.H{
			"id":         b.ID,
			"created_at": b.CreatedAt.Format(time.RFC3339),
		}
		if b.Contest != nil {
			item["contest"] = gin.H{
				"contest_uuid": b.Contest.ContestUUID,
				"name":         b.Contest.Name,
				"platform":     b.Contest.Platform,
				"date":         b.Contest.Date,
				"link":         b.Contest.Link,
				"status":       b.Contest.Status,
			}
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}

// Delete 删除自己的收藏
// DELETE /api/bookmarks/:id
func (h *BookmarkHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "收藏ID非法"})
		return
	}

	if err := h.bookmarkRepo.Delete(c.Request.Context(), id, user.ID); err != nil {
		if errors.Is(err, repository.ErrBookmarkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "收藏不存在"})
			return
		}
		h.logger.WithError(err).Error("删除收藏失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已取消收藏"})
}
