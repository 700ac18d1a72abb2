package repository

import (
	"context"
	"errors"
	"strings"

	"ContestSync/internal/model"

	"gorm.io/gorm"
)

var (
	// ErrAlreadyBookmarked (user, contest) 唯一约束冲突
	ErrAlreadyBookmarked = errors.New("该比赛已收藏")
	// ErrBookmarkNotFound 收藏不存在或不属于该用户
	ErrBookmarkNotFound = errors.New("收藏不存在")
)

// BookmarkRepository 收藏仓储
type BookmarkRepository interface {
	Create(ctx context.Context, b *model.Bookmark) error
	ListByUser(ctx context.Context, userID uint64) ([]*model.Bookmark, error)
	// Delete 只允许删除自己的收藏
	Delete(ctx context.Context, id, userID uint64) error
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(ctx context.Context, b *model.Bookmark) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		// 唯一索引 uk_user_contest 冲突视为重复收藏
		if strings.Contains(err.Error(), "uk_user_contest") || errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyBookmarked
		}
		return err
	}
	return nil
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uint64) ([]*model.Bookmark, error) {
	var list []*model.Bookmark
	if err := r.db.WithContext(ctx).
		Preload("Contest").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, id, userID uint64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}
