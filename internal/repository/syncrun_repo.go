package repository

import (
	"context"

	"ContestSync/internal/model"

	"gorm.io/gorm"
)

// SyncRunRepository 刷新周期审计仓储
type SyncRunRepository interface {
	RecordRun(ctx context.Context, run *model.SyncRun) error
	ListRecent(ctx context.Context, limit int) ([]*model.SyncRun, error)
}

type syncRunRepository struct {
	db *gorm.DB
}

func NewSyncRunRepository(db *gorm.DB) SyncRunRepository {
	return &syncRunRepository{db: db}
}

func (r *syncRunRepository) RecordRun(ctx context.Context, run *model.SyncRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *syncRunRepository) ListRecent(ctx context.Context, limit int) ([]*model.SyncRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var list []*model.SyncRun
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
