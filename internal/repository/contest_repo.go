package repository

import (
	"context"
	"errors"
	"time"

	"ContestSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContestRepository 比赛仓储：持久化边界，(name, platform) 唯一约束在这里兑现
type ContestRepository interface {
	// UpsertContest 按 (name, platform) 插入或更新；updated_at 每次都会刷新
	UpsertContest(ctx context.Context, c *model.Contest) error
	// ListUpcoming 开赛时间 >= now 的比赛，按开赛时间升序
	ListUpcoming(ctx context.Context, now time.Time) ([]*model.Contest, error)
	// ListPast 开赛时间 < now 的比赛，按开赛时间降序，最多limit条
	ListPast(ctx context.Context, now time.Time, limit int) ([]*model.Contest, error)
	// LatestUpdatedAt 最近一次更新时间；库为空时返回 (nil, nil)
	LatestUpdatedAt(ctx context.Context) (*time.Time, error)
	GetByUUID(ctx context.Context, contestUUID string) (*model.Contest, error)
	// SetSolutionLink 管理员手工指定题解链接
	SetSolutionLink(ctx context.Context, contestUUID, videoURL string) (*model.Contest, error)
}

// ErrContestNotFound 按UUID查不到比赛
var ErrContestNotFound = errors.New("比赛不存在")

type contestRepository struct {
	db *gorm.DB
}

func NewContestRepository(db *gorm.DB) ContestRepository {
	return &contestRepository{db: db}
}

func (r *contestRepository) UpsertContest(ctx context.Context, c *model.Contest) error {
	if c.ContestUUID == "" {
		c.ContestUUID = uuid.NewString()
	}
	// updated_at 无条件刷新：即使字段没变化，本轮也算“碰过”这条数据，
	// 过期判定依赖这个时间戳
	c.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "link", "status", "updated_at"}),
	}).Create(c).Error
}

func (r *contestRepository) ListUpcoming(ctx context.Context, now time.Time) ([]*model.Contest, error) {
	var list []*model.Contest
	if err := r.db.WithContext(ctx).
		Where("date >= ?", now).
		Order("date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *contestRepository) ListPast(ctx context.Context, now time.Time, limit int) ([]*model.Contest, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []*model.Contest
	if err := r.db.WithContext(ctx).
		Where("date < ?", now).
		Order("date DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *contestRepository) LatestUpdatedAt(ctx context.Context) (*time.Time, error) {
	var c model.Contest
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c.UpdatedAt, nil
}

func (r *contestRepository) GetByUUID(ctx context.Context, contestUUID string) (*model.Contest, error) {
	var c model.Contest
	err := r.db.WithContext(ctx).Where("contest_uuid = ?", contestUUID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contestRepository) SetSolutionLink(ctx context.Context, contestUUID, videoURL string) (*model.Contest, error) {
	c, err := r.GetByUUID(ctx, contestUUID)
	if err != nil {
		return nil, err
	}
	// 不动 updated_at：管理员补链接不代表比赛数据变新鲜，过期判定仍看刷新周期
	if err := r.db.WithContext(ctx).Model(c).
		UpdateColumn("solution_link", videoURL).Error; err != nil {
		return nil, err
	}
	c.SolutionLink = &videoURL
	return c, nil
}
