package model

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Username     string    `gorm:"column:username;type:varchar(64);not null;comment:用户名"`
	Email        string    `gorm:"column:email;type:varchar(128);uniqueIndex;not null;comment:邮箱"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(128);not null;comment:bcrypt密码哈希"`
	IsAdmin      bool      `gorm:"column:is_admin;type:boolean;default:false;comment:是否管理员"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// Contest 比赛主表：(name, platform) 组合唯一，刷新周期内按该键 upsert
type Contest struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ContestUUID  string    `gorm:"column:contest_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	Name         string    `gorm:"column:name;type:varchar(256);not null;uniqueIndex:uk_name_platform;comment:比赛名称"`
	Platform     string    `gorm:"column:platform;type:varchar(32);not null;uniqueIndex:uk_name_platform;comment:来源平台"`
	Date         time.Time `gorm:"column:date;type:timestamp;not null;comment:开赛时间"`
	Link         string    `gorm:"column:link;type:varchar(512);not null;comment:比赛链接"`
	SolutionLink *string   `gorm:"column:solution_link;type:varchar(512);comment:题解视频链接"`
	Status       string    `gorm:"column:status;type:varchar(16);default:upcoming;comment:状态：upcoming/ongoing/finished"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// Bookmark 用户收藏：(user_id, contest_id) 组合唯一，防止重复收藏
type Bookmark struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	UserID    uint64    `gorm:"column:user_id;type:bigint;not null;uniqueIndex:uk_user_contest;comment:关联用户ID"`
	ContestID uint64    `gorm:"column:contest_id;type:bigint;not null;uniqueIndex:uk_user_contest;comment:关联比赛ID"`
	Contest   *Contest  `gorm:"foreignKey:ContestID"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

// SyncRun 刷新周期审计：记录每轮抓取各平台的条数与入库量
type SyncRun struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	StartedAt  time.Time      `gorm:"column:started_at;type:timestamp;not null;comment:本轮开始时间"`
	FinishedAt time.Time      `gorm:"column:finished_at;type:timestamp;not null;comment:本轮结束时间"`
	Stats      datatypes.JSON `gorm:"column:stats;type:jsonb;not null;comment:各平台抓取统计"`
}

func (User) TableName() string     { return "users" }
func (Contest) TableName() string  { return "contests" }
func (Bookmark) TableName() string { return "bookmarks" }
func (SyncRun) TableName() string  { return "sync_runs" }
