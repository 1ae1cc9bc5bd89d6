package model

import (
	"errors"
	"time"
)

// ErrViewTarget 观看记录必须且只能指向媒体内容或单集之一
var ErrViewTarget = errors.New("view history must reference exactly one of media content or episode")

// Favorite 收藏，(用户, 内容) 唯一
type Favorite struct {
	ID             int       `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_content_favorite"`
	MediaContentID int       `json:"media_content_id" db:"media_content_id" gorm:"uniqueIndex:idx_user_content_favorite"`
	AddedAt        time.Time `json:"added_at" db:"added_at"`

	MediaContent *MediaContent `json:"media_content,omitempty"` // 关联查询时填充
}

// ViewHistory 观看历史
// 目标是一个二选一的联合：要么整部内容（电影），要么某一集。
// 除数据库 CHECK 约束外，构造函数保证不会出现两者皆空或皆有的记录。
type ViewHistory struct {
	ID             int       `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id" gorm:"index"`
	MediaContentID *int      `json:"media_content_id,omitempty" db:"media_content_id" gorm:"check:chk_view_target,(media_content_id IS NULL) <> (episode_id IS NULL)"`
	EpisodeID      *int      `json:"episode_id,omitempty" db:"episode_id"`
	ViewedAt       time.Time `json:"viewed_at" db:"viewed_at"`
	ViewedSeconds  int       `json:"viewed_seconds" db:"viewed_seconds"`

	MediaContent *MediaContent `json:"media_content,omitempty"`
	Episode      *Episode      `json:"episode,omitempty"`
}

// TableName 指定表名
func (ViewHistory) TableName() string {
	return "view_histories"
}

// NewContentView 构造一条指向整部内容的观看记录
func NewContentView(userID, contentID, seconds int) *ViewHistory {
	return &ViewHistory{
		UserID:         userID,
		MediaContentID: &contentID,
		ViewedAt:       time.Now(),
		ViewedSeconds:  seconds,
	}
}

// NewEpisodeView 构造一条指向单集的观看记录
func NewEpisodeView(userID, episodeID, seconds int) *ViewHistory {
	return &ViewHistory{
		UserID:        userID,
		EpisodeID:     &episodeID,
		ViewedAt:      time.Now(),
		ViewedSeconds: seconds,
	}
}

// Validate 校验联合约束
func (v *ViewHistory) Validate() error {
	if (v.MediaContentID == nil) == (v.EpisodeID == nil) {
		return ErrViewTarget
	}
	return nil
}

// Feedback 首页反馈
type Feedback struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
