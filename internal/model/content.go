package model

import (
	"time"
)

// 内容类型
const (
	ContentTypeMovie  = "MOVIE"
	ContentTypeSeries = "SERIES"
)

// MediaContent 媒体内容模型（电影/剧集共用一张表，靠 ContentType 区分）
type MediaContent struct {
	ID             int       `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	ReleaseDate    time.Time `json:"release_date" db:"release_date" gorm:"index"`
	Country        string    `json:"country" db:"country"`
	Rating         float64   `json:"rating" db:"rating" gorm:"default:0"`
	AgeRestriction int       `json:"age_restriction" db:"age_restriction"`
	Duration       *int      `json:"duration,omitempty" db:"duration"` // 分钟，剧集整体无时长
	ContentType    string    `json:"content_type" db:"content_type" gorm:"size:10;index"`
	ImagePath      string    `json:"image_path" db:"image_path"`
	PosterPath     string    `json:"poster_path" db:"poster_path"`
	VideoPath      string    `json:"video_path" db:"video_path"`

	Genres         []Genre                `json:"genres,omitempty" gorm:"many2many:content_genres"`
	Participations []ContentParticipation `json:"participations,omitempty"`
	Seasons        []Season               `json:"seasons,omitempty"`
}

// IsSeries 是否为剧集
func (m *MediaContent) IsSeries() bool {
	return m.ContentType == ContentTypeSeries
}

// Genre 类型/流派
type Genre struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name" gorm:"unique"`
	Description string `json:"description" db:"description"`
}

// Season 剧集季，季号在同一内容下唯一
type Season struct {
	ID             int       `json:"id" db:"id"`
	MediaContentID int       `json:"media_content_id" db:"media_content_id" gorm:"uniqueIndex:idx_content_season"`
	SeasonNumber   int       `json:"season_number" db:"season_number" gorm:"uniqueIndex:idx_content_season"`
	Description    string    `json:"description" db:"description"`
	Episodes       []Episode `json:"episodes,omitempty"`
}

// Episode 剧集单集，集号在同一季下唯一
type Episode struct {
	ID            int        `json:"id" db:"id"`
	SeasonID      int        `json:"season_id" db:"season_id" gorm:"uniqueIndex:idx_season_episode"`
	EpisodeNumber int        `json:"episode_number" db:"episode_number" gorm:"uniqueIndex:idx_season_episode"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	Duration      int        `json:"duration" db:"duration"` // 分钟
	ReleaseDate   *time.Time `json:"release_date,omitempty" db:"release_date"`
	VideoPath     string     `json:"video_path" db:"video_path"`

	Season *Season `json:"season,omitempty"`
}
