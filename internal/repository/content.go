package repository

import (
	"errors"

	"github.com/lib/pq"
	"github.com/mmissffitt/CineMax/internal/model"
	"gorm.io/gorm"
)

// ErrContentNotFound 内容不存在或类型不匹配
var ErrContentNotFound = errors.New("content not found")

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// ListByType 按类型列出内容，上映日期倒序
func (r *ContentRepository) ListByType(contentType string) ([]*model.MediaContent, error) {
	var contents []*model.MediaContent
	err := r.db.Preload("Genres").
		Where("content_type = ?", contentType).
		Order("release_date DESC").
		Find(&contents).Error
	return contents, err
}

// ListMovies 所有电影，上映日期倒序
func (r *ContentRepository) ListMovies() ([]*model.MediaContent, error) {
	return r.ListByType(model.ContentTypeMovie)
}

// ListSeries 所有剧集，上映日期倒序
func (r *ContentRepository) ListSeries() ([]*model.MediaContent, error) {
	return r.ListByType(model.ContentTypeSeries)
}

// Samples 首页抽样：每种类型取前 n 条，按主键升序保证结果稳定
func (r *ContentRepository) Samples(contentType string, n int) ([]*model.MediaContent, error) {
	var contents []*model.MediaContent
	err := r.db.Where("content_type = ?", contentType).
		Order("id ASC").
		Limit(n).
		Find(&contents).Error
	return contents, err
}

// MovieDetail 电影详情，含参与人员；ID 对应剧集时同样视为未找到
func (r *ContentRepository) MovieDetail(id int) (*model.MediaContent, error) {
	return r.detail(id, model.ContentTypeMovie)
}

// SeriesDetail 剧集详情，额外加载全部季与集并统计总集数
func (r *ContentRepository) SeriesDetail(id int) (*model.MediaContent, int, error) {
	series, err := r.detail(id, model.ContentTypeSeries)
	if err != nil {
		return nil, 0, err
	}

	err = r.db.Preload("Episodes", func(db *gorm.DB) *gorm.DB {
		return db.Order("episode_number ASC")
	}).
		Where("media_content_id = ?", series.ID).
		Order("season_number ASC").
		Find(&series.Seasons).Error
	if err != nil {
		return nil, 0, err
	}

	total := 0
	for _, season := range series.Seasons {
		total += len(season.Episodes)
	}

	return series, total, nil
}

func (r *ContentRepository) detail(id int, contentType string) (*model.MediaContent, error) {
	var content model.MediaContent
	err := r.db.Preload("Genres").
		Preload("Participations.Person").
		Where("id = ? AND content_type = ?", id, contentType).
		First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &content, nil
}

// GenreNames 聚合查询某条内容的类型名列表
func (r *ContentRepository) GenreNames(contentID int) ([]string, error) {
	var names []string
	err := r.db.Raw(`
		SELECT COALESCE(array_agg(g.name ORDER BY g.name), '{}')
		FROM genres g
		JOIN content_genres cg ON cg.genre_id = g.id
		WHERE cg.media_content_id = ?
	`, contentID).Row().Scan(pq.Array(&names))
	return names, err
}

// Count 按类型统计内容数量
func (r *ContentRepository) Count(contentType string) (int64, error) {
	var count int64
	err := r.db.Model(&model.MediaContent{}).Where("content_type = ?", contentType).Count(&count).Error
	return count, err
}
