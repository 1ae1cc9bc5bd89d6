package repository

import (
	"errors"

	"github.com/mmissffitt/CineMax/internal/model"
	"gorm.io/gorm"
)

// ErrEpisodeNotFound 单集不存在
var ErrEpisodeNotFound = errors.New("episode not found")

type EpisodeRepository struct {
	db *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) *EpisodeRepository {
	return &EpisodeRepository{db: db}
}

// FindByID 根据 ID 查找单集，并沿 季 → 剧集 取回所属内容
func (r *EpisodeRepository) FindByID(id int) (*model.Episode, *model.MediaContent, error) {
	var episode model.Episode
	err := r.db.Preload("Season").First(&episode, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrEpisodeNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var series model.MediaContent
	if err := r.db.First(&series, episode.Season.MediaContentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEpisodeNotFound
		}
		return nil, nil, err
	}

	return &episode, &series, nil
}

// Previous 同季内集号小于当前集的最后一集，没有时返回 nil
func (r *EpisodeRepository) Previous(e *model.Episode) (*model.Episode, error) {
	var prev model.Episode
	err := r.db.Where("season_id = ? AND episode_number < ?", e.SeasonID, e.EpisodeNumber).
		Order("episode_number DESC").
		First(&prev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prev, nil
}

// Next 同季内集号大于当前集的第一集，没有时返回 nil
func (r *EpisodeRepository) Next(e *model.Episode) (*model.Episode, error) {
	var next model.Episode
	err := r.db.Where("season_id = ? AND episode_number > ?", e.SeasonID, e.EpisodeNumber).
		Order("episode_number ASC").
		First(&next).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &next, nil
}
