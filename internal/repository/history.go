package repository

import (
	"github.com/mmissffitt/CineMax/internal/model"
	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record 写入观看记录，先校验联合约束
func (r *HistoryRepository) Record(v *model.ViewHistory) error {
	if err := v.Validate(); err != nil {
		return err
	}
	return r.db.Create(v).Error
}

// ListByUser 获取用户观看历史，时间倒序
func (r *HistoryRepository) ListByUser(userID, limit, offset int) ([]*model.ViewHistory, error) {
	var histories []*model.ViewHistory
	err := r.db.Preload("MediaContent").
		Preload("Episode.Season").
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&histories).Error
	return histories, err
}

// CountByUser 统计用户观看历史数量
func (r *HistoryRepository) CountByUser(userID int) (int, error) {
	var count int64
	err := r.db.Model(&model.ViewHistory{}).Where("user_id = ?", userID).Count(&count).Error
	return int(count), err
}

// Delete 删除观看记录
func (r *HistoryRepository) Delete(userID, id int) error {
	return r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&model.ViewHistory{}).Error
}
