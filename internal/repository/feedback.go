package repository

import (
	"time"

	"github.com/mmissffitt/CineMax/internal/model"
	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create 创建反馈，初始状态 pending
func (r *FeedbackRepository) Create(f *model.Feedback) error {
	f.Status = "pending"
	f.CreatedAt = time.Now()
	return r.db.Create(f).Error
}

// List 获取反馈列表
func (r *FeedbackRepository) List(status string, limit, offset int) ([]*model.Feedback, error) {
	query := r.db.Model(&model.Feedback{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var feedbacks []*model.Feedback
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&feedbacks).Error
	return feedbacks, err
}

// UpdateStatus 更新反馈状态
func (r *FeedbackRepository) UpdateStatus(id int, status string) error {
	return r.db.Model(&model.Feedback{}).Where("id = ?", id).Update("status", status).Error
}
