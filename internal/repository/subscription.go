package repository

import (
	"errors"
	"time"

	"github.com/mmissffitt/CineMax/internal/model"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// ListPlans 所有资费方案，价格升序
func (r *SubscriptionRepository) ListPlans() ([]*model.Subscription, error) {
	var plans []*model.Subscription
	err := r.db.Order("price ASC").Find(&plans).Error
	return plans, err
}

// ActiveForUser 用户当前生效的订阅，没有时返回 nil
func (r *SubscriptionRepository) ActiveForUser(userID int) (*model.UserSubscription, error) {
	var sub model.UserSubscription
	err := r.db.Preload("Subscription").
		Where("user_id = ? AND status = ?", userID, model.SubscriptionActive).
		Order("end_date DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByUser 用户全部订阅记录，开始日期倒序
func (r *SubscriptionRepository) ListByUser(userID int) ([]*model.UserSubscription, error) {
	var subs []*model.UserSubscription
	err := r.db.Preload("Subscription").
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&subs).Error
	return subs, err
}

// ExpireOverdue 把结束日期早于 now 的生效订阅置为已过期，返回影响行数
func (r *SubscriptionRepository) ExpireOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&model.UserSubscription{}).
		Where("status = ? AND end_date < ?", model.SubscriptionActive, now).
		Update("status", model.SubscriptionExpired)
	return result.RowsAffected, result.Error
}
