package repository

import (
	"fmt"

	"github.com/mmissffitt/CineMax/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接并自动建表
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// Migrate 自动迁移所有模型（唯一索引与 CHECK 约束随模型声明建立）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Genre{},
		&model.MediaContent{},
		&model.Person{},
		&model.ContentParticipation{},
		&model.Season{},
		&model.Episode{},
		&model.Favorite{},
		&model.ViewHistory{},
		&model.Subscription{},
		&model.UserSubscription{},
		&model.Feedback{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB           *gorm.DB
	User         *UserRepository
	Content      *ContentRepository
	Episode      *EpisodeRepository
	Person       *PersonRepository
	Favorite     *FavoriteRepository
	History      *HistoryRepository
	Subscription *SubscriptionRepository
	Feedback     *FeedbackRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:           db,
		User:         NewUserRepository(db),
		Content:      NewContentRepository(db),
		Episode:      NewEpisodeRepository(db),
		Person:       NewPersonRepository(db),
		Favorite:     NewFavoriteRepository(db),
		History:      NewHistoryRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Feedback:     NewFeedbackRepository(db),
	}
}
