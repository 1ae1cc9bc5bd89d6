package service

import (
	"log"
	"time"

	"github.com/mmissffitt/CineMax/internal/repository"
)

// SubscriptionSweeper 订阅过期清扫服务
type SubscriptionSweeper struct {
	repos *repository.Repositories
}

// NewSubscriptionSweeper 创建清扫服务
func NewSubscriptionSweeper(repos *repository.Repositories) *SubscriptionSweeper {
	return &SubscriptionSweeper{repos: repos}
}

// Start 启动定时清扫任务
func (s *SubscriptionSweeper) Start() {
	ticker := time.NewTicker(24 * time.Hour)

	// 启动时先运行一次
	go s.runSweep()

	go func() {
		for range ticker.C {
			s.runSweep()
		}
	}()
}

func (s *SubscriptionSweeper) runSweep() {
	log.Println("[SubscriptionSweeper] 开始处理过期订阅...")

	affected, err := s.repos.Subscription.ExpireOverdue(time.Now())
	if err != nil {
		log.Printf("[SubscriptionSweeper] 处理过期订阅失败: %v", err)
		return
	}

	if affected > 0 {
		log.Printf("[SubscriptionSweeper] 已将 %d 条订阅置为过期", affected)
	}
}
