package model

import (
	"time"
)

// 用户订阅状态
const (
	SubscriptionActive   = "ACTIVE"
	SubscriptionExpired  = "EXPIRED"
	SubscriptionCanceled = "CANCELED"
)

// 支付方式
const (
	PaymentCard        = "CARD"
	PaymentPayPal      = "PAYPAL"
	PaymentApplePay    = "APPLE_PAY"
	PaymentGooglePay   = "GOOGLE_PAY"
	PaymentYandexMoney = "YANDEX_MONEY"
)

// Subscription 订阅套餐（可购买的资费方案目录）
type Subscription struct {
	ID           int    `json:"id" db:"id"`
	TariffPlan   string `json:"tariff_plan" db:"tariff_plan"`
	Description  string `json:"description" db:"description"`
	Price        string `json:"price" db:"price" gorm:"type:decimal(8,2)"`
	DurationDays int    `json:"duration_days" db:"duration_days"`
}

// UserSubscription 用户持有的订阅实例
type UserSubscription struct {
	ID             int       `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id" gorm:"index"`
	SubscriptionID int       `json:"subscription_id" db:"subscription_id"`
	Status         string    `json:"status" db:"status" gorm:"size:10;default:ACTIVE"`
	StartDate      time.Time `json:"start_date" db:"start_date"`
	EndDate        time.Time `json:"end_date" db:"end_date"`
	AutoRenewal    bool      `json:"auto_renewal" db:"auto_renewal" gorm:"default:false"`
	PaymentMethod  string    `json:"payment_method" db:"payment_method" gorm:"size:20"`

	Subscription *Subscription `json:"subscription,omitempty"` // 关联查询时填充
}
