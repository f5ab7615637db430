package db

import (
	"github.com/RoyceAzure/lab/store_seeder/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Review{},
		&model.WishlistItem{},
		&model.OrderStatusType{},
		&model.PaymentStatusType{},
		&model.DeliveryStatusType{},
		&model.Promotion{},
		&model.PromotionApplication{},
		&model.PromotionUsage{},
	)
}

// SeedStatusTypes 填入三張狀態參考表，已存在的key不動
// 冪等性
func (d *DbDao) SeedStatusTypes() error {
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "status_key"}},
		DoNothing: true,
	}

	for i, key := range model.AllOrderStatuses() {
		row := model.OrderStatusType{StatusID: uint(i + 1), StatusKey: string(key)}
		if err := d.Clauses(onConflict).Create(&row).Error; err != nil {
			return err
		}
	}
	for i, key := range model.AllPaymentStatuses() {
		row := model.PaymentStatusType{StatusID: uint(i + 1), StatusKey: string(key)}
		if err := d.Clauses(onConflict).Create(&row).Error; err != nil {
			return err
		}
	}
	for i, key := range model.AllDeliveryStatuses() {
		row := model.DeliveryStatusType{StatusID: uint(i + 1), StatusKey: string(key)}
		if err := d.Clauses(onConflict).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
