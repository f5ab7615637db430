package model

import "time"

// 同一個 (user, product) 最多一筆評論
type Review struct {
	ReviewID   uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_review_user_product"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_review_user_product"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:varchar(255)"`
	ReviewDate time.Time `gorm:"not null"`
	BaseModel
}

// 同一個 (user, product) 最多一筆願望清單
type WishlistItem struct {
	WishlistID uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	AddedAt    time.Time `gorm:"not null"`
	Notes      *string   `gorm:"type:varchar(255)"`
	BaseModel
}
