package models

import "time"

// PricingPackage is informational only: packages describe the premium
// levels, there is no payment flow behind them.
type PricingPackage struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PackageType   string    `gorm:"size:20;not null;index" json:"package_type"` // standard | premium | premium_plus
	Name          string    `gorm:"size:100;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	CurrentPrice  float64   `json:"current_price"`
	OriginalPrice *float64  `json:"original_price"`
	IsFree        bool      `gorm:"default:false" json:"is_free"`
	IsPopular     bool      `gorm:"default:false" json:"is_popular"`
	IsActive      bool      `gorm:"default:true;index" json:"is_active"`
	DisplayOrder  int       `gorm:"default:0" json:"display_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (PricingPackage) TableName() string {
	return "pricing_packages"
}

func (p *PricingPackage) HasDiscount() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.CurrentPrice
}
