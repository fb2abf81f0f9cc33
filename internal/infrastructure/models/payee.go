package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

type Payee struct {
	ID            string          `gorm:"type:varchar(64);primaryKey"`
	BusinessID    string          `gorm:"type:varchar(64);not null;index"`
	Kind          string          `gorm:"type:varchar(20);not null;index"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Email         string          `gorm:"type:varchar(255)"`
	Role          string          `gorm:"type:varchar(120)"`
	Salary        decimal.Decimal `gorm:"type:decimal(36,6)"`
	Status        string          `gorm:"type:varchar(20);not null"`
	WalletAddress null.String     `gorm:"type:varchar(64)"`
	InviteLink    string          `gorm:"type:text"`
	Note          string          `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
