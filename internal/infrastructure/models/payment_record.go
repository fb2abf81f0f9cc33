package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

type PaymentRecord struct {
	ID              string          `gorm:"type:varchar(80);primaryKey"`
	BusinessID      string          `gorm:"type:varchar(64);not null;index"`
	Category        string          `gorm:"type:varchar(50);not null;index"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(36,6);not null"`
	Token           string          `gorm:"type:varchar(20);not null"`
	GasLimit        uint64          `gorm:"not null"`
	PayrollPeriod   string          `gorm:"type:varchar(40)"`
	PayrollDate     time.Time       `gorm:"not null"`
	TransactionHash null.String     `gorm:"type:varchar(80)"`
	ErrorDetails    null.String     `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"index"`
	UpdatedAt       time.Time

	Recipients []PaymentRecipient `gorm:"foreignKey:PaymentID;references:ID"`
}

type PaymentRecipient struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	PaymentID     string          `gorm:"type:varchar(80);not null;index"`
	Position      int             `gorm:"not null"`
	RecipientID   string          `gorm:"type:varchar(64);not null"`
	Name          string          `gorm:"type:varchar(255)"`
	Email         string          `gorm:"type:varchar(255)"`
	WalletAddress string          `gorm:"type:varchar(64);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(36,6);not null"`
}

type PaymentHistory struct {
	ID                     string          `gorm:"type:varchar(80);primaryKey"`
	BusinessID             string          `gorm:"type:varchar(64);not null;index"`
	PaymentID              string          `gorm:"type:varchar(80);not null"`
	TransactionID          string          `gorm:"type:varchar(80)"`
	Category               string          `gorm:"type:varchar(50);not null"`
	Amount                 decimal.Decimal `gorm:"type:decimal(36,6);not null"`
	Status                 string          `gorm:"type:varchar(20);not null"`
	TransactionHash        string          `gorm:"type:varchar(80)"`
	RecipientWalletAddress string          `gorm:"type:varchar(64)"`
	RecipientName          string          `gorm:"type:varchar(255)"`
	CreatedAt              time.Time       `gorm:"index"`
}

func (PaymentHistory) TableName() string {
	return "payment_history"
}
