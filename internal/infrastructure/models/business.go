package models

import (
	"time"
)

type Business struct {
	ID              string `gorm:"type:varchar(64);primaryKey"`
	Name            string `gorm:"type:varchar(255)"`
	Email           string `gorm:"type:varchar(255)"`
	PaymentInterval string `gorm:"type:varchar(20)"`
	PaymentDay      string `gorm:"type:varchar(40)"`
	SpecificDate    *int
	NextPaymentDate *time.Time `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type PayrollSchedule struct {
	BusinessID      string `gorm:"type:varchar(64);primaryKey"`
	PaymentInterval string `gorm:"type:varchar(20);not null"`
	PaymentDay      string `gorm:"type:varchar(40);not null"`
	SpecificDate    *int
	NextPaymentDate time.Time `gorm:"not null"`
	Status          string    `gorm:"type:varchar(20);not null"`
	LastUpdated     time.Time
}
