package models

import "time"

// MailMessage is a row of the outgoing mail queue. Attachments are stored as JSON.
type MailMessage struct {
	ID          string `gorm:"type:varchar(120);primaryKey"`
	Kind        string `gorm:"type:varchar(40);not null;index"`
	To          string `gorm:"column:recipient;type:varchar(255);not null"`
	Subject     string `gorm:"type:varchar(255);not null"`
	Text        string `gorm:"type:text"`
	HTML        string `gorm:"column:html;type:text"`
	Attachments string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (MailMessage) TableName() string {
	return "mail_queue"
}
