package entities

import "time"

// MailKind labels queued mail for operators
type MailKind string

const (
	MailKindInvitation       MailKind = "invitation"
	MailKindWorkerPayment    MailKind = "worker_payment"
	MailKindCompanyReport    MailKind = "company_report"
	MailKindManualPayroll    MailKind = "manual_payroll_report"
	MailKindContractorPayout MailKind = "contractor_payment"
)

// MailAttachment is an inline attachment
type MailAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// MailContent is the rendered message body
type MailContent struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// MailMessage is a queued mail document picked up by the mail transport
type MailMessage struct {
	ID          string           `json:"id"`
	Kind        MailKind         `json:"kind"`
	To          string           `json:"to"`
	Message     MailContent      `json:"message"`
	Attachments []MailAttachment `json:"attachments"`
	CreatedAt   time.Time        `json:"createdAt"`
}
