package usecases

import (
	"fmt"
	"html"
	"strings"
	"time"

	"trivix-payroll.backend/internal/domain/entities"
)

const mailDateLayout = "January 2, 2006"

// MailBuilder renders the plain payroll mail documents
type MailBuilder struct {
	productName  string
	dashboardURL string
}

// NewMailBuilder creates a mail builder
func NewMailBuilder(productName, dashboardURL string) *MailBuilder {
	if productName == "" {
		productName = "Trivix"
	}
	return &MailBuilder{productName: productName, dashboardURL: strings.TrimRight(dashboardURL, "/")}
}

// Invitation asks a payee to connect a wallet. Its id makes resends idempotent.
func (b *MailBuilder) Invitation(business *entities.Business, payee *entities.Payee) *entities.MailMessage {
	subject := fmt.Sprintf("%s invited you to get paid with %s", business.Name, b.productName)
	text := fmt.Sprintf("Hi %s,\n\n%s added you as a %s. Connect your wallet to receive payments:\n%s\n",
		payee.Name, business.Name, payee.Kind, payee.InviteLink)
	htmlBody := fmt.Sprintf("<p>Hi %s,</p><p>%s added you as a %s.</p><p><a href=\"%s\">Connect your wallet</a></p>",
		html.EscapeString(payee.Name), html.EscapeString(business.Name), html.EscapeString(string(payee.Kind)), html.EscapeString(payee.InviteLink))

	return &entities.MailMessage{
		ID:      payee.ID + "_invitation",
		Kind:    entities.MailKindInvitation,
		To:      payee.Email,
		Message: entities.MailContent{Subject: subject, Text: text, HTML: htmlBody},
	}
}

// WorkerPayment confirms one payout to a worker
func (b *MailBuilder) WorkerPayment(businessName string, payout entities.WorkerPayout, txHash string, paidAt time.Time) *entities.MailMessage {
	subject := fmt.Sprintf("You have been paid by %s", businessName)
	text := fmt.Sprintf("Hi %s,\n\n%s sent you %s USDC on %s.\nWallet: %s\n",
		payout.Name, businessName, payout.Amount.StringFixed(2), paidAt.Format(mailDateLayout), payout.WalletAddress)
	if txHash != "" {
		text += "Transaction: " + txHash + "\n"
	}
	htmlBody := fmt.Sprintf("<p>Hi %s,</p><p>%s sent you <strong>%s USDC</strong> on %s.</p>",
		html.EscapeString(payout.Name), html.EscapeString(businessName), payout.Amount.StringFixed(2), paidAt.Format(mailDateLayout))

	return &entities.MailMessage{
		ID:      payout.PaymentID + "_" + payout.WorkerID + "_payment",
		Kind:    entities.MailKindWorkerPayment,
		To:      payout.Email,
		Message: entities.MailContent{Subject: subject, Text: text, HTML: htmlBody},
	}
}

// ContractorPayment confirms a contractor payout
func (b *MailBuilder) ContractorPayment(businessName string, record *entities.PaymentRecord, txHash string) *entities.MailMessage {
	contractor := record.Recipients[0]
	payout := entities.WorkerPayout{
		PaymentID:     record.ID,
		WorkerID:      contractor.RecipientID,
		Name:          contractor.Name,
		Email:         contractor.Email,
		WalletAddress: contractor.WalletAddress,
		Amount:        contractor.Amount,
	}
	msg := b.WorkerPayment(businessName, payout, txHash, record.PayrollDate)
	msg.Kind = entities.MailKindContractorPayout
	return msg
}

// PayrollReport summarizes a payroll run for the company
func (b *MailBuilder) PayrollReport(kind entities.MailKind, businessID, to string, report entities.PayrollReport) *entities.MailMessage {
	var text strings.Builder
	fmt.Fprintf(&text, "Payroll report for %s, %s\n\n", report.BusinessName, report.PaymentDate.Format(mailDateLayout))
	fmt.Fprintf(&text, "Paid: %d worker(s), %s USDC total\n", len(report.Successful), report.TotalPaid().StringFixed(2))
	for _, p := range report.Successful {
		fmt.Fprintf(&text, "  - %s: %s USDC\n", p.Name, p.Amount.StringFixed(2))
	}
	fmt.Fprintf(&text, "Failed: %d worker(s)\n", len(report.Failed))
	for _, f := range report.Failed {
		fmt.Fprintf(&text, "  - %s: %s\n", f.Name, f.Reason)
	}
	if report.TransactionHash != "" {
		fmt.Fprintf(&text, "Transaction: %s\n", report.TransactionHash)
	}
	if report.NextPaymentDate != nil {
		fmt.Fprintf(&text, "Next payment date: %s\n", report.NextPaymentDate.Format(mailDateLayout))
	}
	if b.dashboardURL != "" {
		fmt.Fprintf(&text, "\nDetails: %s\n", b.dashboardURL)
	}

	var htmlBody strings.Builder
	fmt.Fprintf(&htmlBody, "<h2>Payroll report for %s</h2><ul>", html.EscapeString(report.BusinessName))
	for _, p := range report.Successful {
		fmt.Fprintf(&htmlBody, "<li>%s: %s USDC</li>", html.EscapeString(p.Name), p.Amount.StringFixed(2))
	}
	htmlBody.WriteString("</ul>")
	if len(report.Failed) > 0 {
		htmlBody.WriteString("<h3>Failed</h3><ul>")
		for _, f := range report.Failed {
			fmt.Fprintf(&htmlBody, "<li>%s: %s</li>", html.EscapeString(f.Name), html.EscapeString(f.Reason))
		}
		htmlBody.WriteString("</ul>")
	}

	return &entities.MailMessage{
		ID:   fmt.Sprintf("%s_%s_%d", kind, businessID, report.PaymentDate.UnixMilli()),
		Kind: kind,
		To:   to,
		Message: entities.MailContent{
			Subject: fmt.Sprintf("%s payroll report: %d paid, %d failed", report.BusinessName, len(report.Successful), len(report.Failed)),
			Text:    text.String(),
			HTML:    htmlBody.String(),
		},
	}
}
