package usecases

import (
	"context"
	"time"

	"go.uber.org/zap"
	"trivix-payroll.backend/internal/domain/entities"
	"trivix-payroll.backend/pkg/logger"
)

// PayrollNotifier sends payout confirmations and company reports
type PayrollNotifier struct {
	dispatcher NotificationDispatcher
	mails      *MailBuilder
}

// NewPayrollNotifier creates a payroll notifier
func NewPayrollNotifier(dispatcher NotificationDispatcher, mails *MailBuilder) *PayrollNotifier {
	return &PayrollNotifier{dispatcher: dispatcher, mails: mails}
}

// NotifyWorkers mails every payout that has an address. A payout whose mail cannot be queued is moved to the
// failed list even though the money was sent, so the company report flags it.
func (n *PayrollNotifier) NotifyWorkers(ctx context.Context, businessName string, payouts []entities.WorkerPayout, txHash string, paidAt time.Time) ([]entities.WorkerPayout, []entities.WorkerFailure) {
	sent := make([]entities.WorkerPayout, 0, len(payouts))
	var demoted []entities.WorkerFailure
	for _, p := range payouts {
		if p.Email == "" {
			logger.Warn(ctx, "Worker has no email, skipping payment confirmation", zap.String("worker_id", p.WorkerID))
			sent = append(sent, p)
			continue
		}
		if err := n.dispatcher.Dispatch(ctx, n.mails.WorkerPayment(businessName, p, txHash, paidAt)); err != nil {
			logger.Warn(ctx, "Payment confirmation mail failed",
				zap.String("worker_id", p.WorkerID),
				zap.String("payment_id", p.PaymentID),
				zap.Error(err),
			)
			demoted = append(demoted, entities.WorkerFailure{
				WorkerID: p.WorkerID,
				Name:     p.Name,
				Email:    p.Email,
				Reason:   "Payment sent but confirmation email failed",
			})
			continue
		}
		sent = append(sent, p)
	}
	return sent, demoted
}

// SendReport mails the company report when the business has an email
func (n *PayrollNotifier) SendReport(ctx context.Context, kind entities.MailKind, business *entities.Business, report entities.PayrollReport) {
	if business.Email == "" {
		logger.Warn(ctx, "Business has no email, skipping payroll report", zap.String("business_id", business.ID))
		return
	}
	if err := n.dispatcher.Dispatch(ctx, n.mails.PayrollReport(kind, business.ID, business.Email, report)); err != nil {
		logger.Error(ctx, "Payroll report mail failed", zap.String("business_id", business.ID), zap.Error(err))
	}
}

// NotifyContractor confirms a contractor payout; failures are only logged
func (n *PayrollNotifier) NotifyContractor(ctx context.Context, businessName string, record *entities.PaymentRecord, txHash string) {
	if len(record.Recipients) == 0 {
		return
	}
	if err := n.dispatcher.Dispatch(ctx, n.mails.ContractorPayment(businessName, record, txHash)); err != nil {
		logger.Warn(ctx, "Contractor confirmation mail failed", zap.String("payment_id", record.ID), zap.Error(err))
	}
}
