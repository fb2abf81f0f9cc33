package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/domain/repositories"
	"trivix-payroll.backend/pkg/logger"
	"trivix-payroll.backend/pkg/utils"
)

// CreatePayeeInput is a new worker or contractor
type CreatePayeeInput struct {
	Kind   entities.PayeeKind
	Name   string
	Email  string
	Role   string
	Salary decimal.Decimal
	Note   string
}

// PayeeUsecase manages workers and contractors of a business
type PayeeUsecase struct {
	payees     repositories.PayeeRepository
	businesses repositories.BusinessRepository
	dispatcher NotificationDispatcher
	mails      *MailBuilder
	connectURL string
	clock      Clock
}

// NewPayeeUsecase creates a payee usecase. connectURL is the base of invite links.
func NewPayeeUsecase(
	payees repositories.PayeeRepository,
	businesses repositories.BusinessRepository,
	dispatcher NotificationDispatcher,
	mails *MailBuilder,
	connectURL string,
	clock Clock,
) *PayeeUsecase {
	if clock == nil {
		clock = time.Now
	}
	return &PayeeUsecase{
		payees:     payees,
		businesses: businesses,
		dispatcher: dispatcher,
		mails:      mails,
		connectURL: strings.TrimRight(connectURL, "/"),
		clock:      clock,
	}
}

// CreatePayee stores the payee as Invited and queues the invitation mail.
// A mail failure is logged; the payee is still created.
func (u *PayeeUsecase) CreatePayee(ctx context.Context, businessID string, input CreatePayeeInput) (*entities.Payee, error) {
	if input.Kind != entities.PayeeKindWorker && input.Kind != entities.PayeeKindContractor {
		return nil, domainerrors.BadRequest("kind must be worker or contractor")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("name is required")
	}
	email := strings.TrimSpace(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domainerrors.BadRequest("a valid email is required")
	}
	if !input.Salary.IsPositive() {
		return nil, domainerrors.InvalidAmount("amount must be greater than zero")
	}

	business, err := u.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("business not found")
		}
		return nil, err
	}

	now := u.clock()
	payee := &entities.Payee{
		ID:         utils.GenerateUUIDv7().String(),
		BusinessID: businessID,
		Kind:       input.Kind,
		Name:       name,
		Email:      email,
		Role:       strings.TrimSpace(input.Role),
		Salary:     input.Salary,
		Status:     entities.PayeeStatusInvited,
		Note:       input.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	payee.InviteLink = fmt.Sprintf("%s/connect/%s/%s", u.connectURL, businessID, payee.ID)

	if err := u.payees.Create(ctx, payee); err != nil {
		return nil, err
	}

	if _, err := u.dispatcher.DispatchOnce(ctx, u.mails.Invitation(business, payee)); err != nil {
		logger.Warn(ctx, "Invitation mail failed", zap.String("payee_id", payee.ID), zap.Error(err))
	}
	return payee, nil
}

// ListPayees lists payees of a business; an empty kind lists both
func (u *PayeeUsecase) ListPayees(ctx context.Context, businessID string, kind entities.PayeeKind) ([]*entities.Payee, error) {
	return u.payees.ListByBusiness(ctx, businessID, kind)
}

// ConnectWallet stores the checksummed wallet of an Invited payee and activates it.
// A connected wallet is never replaced through this path.
func (u *PayeeUsecase) ConnectWallet(ctx context.Context, businessID, payeeID, walletAddress string) (*entities.Payee, error) {
	wallet, err := checksumAddress(walletAddress)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid wallet address")
	}

	payee, err := u.get(ctx, businessID, payeeID)
	if err != nil {
		return nil, err
	}
	if payee.Wallet() != "" {
		return nil, domainerrors.Conflict("wallet already connected")
	}
	if !payee.HasStatus(entities.PayeeStatusInvited) {
		return nil, domainerrors.Conflict(fmt.Sprintf("payee is %s", strings.ToLower(string(payee.Status))))
	}

	if err := u.payees.ConnectWallet(ctx, businessID, payeeID, wallet); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrConflict):
			return nil, domainerrors.Conflict("wallet already connected")
		case errors.Is(err, domainerrors.ErrNotFound):
			return nil, domainerrors.NotFound("payee not found")
		}
		return nil, err
	}
	logger.Info(ctx, "Payee wallet connected", zap.String("payee_id", payeeID), zap.String("wallet", wallet))
	return u.get(ctx, businessID, payeeID)
}

// UpdateStatus sets the payee status
func (u *PayeeUsecase) UpdateStatus(ctx context.Context, businessID, payeeID string, status entities.PayeeStatus) error {
	switch status {
	case entities.PayeeStatusInvited, entities.PayeeStatusActive, entities.PayeeStatusPaid, entities.PayeeStatusInactive:
	default:
		return domainerrors.BadRequest(fmt.Sprintf("unknown status %q", status))
	}
	if err := u.payees.UpdateStatus(ctx, businessID, payeeID, status); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("payee not found")
		}
		return err
	}
	return nil
}

func (u *PayeeUsecase) get(ctx context.Context, businessID, payeeID string) (*entities.Payee, error) {
	payee, err := u.payees.GetByID(ctx, businessID, payeeID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("payee not found")
		}
		return nil, err
	}
	return payee, nil
}
