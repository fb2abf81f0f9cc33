package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/domain/repositories"
	"trivix-payroll.backend/pkg/logger"
	"trivix-payroll.backend/pkg/utils"
)

var (
	errUserCancelled    = errors.New(entities.FailureUserCancelled)
	errApprovalTimedOut = errors.New(entities.FailureApprovalTimeout)
)

// PaymentStore is the part of the payment record store the orchestrator drives
type PaymentStore interface {
	CreatePending(ctx context.Context, input entities.PendingPaymentInput) (string, error)
	Finalize(ctx context.Context, businessID, paymentID string, outcome entities.FinalizeInput) error
}

// ChainSubmitter sends a pool call and waits for its outcome.
// A returned error means the call could not be initiated; ctx cancellation yields a Cancelled outcome.
type ChainSubmitter interface {
	Submit(ctx context.Context, submission *entities.ChainSubmission) (*entities.SubmissionOutcome, error)
}

// PaymentMetrics records finished payment attempts
type PaymentMetrics interface {
	ObservePaymentAttempt(category, status string, manualReview bool)
}

// OrchestratorConfig holds the chain settings of payouts
type OrchestratorConfig struct {
	PoolContractAddress string
	ChainID             int64
	TokenSymbol         string
	TokenDecimals       int32
	ApprovalTimeout     time.Duration
}

// PayrollOrchestrator drives one payment attempt from validation to reconciliation
type PayrollOrchestrator struct {
	store      PaymentStore
	submitter  ChainSubmitter
	payees     repositories.PayeeRepository
	businesses repositories.BusinessRepository
	notifier   *PayrollNotifier
	clock      Clock
	cfg        OrchestratorConfig
	metrics    PaymentMetrics

	mu       sync.Mutex
	inflight map[string]context.CancelCauseFunc
}

// NewPayrollOrchestrator creates a new payroll orchestrator
func NewPayrollOrchestrator(
	store PaymentStore,
	submitter ChainSubmitter,
	payees repositories.PayeeRepository,
	businesses repositories.BusinessRepository,
	notifier *PayrollNotifier,
	clock Clock,
	cfg OrchestratorConfig,
) *PayrollOrchestrator {
	if clock == nil {
		clock = time.Now
	}
	if cfg.TokenSymbol == "" {
		cfg.TokenSymbol = "USDC"
	}
	if cfg.TokenDecimals == 0 {
		cfg.TokenDecimals = 6
	}
	return &PayrollOrchestrator{
		store:      store,
		submitter:  submitter,
		payees:     payees,
		businesses: businesses,
		notifier:   notifier,
		clock:      clock,
		cfg:        cfg,
		inflight:   make(map[string]context.CancelCauseFunc),
	}
}

// WithMetrics attaches a metrics recorder
func (o *PayrollOrchestrator) WithMetrics(m PaymentMetrics) *PayrollOrchestrator {
	o.metrics = m
	return o
}

type paymentPlan struct {
	businessID string
	category   entities.PaymentCategory
	function   string
	idPrefix   string
	idSource   string
	recipients []entities.PaymentRecipient
	total      decimal.Decimal
	gasLimit   uint64
}

// PayWorkers pays a batch of workers in one payWorkers transaction.
// Any ineligible worker rejects the whole batch before a record is written.
func (o *PayrollOrchestrator) PayWorkers(ctx context.Context, businessID string, workers []*entities.Payee) (*entities.PaymentAttempt, error) {
	if len(workers) == 0 {
		return nil, domainerrors.BadRequest("no workers selected")
	}
	if err := o.checkConfig(); err != nil {
		return nil, err
	}

	recipients := make([]entities.PaymentRecipient, 0, len(workers))
	total := decimal.Zero
	for _, w := range workers {
		r, err := o.recipientFor(businessID, w)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, r)
		total = total.Add(r.Amount)
	}

	plan := paymentPlan{
		businessID: businessID,
		category:   entities.CategoryPayroll,
		function:   entities.FunctionPayWorkers,
		idPrefix:   PaymentPrefixPayroll,
		idSource:   businessID,
		recipients: recipients,
		total:      total,
		gasLimit:   EstimateBatchGas(len(recipients)),
	}
	attempt, record, err := o.execute(ctx, plan)
	if err != nil {
		return attempt, err
	}
	if attempt.Status == entities.PaymentStatusSuccess {
		o.notifyBatch(context.WithoutCancel(ctx), record, attempt.TransactionHash)
	}
	return attempt, nil
}

// PayWorkersByID loads the listed workers; an empty list selects every Active worker.
func (o *PayrollOrchestrator) PayWorkersByID(ctx context.Context, businessID string, workerIDs []string) (*entities.PaymentAttempt, error) {
	var workers []*entities.Payee
	if len(workerIDs) == 0 {
		all, err := o.payees.ListByBusiness(ctx, businessID, entities.PayeeKindWorker)
		if err != nil {
			return nil, err
		}
		for _, w := range all {
			if w.HasStatus(entities.PayeeStatusActive) {
				workers = append(workers, w)
			}
		}
	} else {
		for _, id := range workerIDs {
			w, err := o.payees.GetByID(ctx, businessID, id)
			if err != nil {
				if errors.Is(err, domainerrors.ErrNotFound) {
					return nil, domainerrors.NotFound(fmt.Sprintf("worker %s not found", id))
				}
				return nil, err
			}
			if w.Kind != entities.PayeeKindWorker {
				return nil, domainerrors.BadRequest(fmt.Sprintf("%s is not a worker", id))
			}
			workers = append(workers, w)
		}
	}
	return o.PayWorkers(ctx, businessID, workers)
}

// PayContractor pays one contractor with transferByEmployer
func (o *PayrollOrchestrator) PayContractor(ctx context.Context, businessID string, contractor *entities.Payee) (*entities.PaymentAttempt, error) {
	if err := o.checkConfig(); err != nil {
		return nil, err
	}
	r, err := o.recipientFor(businessID, contractor)
	if err != nil {
		return nil, err
	}

	plan := paymentPlan{
		businessID: businessID,
		category:   entities.CategoryContractorPayment,
		function:   entities.FunctionTransferByEmployer,
		idPrefix:   PaymentPrefixContractor,
		idSource:   contractor.ID,
		recipients: []entities.PaymentRecipient{r},
		total:      r.Amount,
		gasLimit:   SinglePaymentGasLimit,
	}
	attempt, record, err := o.execute(ctx, plan)
	if err != nil {
		return attempt, err
	}
	if attempt.Status == entities.PaymentStatusSuccess && o.notifier != nil {
		notifyCtx := context.WithoutCancel(ctx)
		if business, err := o.businesses.GetByID(notifyCtx, businessID); err == nil {
			o.notifier.NotifyContractor(notifyCtx, business.Name, record, attempt.TransactionHash)
		}
	}
	return attempt, nil
}

// PayContractorByID loads the contractor and pays it
func (o *PayrollOrchestrator) PayContractorByID(ctx context.Context, businessID, contractorID string) (*entities.PaymentAttempt, error) {
	c, err := o.payees.GetByID(ctx, businessID, contractorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("contractor not found")
		}
		return nil, err
	}
	if c.Kind != entities.PayeeKindContractor {
		return nil, domainerrors.BadRequest("payee is not a contractor")
	}
	return o.PayContractor(ctx, businessID, c)
}

// Cancel aborts a payment still waiting for wallet approval. The attempt then
// finalizes its record as Failed with "User cancelled".
func (o *PayrollOrchestrator) Cancel(paymentID string) error {
	o.mu.Lock()
	cancel, ok := o.inflight[paymentID]
	o.mu.Unlock()
	if !ok {
		return domainerrors.ErrPaymentNotInFlight
	}
	cancel(errUserCancelled)
	return nil
}

func (o *PayrollOrchestrator) checkConfig() error {
	if !common.IsHexAddress(o.cfg.PoolContractAddress) {
		return domainerrors.NewAppError(500, domainerrors.CodeInternalError, "payroll pool contract is not configured", domainerrors.ErrInvalidConfiguration)
	}
	return nil
}

func (o *PayrollOrchestrator) recipientFor(businessID string, p *entities.Payee) (entities.PaymentRecipient, error) {
	if p == nil {
		return entities.PaymentRecipient{}, domainerrors.BadRequest("payee is required")
	}
	if p.BusinessID != "" && !strings.EqualFold(p.BusinessID, businessID) {
		return entities.PaymentRecipient{}, domainerrors.IneligiblePayee(fmt.Sprintf("%s does not belong to this business", p.Name))
	}
	if !p.Salary.IsPositive() {
		return entities.PaymentRecipient{}, domainerrors.InvalidAmount(fmt.Sprintf("%s: amount must be greater than zero", p.Name))
	}
	if p.Kind == entities.PayeeKindContractor && p.HasStatus(entities.PayeeStatusPaid) {
		return entities.PaymentRecipient{}, domainerrors.AlreadyPaid()
	}
	if !p.HasStatus(entities.PayeeStatusActive) {
		return entities.PaymentRecipient{}, domainerrors.IneligiblePayee(fmt.Sprintf("%s: Inactive status", p.Name))
	}
	if p.Wallet() == "" {
		return entities.PaymentRecipient{}, domainerrors.IneligiblePayee(fmt.Sprintf("%s: Wallet not provided", p.Name))
	}
	wallet, err := checksumAddress(p.Wallet())
	if err != nil {
		return entities.PaymentRecipient{}, domainerrors.IneligiblePayee(fmt.Sprintf("%s: Invalid wallet address", p.Name))
	}
	return entities.PaymentRecipient{
		RecipientID:   p.ID,
		Name:          p.Name,
		Email:         p.Email,
		WalletAddress: wallet,
		Amount:        p.Salary,
	}, nil
}

// execute runs Preparing -> AwaitingWalletApproval -> Submitted -> Reconciling -> Done.
// An error is returned only when no record could be written; every other ending is in the attempt.
func (o *PayrollOrchestrator) execute(ctx context.Context, plan paymentPlan) (*entities.PaymentAttempt, *entities.PaymentRecord, error) {
	now := o.clock()
	attempt := &entities.PaymentAttempt{State: entities.AttemptPreparing, GasLimit: plan.gasLimit}

	input := entities.PendingPaymentInput{
		ID:            utils.PaymentID(plan.idPrefix, plan.idSource, now),
		BusinessID:    plan.businessID,
		Category:      plan.category,
		TotalAmount:   plan.total,
		Token:         o.cfg.TokenSymbol,
		GasLimit:      plan.gasLimit,
		PayrollPeriod: entities.PayrollPeriodLabel(now),
		PayrollDate:   now,
		Recipients:    plan.recipients,
	}
	paymentID, err := o.store.CreatePending(ctx, input)
	if err != nil {
		attempt.State = entities.AttemptDone
		attempt.Err = err
		return attempt, nil, err
	}
	attempt.PaymentID = paymentID
	attempt.Status = entities.PaymentStatusPending
	attempt.State = entities.AttemptAwaitingWalletApproval

	record := &entities.PaymentRecord{
		ID:          paymentID,
		BusinessID:  plan.businessID,
		Category:    plan.category,
		Status:      entities.PaymentStatusPending,
		TotalAmount: plan.total,
		Token:       o.cfg.TokenSymbol,
		GasLimit:    plan.gasLimit,
		PayrollDate: now,
		Recipients:  plan.recipients,
	}

	ctx = logger.WithBusiness(ctx, plan.businessID)
	logger.Info(ctx, "Awaiting wallet approval",
		zap.String("payment_id", paymentID),
		zap.String("function", plan.function),
		zap.Uint64("gas_limit", plan.gasLimit),
	)

	submission := &entities.ChainSubmission{
		PaymentID:       paymentID,
		ContractAddress: o.cfg.PoolContractAddress,
		FunctionName:    plan.function,
		Total:           toTokenUnits(plan.total, o.cfg.TokenDecimals),
		GasLimit:        plan.gasLimit,
		ChainID:         o.cfg.ChainID,
	}
	for _, r := range plan.recipients {
		submission.Transfers = append(submission.Transfers, entities.PoolTransfer{
			Recipient: r.WalletAddress,
			Amount:    toTokenUnits(r.Amount, o.cfg.TokenDecimals),
		})
	}

	outcome, submitErr := o.submit(ctx, submission)

	// the record is finalized even when the caller has gone away
	finalizeCtx := context.WithoutCancel(ctx)
	if submitErr != nil {
		logger.Warn(ctx, "Chain submission could not be initiated", zap.String("payment_id", paymentID), zap.Error(submitErr))
		o.reconcile(finalizeCtx, attempt, plan, entities.FinalizeInput{
			Status:       entities.PaymentStatusFailed,
			ErrorDetails: submitErr.Error(),
		})
		if attempt.Err == nil {
			attempt.Err = domainerrors.ChainSubmission(submitErr)
		}
		record.Status = attempt.Status
		return attempt, record, nil
	}

	attempt.State = entities.AttemptSubmitted
	var final entities.FinalizeInput
	switch outcome.Kind {
	case entities.OutcomeSuccess:
		final = entities.FinalizeInput{Status: entities.PaymentStatusSuccess, TransactionHash: outcome.TransactionHash}
	case entities.OutcomeCancelled:
		final = entities.FinalizeInput{Status: entities.PaymentStatusFailed, TransactionHash: outcome.TransactionHash, ErrorDetails: outcome.Reason}
	case entities.OutcomeUnconfirmed:
		// the hash may still be mined; the record closes as Failed and an operator checks the chain
		attempt.RequiresManualReview = true
		final = entities.FinalizeInput{Status: entities.PaymentStatusFailed, TransactionHash: outcome.TransactionHash, ErrorDetails: outcome.Reason}
	default:
		reason := outcome.Reason
		if reason == "" {
			reason = "transaction failed"
		}
		final = entities.FinalizeInput{Status: entities.PaymentStatusFailed, TransactionHash: outcome.TransactionHash, ErrorDetails: reason}
	}

	o.reconcile(finalizeCtx, attempt, plan, final)
	if attempt.Err == nil && outcome.Kind == entities.OutcomeUnconfirmed {
		attempt.State = entities.AttemptDoneWithWarning
		attempt.Err = domainerrors.Reconciliation(paymentID, errors.New(final.ErrorDetails))
	}
	if attempt.Err == nil && final.Status == entities.PaymentStatusFailed {
		attempt.Err = domainerrors.ChainSubmission(errors.New(final.ErrorDetails))
	}
	record.Status = attempt.Status
	record.TransactionHash = null.NewString(final.TransactionHash, final.TransactionHash != "")
	return attempt, record, nil
}

// submit registers the attempt as cancellable while the wallet approval is pending.
func (o *PayrollOrchestrator) submit(ctx context.Context, submission *entities.ChainSubmission) (*entities.SubmissionOutcome, error) {
	approvalCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if o.cfg.ApprovalTimeout > 0 {
		var stop context.CancelFunc
		approvalCtx, stop = context.WithTimeoutCause(approvalCtx, o.cfg.ApprovalTimeout, errApprovalTimedOut)
		defer stop()
	}

	o.mu.Lock()
	o.inflight[submission.PaymentID] = cancel
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		delete(o.inflight, submission.PaymentID)
		o.mu.Unlock()
	}()

	return o.submitter.Submit(approvalCtx, submission)
}

// reconcile finalizes the record. A finalize failure leaves DoneWithWarning and flags manual review.
func (o *PayrollOrchestrator) reconcile(ctx context.Context, attempt *entities.PaymentAttempt, plan paymentPlan, final entities.FinalizeInput) {
	defer func() {
		if o.metrics != nil {
			o.metrics.ObservePaymentAttempt(string(plan.category), string(attempt.Status), attempt.RequiresManualReview)
		}
	}()
	attempt.State = entities.AttemptReconciling
	attempt.TransactionHash = final.TransactionHash
	attempt.ErrorDetails = final.ErrorDetails

	if err := o.store.Finalize(ctx, plan.businessID, attempt.PaymentID, final); err != nil {
		logger.Error(ctx, "Payment requires manual reconciliation",
			zap.String("payment_id", attempt.PaymentID),
			zap.String("outcome", string(final.Status)),
			zap.String("tx_hash", final.TransactionHash),
			zap.Error(err),
		)
		attempt.State = entities.AttemptDoneWithWarning
		attempt.RequiresManualReview = true
		attempt.Err = domainerrors.Reconciliation(attempt.PaymentID, err)
		return
	}

	attempt.Status = final.Status
	attempt.State = entities.AttemptDone
	logger.Info(ctx, "Payment attempt completed",
		zap.String("payment_id", attempt.PaymentID),
		zap.String("status", string(final.Status)),
	)
}

func (o *PayrollOrchestrator) notifyBatch(ctx context.Context, record *entities.PaymentRecord, txHash string) {
	if o.notifier == nil || record == nil {
		return
	}
	business, err := o.businesses.GetByID(ctx, record.BusinessID)
	if err != nil {
		logger.Warn(ctx, "Skipping payroll notifications, business lookup failed", zap.Error(err))
		return
	}

	payouts := make([]entities.WorkerPayout, 0, len(record.Recipients))
	for _, r := range record.Recipients {
		payouts = append(payouts, entities.WorkerPayout{
			PaymentID:     record.ID,
			WorkerID:      r.RecipientID,
			Name:          r.Name,
			Email:         r.Email,
			WalletAddress: r.WalletAddress,
			Amount:        r.Amount,
		})
	}
	sent, demoted := o.notifier.NotifyWorkers(ctx, business.Name, payouts, txHash, record.PayrollDate)
	o.notifier.SendReport(ctx, entities.MailKindManualPayroll, business, entities.PayrollReport{
		BusinessName:    business.Name,
		PaymentDate:     record.PayrollDate,
		TransactionHash: txHash,
		Successful:      sent,
		Failed:          demoted,
		NextPaymentDate: business.Settings.NextPaymentDate,
	})
}
