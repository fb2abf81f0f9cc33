package usecases_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"trivix-payroll.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock PaymentRecordRepository
type MockPaymentRecordRepository struct {
	mock.Mock
}

func (m *MockPaymentRecordRepository) Create(ctx context.Context, record *entities.PaymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPaymentRecordRepository) GetByID(ctx context.Context, businessID, id string) (*entities.PaymentRecord, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) GetByIDForUpdate(ctx context.Context, businessID, id string) (*entities.PaymentRecord, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entities.PaymentRecord, int64, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.PaymentRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRecordRepository) ListPendingBefore(ctx context.Context, businessID string, before time.Time, limit int) ([]*entities.PaymentRecord, error) {
	args := m.Called(ctx, businessID, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) UpdateOutcome(ctx context.Context, businessID, id string, outcome entities.FinalizeInput) error {
	args := m.Called(ctx, businessID, id, outcome)
	return args.Error(0)
}

// Mock PaymentHistoryRepository
type MockPaymentHistoryRepository struct {
	mock.Mock
}

func (m *MockPaymentHistoryRepository) Append(ctx context.Context, entry *entities.PaymentHistoryEntry) (bool, error) {
	args := m.Called(ctx, entry)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentHistoryRepository) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entities.PaymentHistoryEntry, int64, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.PaymentHistoryEntry), args.Get(1).(int64), args.Error(2)
}

// Mock PayeeRepository
type MockPayeeRepository struct {
	mock.Mock
}

func (m *MockPayeeRepository) Create(ctx context.Context, payee *entities.Payee) error {
	args := m.Called(ctx, payee)
	return args.Error(0)
}

func (m *MockPayeeRepository) GetByID(ctx context.Context, businessID, id string) (*entities.Payee, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payee), args.Error(1)
}

func (m *MockPayeeRepository) ListByBusiness(ctx context.Context, businessID string, kind entities.PayeeKind) ([]*entities.Payee, error) {
	args := m.Called(ctx, businessID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Payee), args.Error(1)
}

func (m *MockPayeeRepository) UpdateStatus(ctx context.Context, businessID, id string, status entities.PayeeStatus) error {
	args := m.Called(ctx, businessID, id, status)
	return args.Error(0)
}

func (m *MockPayeeRepository) ConnectWallet(ctx context.Context, businessID, id, walletAddress string) error {
	args := m.Called(ctx, businessID, id, walletAddress)
	return args.Error(0)
}

// Mock BusinessRepository
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) Create(ctx context.Context, business *entities.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) GetByID(ctx context.Context, id string) (*entities.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Business), args.Error(1)
}

func (m *MockBusinessRepository) List(ctx context.Context) ([]*entities.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Business), args.Error(1)
}

func (m *MockBusinessRepository) UpdateSettings(ctx context.Context, id string, settings entities.BusinessSettings) error {
	args := m.Called(ctx, id, settings)
	return args.Error(0)
}

func (m *MockBusinessRepository) UpdateNextPaymentDate(ctx context.Context, id string, next time.Time) error {
	args := m.Called(ctx, id, next)
	return args.Error(0)
}

// Mock PayrollScheduleRepository
type MockPayrollScheduleRepository struct {
	mock.Mock
}

func (m *MockPayrollScheduleRepository) Upsert(ctx context.Context, schedule *entities.PayrollSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockPayrollScheduleRepository) GetCurrent(ctx context.Context, businessID string) (*entities.PayrollSchedule, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PayrollSchedule), args.Error(1)
}

// Mock MailRepository
type MockMailRepository struct {
	mock.Mock
}

func (m *MockMailRepository) Enqueue(ctx context.Context, message *entities.MailMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMailRepository) EnqueueIfAbsent(ctx context.Context, message *entities.MailMessage) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

// Mock NotificationDispatcher
type MockNotificationDispatcher struct {
	mock.Mock
}

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, message *entities.MailMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) DispatchOnce(ctx context.Context, message *entities.MailMessage) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

// Mock PaymentStore
type MockPaymentStore struct {
	mock.Mock
}

func (m *MockPaymentStore) CreatePending(ctx context.Context, input entities.PendingPaymentInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentStore) Finalize(ctx context.Context, businessID, paymentID string, outcome entities.FinalizeInput) error {
	args := m.Called(ctx, businessID, paymentID, outcome)
	return args.Error(0)
}

// Mock ChainSubmitter
type MockChainSubmitter struct {
	mock.Mock
}

func (m *MockChainSubmitter) Submit(ctx context.Context, submission *entities.ChainSubmission) (*entities.SubmissionOutcome, error) {
	args := m.Called(ctx, submission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SubmissionOutcome), args.Error(1)
}

// Mock PayrollDataSender
type MockPayrollDataSender struct {
	mock.Mock
}

func (m *MockPayrollDataSender) SendWorkerPayout(ctx context.Context, employer string, payout entities.WorkerPayout) error {
	args := m.Called(ctx, employer, payout)
	return args.Error(0)
}
