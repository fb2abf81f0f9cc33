package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"trivix-payroll.backend/internal/domain/entities"
	domainerrors "trivix-payroll.backend/internal/domain/errors"
	"trivix-payroll.backend/internal/usecases"
)

func newPayeeUsecase() (*usecases.PayeeUsecase, *MockPayeeRepository, *MockBusinessRepository, *MockNotificationDispatcher) {
	payees := new(MockPayeeRepository)
	businesses := new(MockBusinessRepository)
	dispatcher := new(MockNotificationDispatcher)
	uc := usecases.NewPayeeUsecase(payees, businesses, dispatcher, usecases.NewMailBuilder("Trivix", ""), "https://app.example.com/", fixedClock)
	return uc, payees, businesses, dispatcher
}

func TestPayeeUsecase_CreatePayeeSendsInvitation(t *testing.T) {
	uc, payees, businesses, dispatcher := newPayeeUsecase()
	businesses.On("GetByID", mock.Anything, testBusiness).Return(&entities.Business{ID: testBusiness, Name: "Acme"}, nil).Once()
	payees.On("Create", mock.Anything, mock.AnythingOfType("*entities.Payee")).Return(nil).Once()
	dispatcher.On("DispatchOnce", mock.Anything, mock.MatchedBy(func(msg *entities.MailMessage) bool {
		return msg.Kind == entities.MailKindInvitation && msg.To == "ada@example.com"
	})).Return(true, nil).Once()

	p, err := uc.CreatePayee(context.Background(), testBusiness, usecases.CreatePayeeInput{
		Kind:   entities.PayeeKindContractor,
		Name:   " Ada ",
		Email:  "ada@example.com",
		Salary: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, entities.PayeeStatusInvited, p.Status)
	assert.Equal(t, "https://app.example.com/connect/"+testBusiness+"/"+p.ID, p.InviteLink)
	dispatcher.AssertExpectations(t)
}

func TestPayeeUsecase_CreatePayeeMailFailureKeepsPayee(t *testing.T) {
	uc, payees, businesses, dispatcher := newPayeeUsecase()
	businesses.On("GetByID", mock.Anything, testBusiness).Return(&entities.Business{ID: testBusiness, Name: "Acme"}, nil).Once()
	payees.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	dispatcher.On("DispatchOnce", mock.Anything, mock.Anything).Return(false, domainerrors.ErrNotificationDispatch).Once()

	p, err := uc.CreatePayee(context.Background(), testBusiness, usecases.CreatePayeeInput{
		Kind:   entities.PayeeKindWorker,
		Name:   "Bo",
		Email:  "bo@example.com",
		Salary: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
}

func TestPayeeUsecase_CreatePayeeValidation(t *testing.T) {
	uc, payees, _, _ := newPayeeUsecase()
	base := usecases.CreatePayeeInput{Kind: entities.PayeeKindWorker, Name: "Bo", Email: "bo@example.com", Salary: decimal.NewFromInt(1)}

	in := base
	in.Kind = "intern"
	_, err := uc.CreatePayee(context.Background(), testBusiness, in)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	in = base
	in.Email = "not-an-email"
	_, err = uc.CreatePayee(context.Background(), testBusiness, in)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	in = base
	in.Salary = decimal.NewFromInt(-5)
	_, err = uc.CreatePayee(context.Background(), testBusiness, in)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	payees.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPayeeUsecase_ConnectWallet(t *testing.T) {
	uc, payees, _, _ := newPayeeUsecase()
	lower := "0x52908400098527886e0f7030069857d2e4169ee7"
	checksummed := "0x52908400098527886E0F7030069857D2E4169EE7"

	invited := payee("w1", entities.PayeeKindWorker, 100, entities.PayeeStatusInvited, "")
	active := payee("w1", entities.PayeeKindWorker, 100, entities.PayeeStatusActive, checksummed)
	payees.On("GetByID", mock.Anything, testBusiness, "w1").Return(invited, nil).Once()
	payees.On("ConnectWallet", mock.Anything, testBusiness, "w1", checksummed).Return(nil).Once()
	payees.On("GetByID", mock.Anything, testBusiness, "w1").Return(active, nil).Once()

	p, err := uc.ConnectWallet(context.Background(), testBusiness, "w1", lower)
	require.NoError(t, err)
	assert.Equal(t, entities.PayeeStatusActive, p.Status)
	payees.AssertExpectations(t)

	_, err = uc.ConnectWallet(context.Background(), testBusiness, "w1", "0xnope")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestPayeeUsecase_ConnectWalletRejectsInactive(t *testing.T) {
	uc, payees, _, _ := newPayeeUsecase()
	payees.On("GetByID", mock.Anything, testBusiness, "w9").
		Return(payee("w9", entities.PayeeKindWorker, 100, entities.PayeeStatusInactive, ""), nil).Once()

	_, err := uc.ConnectWallet(context.Background(), testBusiness, "w9", walletFor(9))
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	payees.AssertNotCalled(t, "ConnectWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPayeeUsecase_ConnectWalletKeepsExistingPayouts(t *testing.T) {
	cases := []struct {
		name  string
		payee *entities.Payee
	}{
		{"paid contractor", payee("c1", entities.PayeeKindContractor, 500, entities.PayeeStatusPaid, walletFor(1))},
		{"active worker", payee("w1", entities.PayeeKindWorker, 100, entities.PayeeStatusActive, walletFor(2))},
		{"paid without wallet", payee("c2", entities.PayeeKindContractor, 500, entities.PayeeStatusPaid, "")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, payees, _, _ := newPayeeUsecase()
			payees.On("GetByID", mock.Anything, testBusiness, tc.payee.ID).Return(tc.payee, nil).Once()

			_, err := uc.ConnectWallet(context.Background(), testBusiness, tc.payee.ID, walletFor(99))
			assert.ErrorIs(t, err, domainerrors.ErrConflict)
			payees.AssertNotCalled(t, "ConnectWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPayeeUsecase_ConnectWalletLosesRace(t *testing.T) {
	uc, payees, _, _ := newPayeeUsecase()
	payees.On("GetByID", mock.Anything, testBusiness, "w1").
		Return(payee("w1", entities.PayeeKindWorker, 100, entities.PayeeStatusInvited, ""), nil).Once()
	payees.On("ConnectWallet", mock.Anything, testBusiness, "w1", walletFor(7)).Return(domainerrors.ErrConflict).Once()

	_, err := uc.ConnectWallet(context.Background(), testBusiness, "w1", walletFor(7))
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestPayeeUsecase_UpdateStatus(t *testing.T) {
	uc, payees, _, _ := newPayeeUsecase()
	payees.On("UpdateStatus", mock.Anything, testBusiness, "w1", entities.PayeeStatusInactive).Return(nil).Once()
	payees.On("UpdateStatus", mock.Anything, testBusiness, "gone", entities.PayeeStatusActive).Return(domainerrors.ErrNotFound).Once()

	require.NoError(t, uc.UpdateStatus(context.Background(), testBusiness, "w1", entities.PayeeStatusInactive))
	assert.ErrorIs(t, uc.UpdateStatus(context.Background(), testBusiness, "gone", entities.PayeeStatusActive), domainerrors.ErrNotFound)
	assert.ErrorIs(t, uc.UpdateStatus(context.Background(), testBusiness, "w1", "Retired"), domainerrors.ErrInvalidInput)
}

func TestPayeeUsecase_ListPayees(t *testing.T) {
	uc, payees, _, _ := newPayeeUsecase()
	payees.On("ListByBusiness", mock.Anything, testBusiness, entities.PayeeKind("")).Return(nil, errors.New("db down")).Once()

	_, err := uc.ListPayees(context.Background(), testBusiness, "")
	assert.Error(t, err)
}
