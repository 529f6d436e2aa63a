package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propera/pdc_backend/internal/apperrors"
	"github.com/propera/pdc_backend/internal/core/domain"
	portsrepo "github.com/propera/pdc_backend/internal/core/ports/repositories"
	portssvc "github.com/propera/pdc_backend/internal/core/ports/services"
	"github.com/propera/pdc_backend/internal/core/services"
	"github.com/propera/pdc_backend/internal/dto"
)

// --- Mock ChequeRepository ---
type MockChequeRepository struct {
	mock.Mock
}

// Ensure MockChequeRepository implements portsrepo.ChequeRepositoryWithTx
var _ portsrepo.ChequeRepositoryWithTx = (*MockChequeRepository)(nil)

func (m *MockChequeRepository) FindChequeByID(ctx context.Context, chequeID string) (*domain.Cheque, error) {
	args := m.Called(ctx, chequeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cheque), args.Error(1)
}

func (m *MockChequeRepository) ListCheques(ctx context.Context, filter domain.ChequeFilter, limit int, nextToken *string) ([]domain.Cheque, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Cheque), returnedNextToken, args.Error(2)
}

func (m *MockChequeRepository) ListSweepCandidates(ctx context.Context, dueOnOrBefore time.Time, limit int) ([]domain.Cheque, error) {
	args := m.Called(ctx, dueOnOrBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cheque), args.Error(1)
}

func (m *MockChequeRepository) CreateCheque(ctx context.Context, cheque domain.Cheque, transition domain.ChequeTransition) error {
	args := m.Called(ctx, cheque, transition)
	return args.Error(0)
}

func (m *MockChequeRepository) CreateChequesBulk(ctx context.Context, cheques []domain.Cheque, transitions []domain.ChequeTransition) error {
	args := m.Called(ctx, cheques, transitions)
	return args.Error(0)
}

func (m *MockChequeRepository) UpdateChequeStatus(ctx context.Context, cheque domain.Cheque, expectedVersion int64, transition domain.ChequeTransition) error {
	args := m.Called(ctx, cheque, expectedVersion, transition)
	return args.Error(0)
}

func (m *MockChequeRepository) LinkReplacement(ctx context.Context, original domain.Cheque, expectedVersion int64, replacement domain.Cheque, originalTransition, replacementTransition domain.ChequeTransition) error {
	args := m.Called(ctx, original, expectedVersion, replacement, originalTransition, replacementTransition)
	return args.Error(0)
}

func (m *MockChequeRepository) FindTransitionsByChequeID(ctx context.Context, chequeID string) ([]domain.ChequeTransition, error) {
	args := m.Called(ctx, chequeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChequeTransition), args.Error(1)
}

func (m *MockChequeRepository) FindTransitionByRequestID(ctx context.Context, chequeID, requestID string) (*domain.ChequeTransition, error) {
	args := m.Called(ctx, chequeID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChequeTransition), args.Error(1)
}

func (m *MockChequeRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockChequeRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockChequeRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock BankAccountService ---
type MockBankAccountService struct {
	mock.Mock
}

var _ portssvc.BankAccountSvcFacade = (*MockBankAccountService)(nil)

func (m *MockBankAccountService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, actorUserID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountService) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountService) UpdateStatus(ctx context.Context, bankAccountID string, status domain.BankAccountStatus, actorUserID string) error {
	args := m.Called(ctx, bankAccountID, status, actorUserID)
	return args.Error(0)
}

func (m *MockBankAccountService) ResolveActive(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

// --- Mock TenantService ---
type MockTenantService struct {
	mock.Mock
}

var _ portssvc.TenantSvcFacade = (*MockTenantService)(nil)

func (m *MockTenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantService) EnsureExists(ctx context.Context, tenantID string) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// --- Mock ChainService ---
type MockChainService struct {
	mock.Mock
}

var _ portssvc.ChainSvcFacade = (*MockChainService)(nil)

func (m *MockChainService) GetReplacementChain(ctx context.Context, chequeID string) ([]domain.Cheque, error) {
	args := m.Called(ctx, chequeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cheque), args.Error(1)
}

func (m *MockChainService) ValidateLinkTarget(ctx context.Context, originalChequeID string) error {
	args := m.Called(ctx, originalChequeID)
	return args.Error(0)
}

func (m *MockChainService) EnsureCanOpenSettlement(ctx context.Context, tenantID string, method domain.SettlementMethod, txnReference string) error {
	args := m.Called(ctx, tenantID, method, txnReference)
	return args.Error(0)
}

func (m *MockChainService) GetSettlementByCheque(ctx context.Context, chequeID string) (*domain.WithdrawalSettlement, error) {
	args := m.Called(ctx, chequeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalSettlement), args.Error(1)
}

func (m *MockChainService) RecordWithdrawalSettlement(ctx context.Context, cheque domain.Cheque, method domain.SettlementMethod, txnReference string, actorUserID string) (*domain.WithdrawalSettlement, error) {
	args := m.Called(ctx, cheque, method, txnReference, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalSettlement), args.Error(1)
}

func (m *MockChainService) CompleteSettlementLink(ctx context.Context, settlementID, newChequeID, actorUserID string) (*domain.WithdrawalSettlement, error) {
	args := m.Called(ctx, settlementID, newChequeID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalSettlement), args.Error(1)
}

// --- Test Suite Setup ---
type ChequeServiceTestSuite struct {
	suite.Suite
	mockChequeRepo  *MockChequeRepository
	mockBankAccSvc  *MockBankAccountService
	mockTenantSvc   *MockTenantService
	mockChainSvc    *MockChainService
	service         portssvc.ChequeSvcFacade
	tenantID        string
	userID          string
	ctx             context.Context
}

const (
	testDueWindowDays    = 7
	testDepositGraceDays = 3
)

func (suite *ChequeServiceTestSuite) SetupTest() {
	suite.mockChequeRepo = new(MockChequeRepository)
	suite.mockBankAccSvc = new(MockBankAccountService)
	suite.mockTenantSvc = new(MockTenantService)
	suite.mockChainSvc = new(MockChainService)
	suite.service = services.NewChequeService(
		suite.mockChequeRepo,
		suite.mockBankAccSvc,
		suite.mockTenantSvc,
		suite.mockChainSvc,
		testDueWindowDays,
		testDepositGraceDays,
	)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.ctx = context.Background()
}

func (suite *ChequeServiceTestSuite) chequeInStatus(status domain.ChequeStatus) domain.Cheque {
	now := time.Now().UTC()
	return domain.Cheque{
		ChequeID:     uuid.NewString(),
		ChequeNumber: "100234",
		BankName:     "Emirates NBD",
		Amount:       decimal.NewFromInt(12000),
		ChequeDate:   now.AddDate(0, 1, 0),
		TenantID:     suite.tenantID,
		Status:       status,
		Version:      3,
		AuditFields: domain.AuditFields{
			CreatedAt:     now.AddDate(0, -1, 0),
			CreatedBy:     suite.userID,
			LastUpdatedAt: now.AddDate(0, -1, 0),
			LastUpdatedBy: suite.userID,
		},
	}
}

func (suite *ChequeServiceTestSuite) registerRequest(chequeDate time.Time) dto.RegisterChequeRequest {
	return dto.RegisterChequeRequest{
		ChequeNumber: "100234",
		BankName:     "Emirates NBD",
		Amount:       decimal.NewFromInt(12000),
		ChequeDate:   chequeDate,
		TenantID:     suite.tenantID,
	}
}

// --- RegisterCheque ---

func (suite *ChequeServiceTestSuite) TestRegisterCheque_FutureDateStartsReceived() {
	req := suite.registerRequest(time.Now().UTC().AddDate(0, 2, 0))

	suite.mockTenantSvc.On("EnsureExists", suite.ctx, suite.tenantID).Return(nil)
	suite.mockChequeRepo.On("CreateCheque", suite.ctx, mock.AnythingOfType("domain.Cheque"), mock.AnythingOfType("domain.ChequeTransition")).Return(nil)

	cheque, err := suite.service.RegisterCheque(suite.ctx, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusReceived, cheque.Status)
	assert.Equal(suite.T(), int64(1), cheque.Version)
	assert.Equal(suite.T(), suite.userID, cheque.CreatedBy)

	// Creation transition must have a nil from-status.
	createCall := suite.mockChequeRepo.Calls[0]
	transition := createCall.Arguments.Get(2).(domain.ChequeTransition)
	assert.Nil(suite.T(), transition.FromStatus)
	assert.Equal(suite.T(), domain.StatusReceived, transition.ToStatus)
	assert.NotEmpty(suite.T(), transition.RequestID)
}

func (suite *ChequeServiceTestSuite) TestRegisterCheque_NearDateStartsDue() {
	req := suite.registerRequest(time.Now().UTC().AddDate(0, 0, 2))

	suite.mockTenantSvc.On("EnsureExists", suite.ctx, suite.tenantID).Return(nil)
	suite.mockChequeRepo.On("CreateCheque", suite.ctx, mock.AnythingOfType("domain.Cheque"), mock.AnythingOfType("domain.ChequeTransition")).Return(nil)

	cheque, err := suite.service.RegisterCheque(suite.ctx, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusDue, cheque.Status)
}

func (suite *ChequeServiceTestSuite) TestRegisterCheque_RejectsNonPositiveAmount() {
	req := suite.registerRequest(time.Now().UTC().AddDate(0, 1, 0))
	req.Amount = decimal.Zero

	suite.mockTenantSvc.On("EnsureExists", suite.ctx, suite.tenantID).Return(nil)

	_, err := suite.service.RegisterCheque(suite.ctx, req, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockChequeRepo.AssertNotCalled(suite.T(), "CreateCheque")
}

func (suite *ChequeServiceTestSuite) TestRegisterCheque_RejectsUnknownTenant() {
	req := suite.registerRequest(time.Now().UTC().AddDate(0, 1, 0))

	suite.mockTenantSvc.On("EnsureExists", suite.ctx, suite.tenantID).
		Return(apperrors.NewValidationFieldError("tenantID", "tenant does not exist"))

	_, err := suite.service.RegisterCheque(suite.ctx, req, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *ChequeServiceTestSuite) TestRegisterCheque_PropagatesDuplicateInstrument() {
	req := suite.registerRequest(time.Now().UTC().AddDate(0, 1, 0))

	suite.mockTenantSvc.On("EnsureExists", suite.ctx, suite.tenantID).Return(nil)
	suite.mockChequeRepo.On("CreateCheque", suite.ctx, mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicateInstrument)

	_, err := suite.service.RegisterCheque(suite.ctx, req, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicateInstrument)
}

func (suite *ChequeServiceTestSuite) TestRegisterChequesBulk() {
	req := dto.RegisterChequesBulkRequest{
		Cheques: []dto.RegisterChequeRequest{
			suite.registerRequest(time.Now().UTC().AddDate(0, 1, 0)),
			suite.registerRequest(time.Now().UTC().AddDate(0, 2, 0)),
		},
	}
	req.Cheques[1].ChequeNumber = "100235"

	suite.mockTenantSvc.On("EnsureExists", suite.ctx, suite.tenantID).Return(nil)
	suite.mockChequeRepo.On("CreateChequesBulk", suite.ctx, mock.AnythingOfType("[]domain.Cheque"), mock.AnythingOfType("[]domain.ChequeTransition")).Return(nil)

	cheques, err := suite.service.RegisterChequesBulk(suite.ctx, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), cheques, 2)
	suite.mockChequeRepo.AssertCalled(suite.T(), "CreateChequesBulk", suite.ctx, mock.Anything, mock.Anything)
}

func (suite *ChequeServiceTestSuite) TestRegisterChequesBulk_EmptyRejected() {
	_, err := suite.service.RegisterChequesBulk(suite.ctx, dto.RegisterChequesBulkRequest{}, suite.userID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

// --- Deposit ---

func (suite *ChequeServiceTestSuite) TestDeposit_Success() {
	cheque := suite.chequeInStatus(domain.StatusDue)
	cheque.ChequeDate = time.Now().UTC().AddDate(0, 0, 1)
	account := &domain.BankAccount{BankAccountID: uuid.NewString(), Status: domain.BankAccountActive}

	suite.mockBankAccSvc.On("ResolveActive", suite.ctx, account.BankAccountID).Return(account, nil)
	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChequeRepo.On("UpdateChequeStatus", suite.ctx, mock.AnythingOfType("domain.Cheque"), cheque.Version, mock.AnythingOfType("domain.ChequeTransition")).Return(nil)

	updated, err := suite.service.Deposit(suite.ctx, cheque.ChequeID, dto.DepositChequeRequest{
		BankAccountID: account.BankAccountID,
	}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusDeposited, updated.Status)
	assert.Equal(suite.T(), account.BankAccountID, updated.BankAccountID)
	assert.NotNil(suite.T(), updated.DepositDate)
	assert.Equal(suite.T(), cheque.Version+1, updated.Version)
}

func (suite *ChequeServiceTestSuite) TestDeposit_RejectsInactiveAccount() {
	cheque := suite.chequeInStatus(domain.StatusDue)
	accountID := uuid.NewString()

	suite.mockBankAccSvc.On("ResolveActive", suite.ctx, accountID).
		Return(nil, apperrors.NewAppError(422, "inactive", apperrors.ErrInvalidBankAccount))

	_, err := suite.service.Deposit(suite.ctx, cheque.ChequeID, dto.DepositChequeRequest{
		BankAccountID: accountID,
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidBankAccount)
	suite.mockChequeRepo.AssertNotCalled(suite.T(), "UpdateChequeStatus")
}

func (suite *ChequeServiceTestSuite) TestDeposit_RejectsReceivedCheque() {
	cheque := suite.chequeInStatus(domain.StatusReceived)
	account := &domain.BankAccount{BankAccountID: uuid.NewString(), Status: domain.BankAccountActive}

	suite.mockBankAccSvc.On("ResolveActive", suite.ctx, account.BankAccountID).Return(account, nil)
	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)

	_, err := suite.service.Deposit(suite.ctx, cheque.ChequeID, dto.DepositChequeRequest{
		BankAccountID: account.BankAccountID,
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrIllegalTransition)
	var illegalErr *apperrors.IllegalTransitionError
	assert.ErrorAs(suite.T(), err, &illegalErr)
	assert.Equal(suite.T(), string(domain.StatusReceived), illegalErr.From)
	assert.Equal(suite.T(), string(domain.StatusDeposited), illegalErr.AttemptedTo)
}

func (suite *ChequeServiceTestSuite) TestDeposit_RejectsDateOutsideGrace() {
	cheque := suite.chequeInStatus(domain.StatusDue)
	cheque.ChequeDate = time.Now().UTC().AddDate(0, 0, 30)
	account := &domain.BankAccount{BankAccountID: uuid.NewString(), Status: domain.BankAccountActive}

	suite.mockBankAccSvc.On("ResolveActive", suite.ctx, account.BankAccountID).Return(account, nil)
	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)

	depositDate := time.Now().UTC()
	_, err := suite.service.Deposit(suite.ctx, cheque.ChequeID, dto.DepositChequeRequest{
		BankAccountID: account.BankAccountID,
		DepositDate:   &depositDate,
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockChequeRepo.AssertNotCalled(suite.T(), "UpdateChequeStatus")
}

func (suite *ChequeServiceTestSuite) TestDeposit_PropagatesVersionConflict() {
	cheque := suite.chequeInStatus(domain.StatusDue)
	cheque.ChequeDate = time.Now().UTC()
	account := &domain.BankAccount{BankAccountID: uuid.NewString(), Status: domain.BankAccountActive}

	suite.mockBankAccSvc.On("ResolveActive", suite.ctx, account.BankAccountID).Return(account, nil)
	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChequeRepo.On("UpdateChequeStatus", suite.ctx, mock.Anything, cheque.Version, mock.Anything).
		Return(apperrors.ErrConcurrentModification)

	_, err := suite.service.Deposit(suite.ctx, cheque.ChequeID, dto.DepositChequeRequest{
		BankAccountID: account.BankAccountID,
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConcurrentModification)
}

// --- Clear / Bounce ---

func (suite *ChequeServiceTestSuite) TestClear_Success() {
	cheque := suite.chequeInStatus(domain.StatusDeposited)

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChequeRepo.On("UpdateChequeStatus", suite.ctx, mock.Anything, cheque.Version, mock.Anything).Return(nil)

	updated, err := suite.service.Clear(suite.ctx, cheque.ChequeID, dto.ClearChequeRequest{}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusCleared, updated.Status)
	assert.NotNil(suite.T(), updated.ClearedDate)
}

func (suite *ChequeServiceTestSuite) TestBounce_RequiresReason() {
	cheque := suite.chequeInStatus(domain.StatusDeposited)

	_, err := suite.service.Bounce(suite.ctx, cheque.ChequeID, dto.BounceChequeRequest{}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockChequeRepo.AssertNotCalled(suite.T(), "FindChequeByID")
}

func (suite *ChequeServiceTestSuite) TestBounce_Success() {
	cheque := suite.chequeInStatus(domain.StatusDeposited)

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChequeRepo.On("UpdateChequeStatus", suite.ctx, mock.Anything, cheque.Version, mock.Anything).Return(nil)

	updated, err := suite.service.Bounce(suite.ctx, cheque.ChequeID, dto.BounceChequeRequest{
		BounceReason: "insufficient funds",
	}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusBounced, updated.Status)
	assert.Equal(suite.T(), "insufficient funds", updated.BounceReason)
	assert.NotNil(suite.T(), updated.BouncedDate)
}

func (suite *ChequeServiceTestSuite) TestBounce_TerminalChequeRejected() {
	cheque := suite.chequeInStatus(domain.StatusCleared)

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)

	_, err := suite.service.Bounce(suite.ctx, cheque.ChequeID, dto.BounceChequeRequest{
		BounceReason: "insufficient funds",
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrIllegalTransition)
}

// --- Idempotency ---

func (suite *ChequeServiceTestSuite) TestClear_ReplayedRequestIDAnsweredIdempotently() {
	cheque := suite.chequeInStatus(domain.StatusCleared)
	requestID := uuid.NewString()
	existing := &domain.ChequeTransition{
		ChequeID:  cheque.ChequeID,
		ToStatus:  domain.StatusCleared,
		RequestID: requestID,
	}

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChequeRepo.On("FindTransitionByRequestID", suite.ctx, cheque.ChequeID, requestID).Return(existing, nil)

	updated, err := suite.service.Clear(suite.ctx, cheque.ChequeID, dto.ClearChequeRequest{RequestID: requestID}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusCleared, updated.Status)
	suite.mockChequeRepo.AssertNotCalled(suite.T(), "UpdateChequeStatus")
}

func (suite *ChequeServiceTestSuite) TestClear_RequestIDReusedForDifferentTransition() {
	cheque := suite.chequeInStatus(domain.StatusDeposited)
	requestID := uuid.NewString()
	existing := &domain.ChequeTransition{
		ChequeID:  cheque.ChequeID,
		ToStatus:  domain.StatusBounced,
		RequestID: requestID,
	}

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChequeRepo.On("FindTransitionByRequestID", suite.ctx, cheque.ChequeID, requestID).Return(existing, nil)

	_, err := suite.service.Clear(suite.ctx, cheque.ChequeID, dto.ClearChequeRequest{RequestID: requestID}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

// --- Replace ---

func (suite *ChequeServiceTestSuite) TestReplace_Success() {
	original := suite.chequeInStatus(domain.StatusBounced)

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, original.ChequeID).Return(&original, nil)
	suite.mockChainSvc.On("ValidateLinkTarget", suite.ctx, original.ChequeID).Return(nil)
	suite.mockChequeRepo.On("LinkReplacement", suite.ctx, mock.AnythingOfType("domain.Cheque"), original.Version, mock.AnythingOfType("domain.Cheque"), mock.AnythingOfType("domain.ChequeTransition"), mock.AnythingOfType("domain.ChequeTransition")).Return(nil)

	replacement, err := suite.service.Replace(suite.ctx, original.ChequeID, dto.ReplaceChequeRequest{
		ChequeNumber: "200500",
		BankName:     "Emirates NBD",
		ChequeDate:   time.Now().UTC().AddDate(0, 1, 0),
	}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), original.ChequeID, *replacement.OriginalChequeID)
	// Amount defaults to the original's.
	assert.True(suite.T(), replacement.Amount.Equal(original.Amount))

	linkCall := suite.mockChequeRepo.Calls[len(suite.mockChequeRepo.Calls)-1]
	updatedOriginal := linkCall.Arguments.Get(1).(domain.Cheque)
	assert.Equal(suite.T(), domain.StatusReplaced, updatedOriginal.Status)
	assert.Equal(suite.T(), replacement.ChequeID, *updatedOriginal.ReplacementChequeID)
}

func (suite *ChequeServiceTestSuite) TestReplace_RejectsNonBouncedCheque() {
	original := suite.chequeInStatus(domain.StatusDue)

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, original.ChequeID).Return(&original, nil)

	_, err := suite.service.Replace(suite.ctx, original.ChequeID, dto.ReplaceChequeRequest{
		ChequeNumber: "200500",
		BankName:     "Emirates NBD",
		ChequeDate:   time.Now().UTC().AddDate(0, 1, 0),
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrIllegalTransition)
	suite.mockChequeRepo.AssertNotCalled(suite.T(), "LinkReplacement")
}

func (suite *ChequeServiceTestSuite) TestReplace_RejectsAlreadyReplacedTarget() {
	original := suite.chequeInStatus(domain.StatusBounced)

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, original.ChequeID).Return(&original, nil)
	suite.mockChainSvc.On("ValidateLinkTarget", suite.ctx, original.ChequeID).
		Return(apperrors.NewValidationFieldError("chequeID", "cheque already has a replacement"))

	_, err := suite.service.Replace(suite.ctx, original.ChequeID, dto.ReplaceChequeRequest{
		ChequeNumber: "200500",
		BankName:     "Emirates NBD",
		ChequeDate:   time.Now().UTC().AddDate(0, 1, 0),
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

// --- Withdraw / Cancel ---

func (suite *ChequeServiceTestSuite) TestWithdraw_RequiresReason() {
	_, err := suite.service.Withdraw(suite.ctx, uuid.NewString(), dto.WithdrawChequeRequest{}, suite.userID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *ChequeServiceTestSuite) TestWithdraw_WithoutSettlement() {
	cheque := suite.chequeInStatus(domain.StatusReceived)

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChequeRepo.On("UpdateChequeStatus", suite.ctx, mock.Anything, cheque.Version, mock.Anything).Return(nil)

	updated, err := suite.service.Withdraw(suite.ctx, cheque.ChequeID, dto.WithdrawChequeRequest{
		Reason: "tenant paying by transfer",
	}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusWithdrawn, updated.Status)
	assert.NotNil(suite.T(), updated.WithdrawalDate)
	suite.mockChainSvc.AssertNotCalled(suite.T(), "RecordWithdrawalSettlement")
}

func (suite *ChequeServiceTestSuite) TestWithdraw_WithSettlement() {
	cheque := suite.chequeInStatus(domain.StatusDue)
	method := domain.MethodBankTransfer
	settlement := &domain.WithdrawalSettlement{
		SettlementID: uuid.NewString(),
		Method:       method,
		Status:       domain.SettlementSettled,
	}

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChainSvc.On("EnsureCanOpenSettlement", suite.ctx, cheque.TenantID, method, "TXN-991").Return(nil)
	suite.mockChequeRepo.On("UpdateChequeStatus", suite.ctx, mock.Anything, cheque.Version, mock.Anything).Return(nil)
	suite.mockChainSvc.On("RecordWithdrawalSettlement", suite.ctx, mock.AnythingOfType("domain.Cheque"), method, "TXN-991", suite.userID).Return(settlement, nil)

	updated, err := suite.service.Withdraw(suite.ctx, cheque.ChequeID, dto.WithdrawChequeRequest{
		Reason:       "lease terminated early",
		Method:       &method,
		TxnReference: "TXN-991",
	}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusWithdrawn, updated.Status)
	suite.mockChainSvc.AssertCalled(suite.T(), "RecordWithdrawalSettlement", suite.ctx, mock.Anything, method, "TXN-991", suite.userID)
}

func (suite *ChequeServiceTestSuite) TestWithdraw_InvalidSettlementBlocksTransition() {
	cheque := suite.chequeInStatus(domain.StatusDue)
	method := domain.MethodBankTransfer

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChainSvc.On("EnsureCanOpenSettlement", suite.ctx, cheque.TenantID, method, "").
		Return(apperrors.NewValidationFieldError("txnReference", "required"))

	_, err := suite.service.Withdraw(suite.ctx, cheque.ChequeID, dto.WithdrawChequeRequest{
		Reason: "lease terminated early",
		Method: &method,
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockChequeRepo.AssertNotCalled(suite.T(), "UpdateChequeStatus")
}

func (suite *ChequeServiceTestSuite) TestCancel_OnlyFromReceived() {
	cheque := suite.chequeInStatus(domain.StatusDue)

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)

	_, err := suite.service.Cancel(suite.ctx, cheque.ChequeID, dto.CancelChequeRequest{}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrIllegalTransition)
}

func (suite *ChequeServiceTestSuite) TestCancel_Success() {
	cheque := suite.chequeInStatus(domain.StatusReceived)

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChequeRepo.On("UpdateChequeStatus", suite.ctx, mock.Anything, cheque.Version, mock.Anything).Return(nil)

	updated, err := suite.service.Cancel(suite.ctx, cheque.ChequeID, dto.CancelChequeRequest{Notes: "entry error"}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusCancelled, updated.Status)
}

// --- Due-window sweep ---

func (suite *ChequeServiceTestSuite) TestPromoteDueCheques_PromotesCandidates() {
	asOf := time.Now().UTC()
	first := suite.chequeInStatus(domain.StatusReceived)
	second := suite.chequeInStatus(domain.StatusReceived)

	suite.mockChequeRepo.On("ListSweepCandidates", suite.ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("int")).
		Return([]domain.Cheque{first, second}, nil).Once()
	suite.mockChequeRepo.On("UpdateChequeStatus", suite.ctx, mock.Anything, mock.AnythingOfType("int64"), mock.Anything).Return(nil)

	promoted, err := suite.service.PromoteDueCheques(suite.ctx, asOf)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, promoted)

	// Every sweep transition must carry the deterministic request id and the
	// system actor.
	for _, call := range suite.mockChequeRepo.Calls {
		if call.Method != "UpdateChequeStatus" {
			continue
		}
		transition := call.Arguments.Get(3).(domain.ChequeTransition)
		assert.Equal(suite.T(), "due-sweep:"+transition.ChequeID, transition.RequestID)
		assert.Equal(suite.T(), domain.SweepActorID, transition.CreatedBy)
		assert.Equal(suite.T(), domain.StatusDue, transition.ToStatus)
	}
}

func (suite *ChequeServiceTestSuite) TestPromoteDueCheques_SkipsContendedRows() {
	asOf := time.Now().UTC()
	contended := suite.chequeInStatus(domain.StatusReceived)
	clean := suite.chequeInStatus(domain.StatusReceived)

	suite.mockChequeRepo.On("ListSweepCandidates", suite.ctx, mock.Anything, mock.Anything).
		Return([]domain.Cheque{contended, clean}, nil).Once()
	suite.mockChequeRepo.On("UpdateChequeStatus", suite.ctx, mock.MatchedBy(func(c domain.Cheque) bool {
		return c.ChequeID == contended.ChequeID
	}), mock.Anything, mock.Anything).Return(apperrors.ErrConcurrentModification)
	suite.mockChequeRepo.On("UpdateChequeStatus", suite.ctx, mock.MatchedBy(func(c domain.Cheque) bool {
		return c.ChequeID == clean.ChequeID
	}), mock.Anything, mock.Anything).Return(nil)

	promoted, err := suite.service.PromoteDueCheques(suite.ctx, asOf)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, promoted)
}

func (suite *ChequeServiceTestSuite) TestPromoteDueCheques_EmptyPortfolio() {
	suite.mockChequeRepo.On("ListSweepCandidates", suite.ctx, mock.Anything, mock.Anything).
		Return([]domain.Cheque{}, nil).Once()

	promoted, err := suite.service.PromoteDueCheques(suite.ctx, time.Now().UTC())

	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), promoted)
	suite.mockChequeRepo.AssertNotCalled(suite.T(), "UpdateChequeStatus")
}

// --- Reads ---

func (suite *ChequeServiceTestSuite) TestGetChequeDetail_IncludesChainForLinkedCheque() {
	cheque := suite.chequeInStatus(domain.StatusReplaced)
	replacementID := uuid.NewString()
	cheque.ReplacementChequeID = &replacementID
	history := []domain.ChequeTransition{{ChequeID: cheque.ChequeID, ToStatus: domain.StatusReceived}}
	chain := []domain.Cheque{cheque, {ChequeID: replacementID}}

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChequeRepo.On("FindTransitionsByChequeID", suite.ctx, cheque.ChequeID).Return(history, nil)
	suite.mockChainSvc.On("GetReplacementChain", suite.ctx, cheque.ChequeID).Return(chain, nil)

	detail, err := suite.service.GetChequeDetail(suite.ctx, cheque.ChequeID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), detail.Transitions, 1)
	assert.Len(suite.T(), detail.Chain, 2)
}

func (suite *ChequeServiceTestSuite) TestGetChequeDetail_NoChainForUnlinkedCheque() {
	cheque := suite.chequeInStatus(domain.StatusReceived)
	history := []domain.ChequeTransition{{ChequeID: cheque.ChequeID, ToStatus: domain.StatusReceived}}

	suite.mockChequeRepo.On("FindChequeByID", suite.ctx, cheque.ChequeID).Return(&cheque, nil)
	suite.mockChequeRepo.On("FindTransitionsByChequeID", suite.ctx, cheque.ChequeID).Return(history, nil)

	detail, err := suite.service.GetChequeDetail(suite.ctx, cheque.ChequeID)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), detail.Chain)
	suite.mockChainSvc.AssertNotCalled(suite.T(), "GetReplacementChain")
}

func (suite *ChequeServiceTestSuite) TestListCheques_RejectsUnknownStatusFilter() {
	_, _, err := suite.service.ListCheques(suite.ctx, domain.ChequeFilter{
		Statuses: []domain.ChequeStatus{"SHREDDED"},
	}, 10, nil)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func TestChequeService(t *testing.T) {
	suite.Run(t, new(ChequeServiceTestSuite))
}
