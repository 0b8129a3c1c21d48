package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"dlt-orchestrator/config"
	"dlt-orchestrator/internal/adapter/http/middleware"
	"dlt-orchestrator/internal/adapter/storage/memory"
	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/internal/core/ports/mocks"
	"dlt-orchestrator/internal/service"
	"dlt-orchestrator/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	testEnterprise = uuid.New()
	testEmployee   = &domain.User{ID: uuid.New(), AccountID: "0.0.1001", Role: domain.RoleEmployee, EnterpriseID: testEnterprise}
	testShop       = &domain.User{ID: uuid.New(), AccountID: "0.0.3003", Role: domain.RoleShop, EnterpriseID: testEnterprise}
	testDecider    = &domain.User{ID: uuid.New(), AccountID: "0.0.4004", Role: domain.RoleDecider, EnterpriseID: testEnterprise}
	testAdmin      = &domain.User{ID: uuid.New(), AccountID: "0.0.9009", Role: domain.RoleAdmin, EnterpriseID: testEnterprise}
)

// newContext builds a test context with an optional JSON body, session user and :id.
func newContext(method, path string, body interface{}, user *domain.User, id string) (*gin.Context, *httptest.ResponseRecorder) {
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	if user != nil {
		c.Set(middleware.CtxUser, user)
	}
	if id != "" {
		c.Params = gin.Params{{Key: "id", Value: id}}
	}
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	code, _ := decode(t, w)["error_code"].(string)
	return code
}

func testAdvance(owner *domain.User) *domain.WageAdvanceRequest {
	return &domain.WageAdvanceRequest{
		ID:              uuid.New(),
		EmployeeID:      owner.ID,
		EnterpriseID:    owner.EnterpriseID,
		RequestedAmount: 5000,
		Status:          domain.WageAdvancePending,
	}
}

func testOperation(signer string) *domain.Operation {
	return &domain.Operation{
		ID:              uuid.New(),
		Type:            domain.OperationPaymentTransfer,
		Status:          domain.OperationPendingSignature,
		SignerAccountID: signer,
	}
}

// ==================== Wage advances ====================

func TestWageAdvance_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWageAdvanceService(ctrl)
	h := NewWageAdvanceHandler(svc, mocks.NewMockHistoryService(ctrl))

	advance := testAdvance(testEmployee)
	svc.EXPECT().CreateRequest(gomock.Any(), testEmployee.ID, int64(5000)).Return(advance, nil)

	c, w := newContext(http.MethodPost, "/api/v1/wage-advances", map[string]int64{"amount": 5000}, testEmployee, "")
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, advance.ID.String(), data["id"])
}

func TestWageAdvance_Create_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWageAdvanceHandler(mocks.NewMockWageAdvanceService(ctrl), mocks.NewMockHistoryService(ctrl))

	c, w := newContext(http.MethodPost, "/api/v1/wage-advances", map[string]int64{"amount": 0}, testEmployee, "")
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWageAdvance_Create_LimitExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWageAdvanceService(ctrl)
	h := NewWageAdvanceHandler(svc, mocks.NewMockHistoryService(ctrl))

	svc.EXPECT().CreateRequest(gomock.Any(), testEmployee.ID, int64(999999)).Return(nil, apperror.ErrLimitExceeded())

	c, w := newContext(http.MethodPost, "/api/v1/wage-advances", map[string]int64{"amount": 999999}, testEmployee, "")
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_LIMIT_EXCEEDED", errorCode(t, w))
}

func TestWageAdvance_Get_OtherEmployeeForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWageAdvanceService(ctrl)
	h := NewWageAdvanceHandler(svc, mocks.NewMockHistoryService(ctrl))

	other := &domain.User{ID: uuid.New(), AccountID: "0.0.1002", Role: domain.RoleEmployee, EnterpriseID: testEnterprise}
	advance := testAdvance(testEmployee)
	svc.EXPECT().Get(gomock.Any(), advance.ID).Return(advance, nil)

	c, w := newContext(http.MethodGet, "/", nil, other, advance.ID.String())
	h.Get(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "AUTH_005", errorCode(t, w))
}

func TestWageAdvance_Get_DeciderOfEnterprise(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWageAdvanceService(ctrl)
	h := NewWageAdvanceHandler(svc, mocks.NewMockHistoryService(ctrl))

	advance := testAdvance(testEmployee)
	svc.EXPECT().Get(gomock.Any(), advance.ID).Return(advance, nil)

	c, w := newContext(http.MethodGet, "/", nil, testDecider, advance.ID.String())
	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWageAdvance_Get_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWageAdvanceHandler(mocks.NewMockWageAdvanceService(ctrl), mocks.NewMockHistoryService(ctrl))

	c, w := newContext(http.MethodGet, "/", nil, testEmployee, "not-a-uuid")
	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWageAdvance_Association(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWageAdvanceService(ctrl)
	h := NewWageAdvanceHandler(svc, mocks.NewMockHistoryService(ctrl))

	advance := testAdvance(testEmployee)
	svc.EXPECT().Get(gomock.Any(), advance.ID).Return(advance, nil)
	svc.EXPECT().GetAssociationRequirement(gomock.Any(), advance.ID, "0.0.1001").Return(&ports.StepResult{
		Parent:  advance,
		Payload: &domain.UnsignedPayload{Required: false, IntentType: domain.IntentAssociateToken},
	}, nil)

	c, w := newContext(http.MethodPost, "/", map[string]string{"account_id": "0.0.1001"}, testEmployee, advance.ID.String())
	h.Association(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWageAdvance_Association_ForeignAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWageAdvanceService(ctrl)
	h := NewWageAdvanceHandler(svc, mocks.NewMockHistoryService(ctrl))

	advance := testAdvance(testEmployee)
	svc.EXPECT().Get(gomock.Any(), advance.ID).Return(advance, nil)

	c, w := newContext(http.MethodPost, "/", map[string]string{"account_id": "0.0.7777"}, testEmployee, advance.ID.String())
	h.Association(c)

	assert.Equal(t, "VAL_004", errorCode(t, w))
}

func TestWageAdvance_Association_MalformedAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWageAdvanceService(ctrl)
	h := NewWageAdvanceHandler(svc, mocks.NewMockHistoryService(ctrl))

	advance := testAdvance(testEmployee)
	svc.EXPECT().Get(gomock.Any(), advance.ID).Return(advance, nil)

	c, w := newContext(http.MethodPost, "/", map[string]string{"account_id": "alice"}, testEmployee, advance.ID.String())
	h.Association(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWageAdvance_Schedule_Outstanding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWageAdvanceService(ctrl)
	h := NewWageAdvanceHandler(svc, mocks.NewMockHistoryService(ctrl))

	advance := testAdvance(testEmployee)
	svc.EXPECT().Get(gomock.Any(), advance.ID).Return(advance, nil)
	svc.EXPECT().CreateSchedule(gomock.Any(), advance.ID).Return(nil, apperror.ErrOutstandingOperation())

	c, w := newContext(http.MethodPost, "/", nil, testEmployee, advance.ID.String())
	h.Schedule(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT_001", errorCode(t, w))
}

func TestWageAdvance_CastApproval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWageAdvanceService(ctrl)
	h := NewWageAdvanceHandler(svc, mocks.NewMockHistoryService(ctrl))

	advance := testAdvance(testEmployee)
	svc.EXPECT().CastApproval(gomock.Any(), advance.ID, testDecider.ID, false, "budget").Return(advance, nil)

	body := map[string]interface{}{"approve": false, "reason": " budget "}
	c, w := newContext(http.MethodPost, "/", body, testDecider, advance.ID.String())
	h.CastApproval(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWageAdvance_CastApproval_MissingVote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWageAdvanceHandler(mocks.NewMockWageAdvanceService(ctrl), mocks.NewMockHistoryService(ctrl))

	c, w := newContext(http.MethodPost, "/", map[string]string{"reason": "x"}, testDecider, uuid.New().String())
	h.CastApproval(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWageAdvance_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	history := mocks.NewMockHistoryService(ctrl)
	h := NewWageAdvanceHandler(mocks.NewMockWageAdvanceService(ctrl), history)

	history.EXPECT().GetHistory(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.HistoryListParams) ([]domain.HistoryEntry, int64, error) {
			assert.Equal(t, testEnterprise, p.EnterpriseID)
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 10, p.PageSize)
			require.NotNil(t, p.Status)
			assert.Equal(t, domain.WageAdvanceCompleted, *p.Status)
			return []domain.HistoryEntry{}, 25, nil
		},
	)

	c, w := newContext(http.MethodGet, "/?page=2&page_size=10&status=completed", nil, testDecider, testEnterprise.String())
	h.History(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(25), data["total"])
	assert.Equal(t, float64(3), data["total_pages"])
}

func TestWageAdvance_History_BadPaging(t *testing.T) {
	for _, query := range []string{"/?page=abc", "/?page=1&page_size=ten"} {
		t.Run(query, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h := NewWageAdvanceHandler(mocks.NewMockWageAdvanceService(ctrl), mocks.NewMockHistoryService(ctrl))

			c, w := newContext(http.MethodGet, query, nil, testDecider, testEnterprise.String())
			h.History(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VAL_001", errorCode(t, w))
		})
	}
}

func TestWageAdvance_History_OtherEnterprise(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWageAdvanceHandler(mocks.NewMockWageAdvanceService(ctrl), mocks.NewMockHistoryService(ctrl))

	c, w := newContext(http.MethodGet, "/", nil, testDecider, uuid.New().String())
	h.History(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ==================== Payments ====================

func testPaymentRequest() *domain.PaymentRequest {
	return &domain.PaymentRequest{
		ID:            uuid.New(),
		ShopID:        testShop.ID,
		EnterpriseID:  testEnterprise,
		ShopAccountID: testShop.AccountID,
		TokenID:       "0.0.5005",
		Amount:        250,
		Status:        domain.PaymentRequestPending,
	}
}

func TestPayment_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	pr := testPaymentRequest()
	svc.EXPECT().CreatePaymentRequest(gomock.Any(), testShop.ID, int64(250), "coffee").Return(pr, nil)

	body := map[string]interface{}{"amount": 250, "memo": "coffee"}
	c, w := newContext(http.MethodPost, "/", body, testShop, "")
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPayment_Create_MemoWithControlCharacters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPaymentHandler(mocks.NewMockPaymentService(ctrl))

	body := map[string]interface{}{"amount": 250, "memo": "bell\x07"}
	c, w := newContext(http.MethodPost, "/", body, testShop, "")
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayment_AcceptToken_OtherShopForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	pr := testPaymentRequest()
	svc.EXPECT().Get(gomock.Any(), pr.ID).Return(pr, nil)

	otherShop := &domain.User{ID: uuid.New(), AccountID: "0.0.3004", Role: domain.RoleShop, EnterpriseID: testEnterprise}
	c, w := newContext(http.MethodPost, "/", nil, otherShop, pr.ID.String())
	h.AcceptToken(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPayment_Pay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	pr := testPaymentRequest()
	op := testOperation(testEmployee.AccountID)
	svc.EXPECT().Get(gomock.Any(), pr.ID).Return(pr, nil)
	svc.EXPECT().PreparePayment(gomock.Any(), pr.ID, testEmployee.ID).Return(&ports.StepResult{
		Parent:    pr,
		Operation: op,
		Payload:   &domain.UnsignedPayload{Required: true, IntentType: domain.IntentPaymentTransfer},
	}, nil)

	c, w := newContext(http.MethodPost, "/", nil, testEmployee, pr.ID.String())
	h.Pay(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, op.ID.String(), data["operation"].(map[string]interface{})["id"])
}

func TestPayment_Pay_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	pr := testPaymentRequest()
	svc.EXPECT().Get(gomock.Any(), pr.ID).Return(pr, nil)
	svc.EXPECT().PreparePayment(gomock.Any(), pr.ID, testEmployee.ID).Return(nil, apperror.ErrExpired("payment request"))

	c, w := newContext(http.MethodPost, "/", nil, testEmployee, pr.ID.String())
	h.Pay(c)

	assert.Equal(t, "EXPIRED_001", errorCode(t, w))
}

func TestPayment_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	id := uuid.New()
	svc.EXPECT().Get(gomock.Any(), id).Return(nil, apperror.ErrNotFound("payment request"))

	c, w := newContext(http.MethodGet, "/", nil, testEmployee, id.String())
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ==================== Swaps ====================

func TestSwap_Prepare(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockSwapService(ctrl)
	h := NewSwapHandler(svc)

	intent := &domain.SwapIntent{ID: uuid.New(), UserID: testShop.ID, EnterpriseID: testEnterprise, Status: domain.SwapIntentPending}
	svc.EXPECT().Get(gomock.Any(), intent.ID).Return(intent, nil)
	svc.EXPECT().PrepareSwap(gomock.Any(), intent.ID).Return(&ports.StepResult{Parent: intent}, nil)

	c, w := newContext(http.MethodPost, "/", nil, testShop, intent.ID.String())
	h.Prepare(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSwap_Get_NotOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockSwapService(ctrl)
	h := NewSwapHandler(svc)

	intent := &domain.SwapIntent{ID: uuid.New(), UserID: testShop.ID, EnterpriseID: testEnterprise}
	svc.EXPECT().Get(gomock.Any(), intent.ID).Return(intent, nil)

	c, w := newContext(http.MethodGet, "/", nil, testEmployee, intent.ID.String())
	h.Get(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ==================== Operations ====================

type operationTestDeps struct {
	ctrl       *gomock.Controller
	ledger     *mocks.MockLedgerService
	reconciler *mocks.MockReconcilerService
	relay      *mocks.MockRelayService
	h          *OperationHandler
}

func setupOperationHandler(t *testing.T, signer ports.Signer) *operationTestDeps {
	ctrl := gomock.NewController(t)
	d := &operationTestDeps{
		ctrl:       ctrl,
		ledger:     mocks.NewMockLedgerService(ctrl),
		reconciler: mocks.NewMockReconcilerService(ctrl),
		relay:      mocks.NewMockRelayService(ctrl),
	}
	d.h = NewOperationHandler(d.ledger, d.reconciler, d.relay, signer, 30*time.Minute)
	return d
}

func TestOperation_Get_WithAuditTrail(t *testing.T) {
	d := setupOperationHandler(t, nil)
	defer d.ctrl.Finish()

	op := testOperation(testEmployee.AccountID)
	d.ledger.EXPECT().GetOperation(gomock.Any(), op.ID).Return(op, nil)
	d.ledger.EXPECT().AuditTrail(gomock.Any(), op.ID).Return([]*domain.OperationAudit{{OperationID: op.ID}}, nil)

	c, w := newContext(http.MethodGet, "/", nil, testEmployee, op.ID.String())
	d.h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["audit"], 1)
}

func TestOperation_ReportOutcome(t *testing.T) {
	d := setupOperationHandler(t, nil)
	defer d.ctrl.Finish()

	op := testOperation(testEmployee.AccountID)
	txID := "0.0.1001@1700000000.000000001"
	d.ledger.EXPECT().GetOperation(gomock.Any(), op.ID).Return(op, nil)
	d.reconciler.EXPECT().ReportOutcome(gomock.Any(), op.ID, domain.Outcome{TransactionID: txID},
		"employee:"+testEmployee.ID.String()).Return(op, nil)

	c, w := newContext(http.MethodPost, "/", map[string]string{"transaction_id": txID}, testEmployee, op.ID.String())
	d.h.ReportOutcome(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOperation_ReportOutcome_NotSigner(t *testing.T) {
	d := setupOperationHandler(t, nil)
	defer d.ctrl.Finish()

	op := testOperation(testShop.AccountID)
	d.ledger.EXPECT().GetOperation(gomock.Any(), op.ID).Return(op, nil)

	c, w := newContext(http.MethodPost, "/", map[string]bool{"cancelled": true}, testEmployee, op.ID.String())
	d.h.ReportOutcome(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOperation_ReportOutcome_MalformedTransactionID(t *testing.T) {
	d := setupOperationHandler(t, nil)
	defer d.ctrl.Finish()

	op := testOperation(testEmployee.AccountID)
	d.ledger.EXPECT().GetOperation(gomock.Any(), op.ID).Return(op, nil)

	c, w := newContext(http.MethodPost, "/", map[string]string{"transaction_id": "nope"}, testEmployee, op.ID.String())
	d.h.ReportOutcome(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOperation_Relay_NoSigner(t *testing.T) {
	d := setupOperationHandler(t, nil)
	defer d.ctrl.Finish()

	op := testOperation(testEmployee.AccountID)
	d.ledger.EXPECT().GetOperation(gomock.Any(), op.ID).Return(op, nil)
	d.relay.EXPECT().Relay(gomock.Any(), nil, op.ID).Return(nil, apperror.ErrSignerDisabled())

	c, w := newContext(http.MethodPost, "/", nil, testEmployee, op.ID.String())
	d.h.Relay(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "SYS_004", errorCode(t, w))
}

func TestOperation_Relay_PassesSigner(t *testing.T) {
	ctrl := gomock.NewController(t)
	signer := mocks.NewMockSigner(ctrl)
	d := setupOperationHandler(t, signer)
	defer d.ctrl.Finish()

	op := testOperation(testEmployee.AccountID)
	d.ledger.EXPECT().GetOperation(gomock.Any(), op.ID).Return(op, nil)
	d.relay.EXPECT().Relay(gomock.Any(), signer, op.ID).Return(op, nil)

	c, w := newContext(http.MethodPost, "/", nil, testAdmin, op.ID.String())
	d.h.Relay(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOperation_ForceComplete(t *testing.T) {
	d := setupOperationHandler(t, nil)
	defer d.ctrl.Finish()

	op := testOperation(testEmployee.AccountID)
	d.reconciler.EXPECT().ForceComplete(gomock.Any(), op.ID, "hashscan 0.0.1001@1", "admin:"+testAdmin.ID.String()).Return(op, nil)

	c, w := newContext(http.MethodPost, "/", map[string]string{"evidence": "hashscan 0.0.1001@1"}, testAdmin, op.ID.String())
	d.h.ForceComplete(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOperation_ForceComplete_MissingEvidence(t *testing.T) {
	d := setupOperationHandler(t, nil)
	defer d.ctrl.Finish()

	c, w := newContext(http.MethodPost, "/", map[string]string{}, testAdmin, uuid.New().String())
	d.h.ForceComplete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOperation_Stale(t *testing.T) {
	d := setupOperationHandler(t, nil)
	defer d.ctrl.Finish()

	d.ledger.EXPECT().ListStale(gomock.Any(), 30*time.Minute, 0).Return(nil, nil)

	c, w := newContext(http.MethodGet, "/", nil, testAdmin, "")
	d.h.Stale(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "30m0s", data["older_than"])
	assert.Empty(t, data["items"])
}

func TestOperation_Stale_QueryOverrides(t *testing.T) {
	d := setupOperationHandler(t, nil)
	defer d.ctrl.Finish()

	d.ledger.EXPECT().ListStale(gomock.Any(), 2*time.Hour, 5).Return([]*domain.Operation{testOperation("0.0.1001")}, nil)

	c, w := newContext(http.MethodGet, "/?older_than=2h&limit=5", nil, testAdmin, "")
	d.h.Stale(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOperation_Stale_BadLimit(t *testing.T) {
	d := setupOperationHandler(t, nil)
	defer d.ctrl.Finish()

	c, w := newContext(http.MethodGet, "/?limit=many", nil, testAdmin, "")
	d.h.Stale(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", errorCode(t, w))
}

func TestOperation_Stale_BadDuration(t *testing.T) {
	d := setupOperationHandler(t, nil)
	defer d.ctrl.Finish()

	c, w := newContext(http.MethodGet, "/?older_than=soon", nil, testAdmin, "")
	d.h.Stale(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ==================== Watcher ====================

func TestWatcher_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reconciler := mocks.NewMockReconcilerService(ctrl)
	h := NewWatcherHandler(reconciler, mocks.NewMockWageAdvanceService(ctrl))

	id := uuid.New()
	reconciler.EXPECT().Confirm(gomock.Any(), id, false, "INSUFFICIENT_TOKEN_BALANCE").Return(testOperation("0.0.1001"), nil)

	body := map[string]interface{}{"success": false, "reason": "INSUFFICIENT_TOKEN_BALANCE"}
	c, w := newContext(http.MethodPost, "/", body, nil, id.String())
	h.Confirm(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWatcher_ScheduleExecuted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	advances := mocks.NewMockWageAdvanceService(ctrl)
	h := NewWatcherHandler(mocks.NewMockReconcilerService(ctrl), advances)

	advances.EXPECT().ScheduleExecuted(gomock.Any(), "0.0.8080", true).Return(testAdvance(testEmployee), nil)

	c, w := newContext(http.MethodPost, "/", map[string]bool{"success": true}, nil, "0.0.8080")
	h.ScheduleExecuted(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// ==================== Router ====================

type routerTestDeps struct {
	ctrl       *gomock.Controller
	tokens     *mocks.MockTokenService
	identities *mocks.MockIdentityLookup
	reconciler *mocks.MockReconcilerService
	advances   *mocks.MockWageAdvanceService
	router     *gin.Engine
}

const (
	testWatcherKey    = "wk_test"
	testWatcherSecret = "ws_test_secret"
)

func setupRouter(t *testing.T) *routerTestDeps {
	ctrl := gomock.NewController(t)
	d := &routerTestDeps{
		ctrl:       ctrl,
		tokens:     mocks.NewMockTokenService(ctrl),
		identities: mocks.NewMockIdentityLookup(ctrl),
		reconciler: mocks.NewMockReconcilerService(ctrl),
		advances:   mocks.NewMockWageAdvanceService(ctrl),
	}
	d.router = SetupRouter(RouterDeps{
		WageAdvanceSvc: d.advances,
		PaymentSvc:     mocks.NewMockPaymentService(ctrl),
		SwapSvc:        mocks.NewMockSwapService(ctrl),
		HistorySvc:     mocks.NewMockHistoryService(ctrl),
		Ledger:         mocks.NewMockLedgerService(ctrl),
		Reconciler:     d.reconciler,
		Relay:          mocks.NewMockRelayService(ctrl),
		Identities:     d.identities,
		TokenSvc:       d.tokens,
		SigSvc:         service.NewHMACSignatureService(),
		NonceStore:     memory.NewNonceStore(),
		Watcher: config.WatcherConfig{
			AccessKey: testWatcherKey,
			Secret:    testWatcherSecret,
			NonceTTL:  5 * time.Minute,
			MaxDrift:  5 * time.Minute,
		},
		StaleAfter: 30 * time.Minute,
		Logger:     zerolog.Nop(),
	})
	return d
}

func (d *routerTestDeps) signIn(user *domain.User) {
	d.tokens.EXPECT().Validate("tok").Return(&ports.TokenClaims{UserID: user.ID, AccountID: user.AccountID}, nil)
	d.identities.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)
}

func signedWatcherRequest(method, path string, body []byte, nonce string) *http.Request {
	sig := service.NewHMACSignatureService()
	ts := time.Now().Unix()
	canonical := sig.BuildCanonicalString(method, path, ts, nonce, string(body))
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderAccessKey, testWatcherKey)
	req.Header.Set(middleware.HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(middleware.HeaderNonce, nonce)
	req.Header.Set(middleware.HeaderSignature, sig.Sign(testWatcherSecret, canonical))
	return req
}

func TestRouter_RequiresSession(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/wage-advances/"+uuid.New().String(), nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RoleGate(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	d.signIn(testShop)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wage-advances", bytes.NewReader([]byte(`{"amount":10}`)))
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_AdminOnly(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	d.signIn(testEmployee)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/operations/stale", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_WatcherConfirm(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	id := uuid.New()
	d.reconciler.EXPECT().Confirm(gomock.Any(), id, true, "").Return(testOperation("0.0.1001"), nil)

	path := "/api/v1/watcher/operations/" + id.String() + "/confirm"
	body := []byte(`{"success":true}`)

	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, signedWatcherRequest(http.MethodPost, path, body, "n-1"))
	assert.Equal(t, http.StatusOK, w.Code)

	// The same nonce cannot be replayed.
	w = httptest.NewRecorder()
	d.router.ServeHTTP(w, signedWatcherRequest(http.MethodPost, path, body, "n-1"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "SEC_004", errorCode(t, w))
}

func TestRouter_WatcherBadSignature(t *testing.T) {
	d := setupRouter(t)
	defer d.ctrl.Finish()

	path := "/api/v1/watcher/schedules/0.0.8080/executed"
	req := signedWatcherRequest(http.MethodPost, path, []byte(`{"success":true}`), "n-2")
	req.Header.Set(middleware.HeaderSignature, "deadbeef")

	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "SEC_002", errorCode(t, w))
}

// ==================== Health & docs ====================

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := mocks.NewMockHealthChecker(ctrl)
	db.EXPECT().Name().Return("postgresql").AnyTimes()
	db.EXPECT().Ping(gomock.Any()).Return(nil)
	cache := mocks.NewMockHealthChecker(ctrl)
	cache.EXPECT().Name().Return("redis").AnyTimes()
	cache.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	c, w := newContext(http.MethodGet, "/health", nil, nil, "")
	HealthCheck(db, cache)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Equal(t, "healthy", deps["postgresql"].(map[string]interface{})["status"])
}

func TestHealthCheck_NoDependencies(t *testing.T) {
	c, w := newContext(http.MethodGet, "/health", nil, nil, "")
	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSwaggerUI(t *testing.T) {
	c, w := newContext(http.MethodGet, "/swagger", nil, nil, "")
	SwaggerUI(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")
}

func TestSwaggerSpec(t *testing.T) {
	require.NoError(t, SetSwaggerSpec(nil))
	c, w := newContext(http.MethodGet, "/swagger/spec", nil, nil, "")
	SwaggerSpec(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, SetSwaggerSpec([]byte("openapi: 3.0.3\ninfo:\n  title: DLT\n")))
	defer func() { _ = SetSwaggerSpec(nil) }()

	c, w = newContext(http.MethodGet, "/swagger/spec", nil, nil, "")
	SwaggerSpec(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")

	c, w = newContext(http.MethodGet, "/swagger/spec?format=json", nil, nil, "")
	SwaggerSpec(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"openapi":"3.0.3","info":{"title":"DLT"}}`, w.Body.String())
}

func TestSetSwaggerSpec_Invalid(t *testing.T) {
	assert.Error(t, SetSwaggerSpec([]byte("info: {title: x}\n")))
	assert.Error(t, SetSwaggerSpec([]byte("openapi: [unclosed\n")))
}
