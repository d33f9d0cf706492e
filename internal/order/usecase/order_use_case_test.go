package usecase

import (
	"context"
	"testing"
	"time"

	"palantir/internal/domain"
	"palantir/internal/dto"
	apperrors "palantir/internal/errors"
	"palantir/internal/order/service"
	"palantir/internal/verifier"

	"go.uber.org/zap"
)

// Mock repository

type mockOrderRepository struct {
	CreateFunc               func(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByIDFunc             func(ctx context.Context, id uint) (*domain.Order, error)
	UpdateFunc               func(ctx context.Context, order *domain.Order) (*domain.Order, error)
	DeleteFunc               func(ctx context.Context, id uint) error
	FindAllFunc              func(ctx context.Context) ([]domain.Order, error)
	FindByStatusFunc         func(ctx context.Context, stage domain.ProcessStage) ([]domain.Order, error)
	FindByPaymentStatusFunc  func(ctx context.Context, status domain.PaymentStatus) ([]domain.Order, error)
	FindByCreatedBetweenFunc func(ctx context.Context, from, to time.Time) ([]domain.Order, error)
	FindByUpdatedBetweenFunc func(ctx context.Context, from, to time.Time) ([]domain.Order, error)

	createCalls int
	updateCalls int
	deleteCalls int
	findCalls   int
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	m.createCalls++
	return m.CreateFunc(ctx, order)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	m.updateCalls++
	return m.UpdateFunc(ctx, order)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uint) error {
	m.deleteCalls++
	return m.DeleteFunc(ctx, id)
}

func (m *mockOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockOrderRepository) FindByStatus(ctx context.Context, stage domain.ProcessStage) ([]domain.Order, error) {
	m.findCalls++
	return m.FindByStatusFunc(ctx, stage)
}

func (m *mockOrderRepository) FindByPaymentStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Order, error) {
	m.findCalls++
	return m.FindByPaymentStatusFunc(ctx, status)
}

func (m *mockOrderRepository) FindByCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	m.findCalls++
	return m.FindByCreatedBetweenFunc(ctx, from, to)
}

func (m *mockOrderRepository) FindByUpdatedBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	m.findCalls++
	return m.FindByUpdatedBetweenFunc(ctx, from, to)
}

// Helpers

func newTestUseCase(repo *mockOrderRepository, customers, products *verifier.StubVerifier) *OrderUseCase {
	return NewOrderUseCase(
		repo,
		service.NewOrderValidator(customers, products, zap.NewNop()),
		service.NewLifecycleManager(),
		service.NewQueryEngine(),
		zap.NewNop(),
	)
}

func echoCreate() func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	return func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
		persisted := *order
		persisted.ID = 1
		now := time.Now().UTC()
		persisted.CreatedAt = now
		persisted.UpdatedAt = now
		for i := range persisted.Lines {
			persisted.Lines[i].ID = uint(i + 1)
			persisted.Lines[i].OrderID = 1
		}
		return &persisted, nil
	}
}

func strPtr(s string) *string {
	return &s
}

// Tests

func TestCreate_Success(t *testing.T) {
	repo := &mockOrderRepository{CreateFunc: echoCreate()}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	order, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: 1,
		Lines: []dto.OrderLineRequest{
			{ProductID: 1, Quantity: 2, UnitPrice: 50},
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if order.TotalAmount != 100 {
		t.Errorf("expected totalAmount 100, got %v", order.TotalAmount)
	}
	if order.ProcessStage != domain.StageReceived {
		t.Errorf("expected RECEIVED, got %s", order.ProcessStage)
	}
	if order.PaymentStatus != domain.PaymentPending {
		t.Errorf("expected PENDING, got %s", order.PaymentStatus)
	}
	if len(order.Lines) != 1 || order.Lines[0].ProductID != 1 || order.Lines[0].Quantity != 2 {
		t.Errorf("unexpected lines: %+v", order.Lines)
	}
}

func TestCreate_DeclaredTotalIgnored(t *testing.T) {
	repo := &mockOrderRepository{CreateFunc: echoCreate()}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	order, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID:  1,
		TotalAmount: 999999,
		Lines: []dto.OrderLineRequest{
			{ProductID: 1, Quantity: 3, UnitPrice: 10},
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if order.TotalAmount != 30 {
		t.Errorf("computed total is authoritative, expected 30, got %v", order.TotalAmount)
	}
}

func TestCreate_CustomerNotFound(t *testing.T) {
	repo := &mockOrderRepository{CreateFunc: echoCreate()}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(), verifier.NewStubVerifier(1))

	_, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: 1,
		Lines: []dto.OrderLineRequest{
			{ProductID: 1, Quantity: 1, UnitPrice: 10},
		},
	})

	nfe, ok := apperrors.IsNotFoundError(err)
	if !ok || nfe.Resource != apperrors.ResourceCustomer {
		t.Fatalf("expected customer NotFoundError, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Errorf("nothing must be persisted on validation failure, got %d create calls", repo.createCalls)
	}
}

func TestCreate_ProductNotFound(t *testing.T) {
	repo := &mockOrderRepository{CreateFunc: echoCreate()}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	_, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		CustomerID: 1,
		Lines: []dto.OrderLineRequest{
			{ProductID: 1, Quantity: 1, UnitPrice: 10},
			{ProductID: 999, Quantity: 1, UnitPrice: 10},
		},
	})

	nfe, ok := apperrors.IsNotFoundError(err)
	if !ok || nfe.Resource != apperrors.ResourceProduct {
		t.Fatalf("expected product NotFoundError, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Errorf("nothing must be persisted, got %d create calls", repo.createCalls)
	}
}

func TestCreate_EmptyLines(t *testing.T) {
	repo := &mockOrderRepository{CreateFunc: echoCreate()}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	_, err := uc.Create(context.Background(), dto.CreateOrderRequest{CustomerID: 1})

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Errorf("nothing must be persisted, got %d create calls", repo.createCalls)
	}
}

func TestUpdate_Success(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	stored := &domain.Order{
		ID:            1,
		CustomerID:    1,
		ProcessStage:  domain.StageReceived,
		PaymentStatus: domain.PaymentPending,
		TotalAmount:   100,
		CreatedAt:     created,
		UpdatedAt:     created,
	}

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			copy := *stored
			return &copy, nil
		},
		UpdateFunc: func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
			return order, nil
		},
	}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	order, err := uc.Update(context.Background(), 1, dto.UpdateOrderRequest{ProcessStage: strPtr("PREPARING")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if order.ProcessStage != domain.StagePreparing {
		t.Errorf("expected PREPARING, got %s", order.ProcessStage)
	}
	if order.PaymentStatus != domain.PaymentPending {
		t.Errorf("other fields must be unchanged, got %s", order.PaymentStatus)
	}
	if order.TotalAmount != 100 {
		t.Errorf("other fields must be unchanged, got total %v", order.TotalAmount)
	}
	if !order.UpdatedAt.After(created) {
		t.Errorf("updatedAt must advance")
	}
	if repo.updateCalls != 1 {
		t.Errorf("expected one update call, got %d", repo.updateCalls)
	}
}

func TestUpdate_OrderNotFound(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError(apperrors.ResourceOrder, "order not found")
		},
	}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	_, err := uc.Update(context.Background(), 999, dto.UpdateOrderRequest{ProcessStage: strPtr("PREPARING")})

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Errorf("update must not be persisted, got %d calls", repo.updateCalls)
	}
}

func TestUpdate_InvalidStatus(t *testing.T) {
	stored := &domain.Order{ID: 1, ProcessStage: domain.StageReceived, PaymentStatus: domain.PaymentPending}
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			copy := *stored
			return &copy, nil
		},
	}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	_, err := uc.Update(context.Background(), 1, dto.UpdateOrderRequest{ProcessStage: strPtr("SHIPPED")})

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Errorf("stored order must stay unchanged, got %d update calls", repo.updateCalls)
	}
}

func TestDelete_Success(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id}, nil
		},
		DeleteFunc: func(ctx context.Context, id uint) error {
			return nil
		},
	}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	if err := uc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.deleteCalls != 1 {
		t.Errorf("expected one delete call, got %d", repo.deleteCalls)
	}
}

func TestDelete_OrderNotFound(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError(apperrors.ResourceOrder, "order not found")
		},
	}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	err := uc.Delete(context.Background(), 999)

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if repo.deleteCalls != 0 {
		t.Errorf("delete must not run for a missing order, got %d calls", repo.deleteCalls)
	}
}

func TestGetByStatus_InvalidStatus(t *testing.T) {
	repo := &mockOrderRepository{}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	_, err := uc.GetByStatus(context.Background(), "INVALID")

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.findCalls != 0 {
		t.Errorf("repository must not be queried for an invalid filter, got %d calls", repo.findCalls)
	}
}

func TestGetByPaymentStatus_NoMatches(t *testing.T) {
	repo := &mockOrderRepository{
		FindByPaymentStatusFunc: func(ctx context.Context, status domain.PaymentStatus) ([]domain.Order, error) {
			return []domain.Order{}, nil
		},
	}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	orders, err := uc.GetByPaymentStatus(context.Background(), "FAILED")
	if err != nil {
		t.Fatalf("no matches is not an error, got %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Errorf("expected empty slice, got %v", orders)
	}
}

func TestGetByCreationDateRange_InvalidDates(t *testing.T) {
	repo := &mockOrderRepository{}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	_, err := uc.GetByCreationDateRange(context.Background(), "invalid-date", "invalid-date")

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.findCalls != 0 {
		t.Errorf("repository must not be queried, got %d calls", repo.findCalls)
	}
}

func TestGetByUpdateDateRange_PassesParsedBounds(t *testing.T) {
	var gotFrom, gotTo time.Time
	repo := &mockOrderRepository{
		FindByUpdatedBetweenFunc: func(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	_, err := uc.GetByUpdateDateRange(context.Background(), "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotFrom.Day() != 1 || gotTo.Day() != 31 || gotTo.Hour() != 23 {
		t.Errorf("unexpected bounds: %v .. %v", gotFrom, gotTo)
	}
}

func TestGetByID_Idempotent(t *testing.T) {
	stored := domain.Order{ID: 1, CustomerID: 1, ProcessStage: domain.StageReceived, PaymentStatus: domain.PaymentPending, TotalAmount: 100}
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			copy := stored
			return &copy, nil
		},
	}
	uc := newTestUseCase(repo, verifier.NewStubVerifier(1), verifier.NewStubVerifier(1))

	first, err := uc.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := uc.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first.ID != second.ID || first.ProcessStage != second.ProcessStage ||
		first.PaymentStatus != second.PaymentStatus || first.TotalAmount != second.TotalAmount {
		t.Errorf("getById must be idempotent without intervening mutation")
	}
}
