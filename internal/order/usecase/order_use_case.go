package usecase

import (
	"context"
	"time"

	"palantir/internal/domain"
	"palantir/internal/dto"

	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByStatus(ctx context.Context, stage domain.ProcessStage) ([]domain.Order, error)
	FindByPaymentStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Order, error)
	FindByCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error)
	FindByUpdatedBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error)
}

type Validator interface {
	Validate(ctx context.Context, req dto.CreateOrderRequest) error
}

type Lifecycle interface {
	ApplyUpdate(order *domain.Order, patch dto.UpdateOrderRequest) error
}

type QueryEngine interface {
	ParseStatus(status string) (domain.ProcessStage, error)
	ParsePaymentStatus(status string) (domain.PaymentStatus, error)
	ParseDateRange(startDate, endDate string) (time.Time, time.Time, error)
}

type OrderUseCase struct {
	repo      OrderRepository
	validator Validator
	lifecycle Lifecycle
	queries   QueryEngine
	logger    *zap.Logger
}

func NewOrderUseCase(
	repo OrderRepository,
	validator Validator,
	lifecycle Lifecycle,
	queries QueryEngine,
	logger *zap.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		repo:      repo,
		validator: validator,
		lifecycle: lifecycle,
		queries:   queries,
		logger:    logger,
	}
}

// Create validates the request, then persists the order with its lines
// atomically. The total is computed from the lines; any client-declared
// total is ignored. Nothing is written when validation fails.
func (uc *OrderUseCase) Create(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	uc.logger.Info("creating order", zap.Int("customerId", req.CustomerID), zap.Int("lineCount", len(req.Lines)))

	if err := uc.validator.Validate(ctx, req); err != nil {
		uc.logger.Warn("order validation failed", zap.Int("customerId", req.CustomerID), zap.Error(err))
		return nil, err
	}

	lines := make([]domain.OrderLine, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = domain.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	order := &domain.Order{
		CustomerID:    req.CustomerID,
		ProcessStage:  domain.StageReceived,
		PaymentStatus: domain.PaymentPending,
		TotalAmount:   domain.LinesTotal(lines),
		Lines:         lines,
	}

	persisted, err := uc.repo.Create(ctx, order)
	if err != nil {
		uc.logger.Error("persisting order failed", zap.Int("customerId", req.CustomerID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("order created", zap.Uint("orderId", persisted.ID), zap.Float64("totalAmount", persisted.TotalAmount))
	return persisted, nil
}

// Update loads the order, lets the lifecycle manager validate and merge the
// patch, then persists. A missing order never reaches the lifecycle manager.
func (uc *OrderUseCase) Update(ctx context.Context, id uint, patch dto.UpdateOrderRequest) (*domain.Order, error) {
	order, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.lifecycle.ApplyUpdate(order, patch); err != nil {
		uc.logger.Warn("order update rejected", zap.Uint("orderId", id), zap.Error(err))
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, order)
	if err != nil {
		uc.logger.Error("persisting order update failed", zap.Uint("orderId", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("order updated", zap.Uint("orderId", id),
		zap.String("processStage", string(updated.ProcessStage)),
		zap.String("paymentStatus", string(updated.PaymentStatus)))
	return updated, nil
}

func (uc *OrderUseCase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("deleting order failed", zap.Uint("orderId", id), zap.Error(err))
		return err
	}

	uc.logger.Info("order deleted", zap.Uint("orderId", id))
	return nil
}

func (uc *OrderUseCase) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *OrderUseCase) GetAll(ctx context.Context) ([]domain.Order, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *OrderUseCase) GetByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	stage, err := uc.queries.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByStatus(ctx, stage)
}

func (uc *OrderUseCase) GetByPaymentStatus(ctx context.Context, status string) ([]domain.Order, error) {
	payment, err := uc.queries.ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByPaymentStatus(ctx, payment)
}

func (uc *OrderUseCase) GetByCreationDateRange(ctx context.Context, startDate, endDate string) ([]domain.Order, error) {
	from, to, err := uc.queries.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByCreatedBetween(ctx, from, to)
}

func (uc *OrderUseCase) GetByUpdateDateRange(ctx context.Context, startDate, endDate string) ([]domain.Order, error) {
	from, to, err := uc.queries.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByUpdatedBetween(ctx, from, to)
}
