package service

import (
	"time"

	"palantir/internal/domain"
	"palantir/internal/dto"
	apperrors "palantir/internal/errors"
)

// LifecycleManager owns the processing-stage and payment-status state
// machines. Stage order is RECEIVED, PREPARING, READY, COMPLETED; skipping
// forward is allowed, values outside the enumeration are not.
type LifecycleManager struct{}

func NewLifecycleManager() *LifecycleManager {
	return &LifecycleManager{}
}

// ApplyUpdate validates every recognized field of the patch before touching
// the order, so an invalid patch is never partially applied. On success it
// merges the fields and stamps UpdatedAt.
func (m *LifecycleManager) ApplyUpdate(order *domain.Order, patch dto.UpdateOrderRequest) error {
	var details []apperrors.ValidationDetail

	var stage domain.ProcessStage
	if patch.ProcessStage != nil {
		stage = domain.ProcessStage(*patch.ProcessStage)
		if !stage.Valid() {
			details = append(details, apperrors.ValidationDetail{
				Field:   "processStage",
				Message: "processStage must be one of RECEIVED, PREPARING, READY, COMPLETED",
			})
		}
	}

	var payment domain.PaymentStatus
	if patch.PaymentStatus != nil {
		payment = domain.PaymentStatus(*patch.PaymentStatus)
		if !payment.Valid() {
			details = append(details, apperrors.ValidationDetail{
				Field:   "paymentStatus",
				Message: "paymentStatus must be one of PENDING, PAID, FAILED",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("Invalid status", details...)
	}

	if patch.ProcessStage != nil {
		order.ProcessStage = stage
	}
	if patch.PaymentStatus != nil {
		order.PaymentStatus = payment
	}
	order.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	return nil
}
