package service

import (
	"context"
	"fmt"
	"strconv"

	"palantir/internal/dto"
	apperrors "palantir/internal/errors"
	"palantir/internal/verifier"

	"go.uber.org/zap"
)

// OrderValidator checks a creation request against business rules and the
// external catalogs. It never mutates anything: all failures happen before
// any write.
type OrderValidator struct {
	customers verifier.CustomerVerifier
	products  verifier.ProductVerifier
	logger    *zap.Logger
}

func NewOrderValidator(customers verifier.CustomerVerifier, products verifier.ProductVerifier, logger *zap.Logger) *OrderValidator {
	return &OrderValidator{
		customers: customers,
		products:  products,
		logger:    logger,
	}
}

// Validate runs the shape checks first so malformed requests never reach the
// catalogs, then confirms the customer before any product. Verifier faults
// surface as InternalError, distinct from a confirmed not-found.
func (v *OrderValidator) Validate(ctx context.Context, req dto.CreateOrderRequest) error {
	if err := v.validateShape(req); err != nil {
		return err
	}

	exists, err := v.customers.Exists(ctx, req.CustomerID)
	if err != nil {
		v.logger.Error("customer verifier fault", zap.Int("customerId", req.CustomerID), zap.Error(err))
		return apperrors.NewInternalError("verifying customer", err)
	}
	if !exists {
		return apperrors.NewNotFoundError(apperrors.ResourceCustomer, "customer not found")
	}

	for _, line := range req.Lines {
		exists, err := v.products.Exists(ctx, line.ProductID)
		if err != nil {
			v.logger.Error("product verifier fault", zap.Int("productId", line.ProductID), zap.Error(err))
			return apperrors.NewInternalError("verifying product", err)
		}
		if !exists {
			return apperrors.NewNotFoundError(apperrors.ResourceProduct, fmt.Sprintf("product %d not found", line.ProductID))
		}
	}

	return nil
}

func (v *OrderValidator) validateShape(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.CustomerID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerId",
			Message: "customerId must be a positive integer",
		})
	}

	if len(req.Lines) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for idx, line := range req.Lines {
		if line.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].productId",
				Message: "productId must be a positive integer",
			})
		}

		if line.Quantity <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be greater than zero",
			})
		}

		if line.UnitPrice < 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].unitPrice",
				Message: "unitPrice must be non-negative",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}
