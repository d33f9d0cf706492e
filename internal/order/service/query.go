package service

import (
	"time"

	"palantir/internal/domain"
	apperrors "palantir/internal/errors"
)

const dateLayout = "2006-01-02"

// QueryEngine turns external filter parameters into validated query inputs.
// Enum matching is exact and case-sensitive.
type QueryEngine struct{}

func NewQueryEngine() *QueryEngine {
	return &QueryEngine{}
}

func (e *QueryEngine) ParseStatus(status string) (domain.ProcessStage, error) {
	stage := domain.ProcessStage(status)
	if !stage.Valid() {
		return "", apperrors.NewValidationError("Invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of RECEIVED, PREPARING, READY, COMPLETED",
		})
	}
	return stage, nil
}

func (e *QueryEngine) ParsePaymentStatus(status string) (domain.PaymentStatus, error) {
	payment := domain.PaymentStatus(status)
	if !payment.Valid() {
		return "", apperrors.NewValidationError("Invalid payment status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of PENDING, PAID, FAILED",
		})
	}
	return payment, nil
}

// ParseDateRange requires both bounds, each a calendar date. The returned
// range is inclusive on both ends: the end bound covers the whole end day.
func (e *QueryEngine) ParseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("Invalid date range", apperrors.ValidationDetail{
			Field:   "startDate",
			Message: "startDate and endDate are required",
		})
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("Invalid date range", apperrors.ValidationDetail{
			Field:   "startDate",
			Message: "startDate must be a valid date in YYYY-MM-DD format",
		})
	}

	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("Invalid date range", apperrors.ValidationDetail{
			Field:   "endDate",
			Message: "endDate must be a valid date in YYYY-MM-DD format",
		})
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("Invalid date range", apperrors.ValidationDetail{
			Field:   "startDate",
			Message: "startDate must not be after endDate",
		})
	}

	return start, end.Add(24*time.Hour - time.Nanosecond), nil
}
