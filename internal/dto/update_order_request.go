package dto

// UpdateOrderRequest is a partial patch: only non-nil fields are applied.
type UpdateOrderRequest struct {
	ProcessStage  *string `json:"processStage,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}
