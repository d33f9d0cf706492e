package dto

import (
	"time"

	"palantir/internal/domain"
)

type OrderResponse struct {
	ID            uint                `json:"id"`
	CustomerID    int                 `json:"customerId"`
	ProcessStage  string              `json:"processStage"`
	PaymentStatus string              `json:"paymentStatus"`
	TotalAmount   float64             `json:"totalAmount"`
	Lines         []OrderLineResponse `json:"items"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type OrderLineResponse struct {
	ID        uint    `json:"id"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

func NewOrderResponse(order *domain.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(order.Lines))
	for i, l := range order.Lines {
		lines[i] = OrderLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}

	return OrderResponse{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		ProcessStage:  string(order.ProcessStage),
		PaymentStatus: string(order.PaymentStatus),
		TotalAmount:   order.TotalAmount,
		Lines:         lines,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func NewOrderListResponse(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = NewOrderResponse(&orders[i])
	}
	return responses
}

type ErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
