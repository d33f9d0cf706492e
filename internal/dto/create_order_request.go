package dto

type CreateOrderRequest struct {
	CustomerID  int                `json:"customerId"`
	TotalAmount float64            `json:"totalAmount"`
	Lines       []OrderLineRequest `json:"items"`
}

type OrderLineRequest struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}
