package api

import "shv-inventory/internal/service"

// swagger:model api.CheckoutLine
type CheckoutLine struct {
	ID       int `json:"id" validate:"required,min=1,max=2147483647" example:"1"`
	Quantity int `json:"quantity" validate:"required,min=1,max=2147483647" example:"2"`
}

// swagger:model api.CheckoutRequest
type CheckoutRequest struct {
	Items []CheckoutLine `json:"items" validate:"required,dive"`
}

// swagger:model api.CheckoutResponse
type CheckoutResponse struct {
	Message string                   `json:"message" example:"Checkout successful"`
	Results []service.CheckoutResult `json:"results"`
}
