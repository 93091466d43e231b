package models

import "io"

type RegisterRequest struct {
	Email           string `json:"email" form:"email" binding:"required,email"`
	Password        string `json:"password" form:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string      `json:"token"`
	Session SessionView `json:"session"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" form:"product_id" binding:"required"`
}

// SetQuantityRequest uses a pointer so that 0 reaches the clamp instead of
// failing the required check.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" form:"quantity" binding:"required"`
}

type CheckoutRequest struct {
	OrderID       string `json:"order_id" form:"order_id"`
	CustomerName  string `json:"customer_name" form:"customer_name"`
	Mobile        string `json:"mobile" form:"mobile"`
	Address       string `json:"address" form:"address"`
	PaymentMethod string `json:"payment_method" form:"payment_method"`
}

// ProductInput carries admin form fields; nil pointers mean "unchanged" on update.
type ProductInput struct {
	Name        *string
	Description *string
	Price       *string
	ImageURL    *string
	Image       *ImageUpload
}

type ImageUpload struct {
	Filename string
	Size     int64
	Body     io.Reader
}
