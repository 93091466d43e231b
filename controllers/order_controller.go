package controllers

import (
	"easy-shop/models"
	"easy-shop/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
}

func NewOrderController(checkout *services.CheckoutService, orders *services.OrderService) *OrderController {
	return &OrderController{checkout: checkout, orders: orders}
}

// @Summary Checkout
// @Description Place an order from the session cart. Send the same Idempotency-Key (UUID) when retrying; the first stored order is returned.
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client generated order id (UUID)"
// @Param request body models.CheckoutRequest true "Delivery details"
// @Success 201 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Failure 504 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid checkout request",
			Error:   err.Error(),
		})
		return
	}

	orderID := c.GetHeader("Idempotency-Key")
	if orderID == "" {
		orderID = req.OrderID
	}

	info := models.CustomerInfo{
		Name:          req.CustomerName,
		Mobile:        req.Mobile,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	}

	order, err := ctrl.checkout.PlaceOrder(c.Request.Context(), session, info, orderID)
	if err != nil {
		respondError(c, err, "Failed to place order")
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    order,
	})
}

// @Summary Order history
// @Description Orders placed with the session email, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Order}
// @Router /orders [get]
func (ctrl *OrderController) GetHistory(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	orders, err := ctrl.orders.OrdersForCustomer(c.Request.Context(), session.Email)
	if err != nil {
		respondError(c, err, "Failed to load orders")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
	})
}

// @Summary Order detail
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	order, err := ctrl.orders.GetOrder(c.Request.Context(), session.Email, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load order")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order retrieved",
		Data:    order,
	})
}
