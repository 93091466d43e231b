package controllers

import (
	"easy-shop/models"
	"easy-shop/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// @Summary Get cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    ctrl.cartService.View(session),
	})
}

// @Summary Add product to cart
// @Description Adds the product with quantity 1. Adding a product already in the cart changes nothing.
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Product to add"
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "product_id is required",
			Error:   err.Error(),
		})
		return
	}

	view, added, err := ctrl.cartService.AddItem(c.Request.Context(), session, req.ProductID)
	if err != nil {
		respondError(c, err, "Failed to add product to cart")
		return
	}

	message := "Product added to cart"
	if !added {
		message = "Product is already in the cart"
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    view,
	})
}

// @Summary Set line quantity
// @Description Quantities outside 1..99 are clamped into range.
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product_id path string true "Product ID"
// @Param request body models.SetQuantityRequest true "New quantity"
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{product_id} [patch]
func (ctrl *CartController) SetQuantity(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req models.SetQuantityRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "quantity is required",
			Error:   err.Error(),
		})
		return
	}

	view, err := ctrl.cartService.SetQuantity(session, c.Param("product_id"), *req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update quantity")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Quantity updated",
		Data:    view,
	})
}

// @Summary Remove product from cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param product_id path string true "Product ID"
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /cart/items/{product_id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product removed from cart",
		Data:    ctrl.cartService.RemoveItem(session, c.Param("product_id")),
	})
}

// @Summary Clear cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	ctrl.cartService.Clear(session)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart cleared",
	})
}
