package controllers

import (
	"easy-shop/middleware"
	"easy-shop/models"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to status codes. Unknown errors are 500.
func respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback
	retryable := false

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		message = verr.Message
	case errors.Is(err, models.ErrEmptyCart):
		status = http.StatusBadRequest
		message = "Cart is empty"
	case errors.Is(err, models.ErrProductNotFound):
		status = http.StatusNotFound
		message = "Product not found"
	case errors.Is(err, models.ErrOrderNotFound):
		status = http.StatusNotFound
		message = "Order not found"
	case errors.Is(err, models.ErrCartLineNotFound):
		status = http.StatusNotFound
		message = "Product is not in the cart"
	case errors.Is(err, models.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid email or password"
	case errors.Is(err, models.ErrSessionNotFound):
		status = http.StatusUnauthorized
		message = "Session not found"
	case errors.Is(err, models.ErrEmailTaken):
		status = http.StatusConflict
		message = "Email already registered"
	case errors.Is(err, models.ErrDuplicateOrder):
		status = http.StatusConflict
		message = "Order id already used"
	case errors.Is(err, models.ErrStoreTimeout):
		status = http.StatusGatewayTimeout
		message = "Backend did not respond in time, please retry"
		retryable = true
	case errors.Is(err, models.ErrFeedUnavailable):
		status = http.StatusBadGateway
		message = "Feed provider unavailable"
		retryable = true
	}

	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse{
		Success:   false,
		Message:   message,
		Error:     err.Error(),
		Retryable: retryable,
	})
}

func currentSession(c *gin.Context) (*models.Session, bool) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Message: "Unauthorized",
		})
		return nil, false
	}
	return session, true
}
