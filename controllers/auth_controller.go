package controllers

import (
	"easy-shop/models"
	"easy-shop/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// @Summary Register new account
// @Description Create an account; the password must be entered twice
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Email, password and confirm_password are required",
			Error:   err.Error(),
		})
		return
	}

	user, err := ctrl.authService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Account created, please sign in",
		Data:    gin.H{"id": user.ID, "email": user.Email},
	})
}

// @Summary Login
// @Description Sign in and open a session. The landing field tells the client where to route.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.Response{data=models.LoginResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Email and password are required",
			Error:   err.Error(),
		})
		return
	}

	resp, err := ctrl.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		Data:    resp,
	})
}

// @Summary Logout
// @Description End the session; its cart is discarded
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	ctrl.authService.SignOut(session)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Logged out",
	})
}

// @Summary Current session
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.SessionView}
// @Router /auth/session [get]
func (ctrl *AuthController) Session(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Session retrieved",
		Data:    session.View(),
	})
}
