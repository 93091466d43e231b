package controllers

import (
	"easy-shop/models"
	"easy-shop/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	admin *services.AdminService
}

func NewAdminController(admin *services.AdminService) *AdminController {
	return &AdminController{admin: admin}
}

// @Summary List products
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Product}
// @Router /admin/products [get]
func (ctrl *AdminController) ListProducts(c *gin.Context) {
	products, err := ctrl.admin.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load products")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
	})
}

// @Summary Create product
// @Description Create a product (Admin). An image upload or image_url is required.
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Product name"
// @Param description formData string false "Product description"
// @Param price formData string true "Product price"
// @Param image_url formData string false "Image URL"
// @Param image formData file false "Product image"
// @Success 201 {object} models.Response{data=models.Product}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *AdminController) CreateProduct(c *gin.Context) {
	input, cleanup, err := productInputFromForm(c)
	if err != nil {
		respondError(c, err, "Invalid product form")
		return
	}
	defer cleanup()

	product, err := ctrl.admin.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// @Summary Update product
// @Description Update product (Admin). Omitted fields keep their value.
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param name formData string false "Product name"
// @Param description formData string false "Product description"
// @Param price formData string false "Product price"
// @Param image_url formData string false "Image URL"
// @Param image formData file false "Product image"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *AdminController) UpdateProduct(c *gin.Context) {
	input, cleanup, err := productInputFromForm(c)
	if err != nil {
		respondError(c, err, "Invalid product form")
		return
	}
	defer cleanup()

	product, err := ctrl.admin.UpdateProduct(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// @Summary Delete product
// @Description Delete product permanently (Admin). Image removal is best effort.
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [delete]
func (ctrl *AdminController) DeleteProduct(c *gin.Context) {
	if err := ctrl.admin.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product deleted permanently",
	})
}

// @Summary List all orders
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Order}
// @Router /admin/orders [get]
func (ctrl *AdminController) ListOrders(c *gin.Context) {
	orders, err := ctrl.admin.ListOrders(c.Request.Context())
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

// @Summary Delete order
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id} [delete]
func (ctrl *AdminController) DeleteOrder(c *gin.Context) {
	if err := ctrl.admin.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order deleted",
	})
}

// productInputFromForm reads the admin multipart form. Fields that are not
// present stay nil. The returned cleanup closes the uploaded file.
func productInputFromForm(c *gin.Context) (models.ProductInput, func(), error) {
	var input models.ProductInput
	cleanup := func() {}

	if v, ok := c.GetPostForm("name"); ok {
		input.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		input.Price = &v
	}
	if v, ok := c.GetPostForm("image_url"); ok {
		input.ImageURL = &v
	}

	file, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return input, cleanup, nil
		}
		return input, cleanup, &models.ValidationError{Field: "image", Message: "Could not read uploaded image"}
	}

	f, err := file.Open()
	if err != nil {
		return input, cleanup, &models.ValidationError{Field: "image", Message: "Could not read uploaded image"}
	}

	input.Image = &models.ImageUpload{
		Filename: file.Filename,
		Size:     file.Size,
		Body:     f,
	}
	return input, func() { f.Close() }, nil
}
