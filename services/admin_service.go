package services

import (
	"context"
	"easy-shop/models"
	"easy-shop/utils"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AdminService backs the admin console. Product writes invalidate the
// catalog cache.
type AdminService struct {
	products      ProductStore
	orders        OrderStore
	images        ImageStore
	catalog       *CatalogService
	maxUploadSize int64
	timeout       time.Duration
	logger        *zap.Logger
}

func NewAdminService(products ProductStore, orders OrderStore, images ImageStore, catalog *CatalogService, maxUploadSize int64, timeout time.Duration, logger *zap.Logger) *AdminService {
	return &AdminService{
		products:      products,
		orders:        orders,
		images:        images,
		catalog:       catalog,
		maxUploadSize: maxUploadSize,
		timeout:       timeout,
		logger:        logger,
	}
}

func (s *AdminService) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, storeErr("list products", err)
	}
	return products, nil
}

// CreateProduct requires a name, a positive price and an image, given either
// as an upload or as a URL.
func (s *AdminService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if input.Image == nil && product.Image == "" {
		return nil, &models.ValidationError{Field: "image", Message: "Product image is required"}
	}
	if input.Image != nil {
		if err := utils.ValidateImage(input.Image.Filename, input.Image.Size, s.maxUploadSize); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if input.Image != nil {
		url, publicID, err := s.uploadImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		product.Image = url
		product.ImagePublicID = publicID
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.discardImage(product.ImagePublicID)
		return nil, storeErr("create product", err)
	}

	s.catalog.Invalidate()
	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// UpdateProduct applies the non-nil fields of input. A new image is uploaded
// before the record is written; the replaced image is removed only once the
// record update went through.
func (s *AdminService) UpdateProduct(ctx context.Context, id string, input models.ProductInput) (*models.Product, error) {
	if input.Image != nil {
		if err := utils.ValidateImage(input.Image.Filename, input.Image.Size, s.maxUploadSize); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get product", err)
	}
	oldPublicID := product.ImagePublicID
	oldImage := product.Image

	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if input.Image != nil {
		url, publicID, err := s.uploadImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		product.Image = url
		product.ImagePublicID = publicID
	} else if product.Image != oldImage {
		// A plain URL replaces an uploaded image.
		product.ImagePublicID = ""
	}

	if err := s.products.Update(ctx, product); err != nil {
		if product.ImagePublicID != oldPublicID {
			s.discardImage(product.ImagePublicID)
		}
		return nil, storeErr("update product", err)
	}

	if oldPublicID != "" && product.ImagePublicID != oldPublicID {
		s.discardImage(oldPublicID)
	}

	s.catalog.Invalidate()
	s.logger.Info("product updated", zap.String("product_id", product.ID))
	return product, nil
}

// DeleteProduct removes the record first. The image is removed afterwards on
// a best-effort basis; its failure is logged and does not undo the deletion.
func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return storeErr("get product", err)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return storeErr("delete product", err)
	}

	s.catalog.Invalidate()
	s.discardImage(product.ImagePublicID)
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

func (s *AdminService) ListOrders(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	return orders, nil
}

func (s *AdminService) DeleteOrder(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.orders.Delete(ctx, id); err != nil {
		return storeErr("delete order", err)
	}
	s.logger.Info("order deleted", zap.String("order_id", id))
	return nil
}

func (s *AdminService) uploadImage(ctx context.Context, img *models.ImageUpload) (string, string, error) {
	if s.images == nil {
		return "", "", &models.ValidationError{Field: "image", Message: "Image upload is not available, provide an image URL"}
	}
	url, publicID, err := s.images.Upload(ctx, img.Body, img.Filename)
	if err != nil {
		return "", "", storeErr("upload image", err)
	}
	return url, publicID, nil
}

func (s *AdminService) discardImage(publicID string) {
	if publicID == "" || s.images == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.images.Delete(ctx, publicID); err != nil {
		s.logger.Warn("image cleanup failed", zap.String("public_id", publicID), zap.Error(err))
	}
}

func applyProductInput(product *models.Product, input models.ProductInput) error {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*input.Price))
		if err != nil {
			return &models.ValidationError{Field: "price", Message: "Price must be a number"}
		}
		product.Price = price
	}
	if input.ImageURL != nil {
		product.Image = strings.TrimSpace(*input.ImageURL)
	}
	return nil
}
