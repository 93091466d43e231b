package services

import (
	"context"
	"easy-shop/models"
	"errors"
	"fmt"
	"io"
)

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type ImageStore interface {
	Upload(ctx context.Context, body io.Reader, filename string) (url string, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}

type ProductCache interface {
	GetList(ctx context.Context) ([]models.Product, error)
	SetList(ctx context.Context, products []models.Product) error
	Invalidate(ctx context.Context) error
}

type OrderNotifier interface {
	SendOrderConfirmation(order *models.Order) error
}

// storeErr turns an expired deadline into the retryable ErrStoreTimeout and
// wraps everything else with op.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, models.ErrStoreTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}
