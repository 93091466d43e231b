package services

import (
	"context"
	"easy-shop/models"
)

type CartService struct {
	catalog *CatalogService
}

func NewCartService(catalog *CatalogService) *CartService {
	return &CartService{catalog: catalog}
}

func (s *CartService) View(session *models.Session) models.CartView {
	var view models.CartView
	_ = session.WithCart(func(c *models.Cart) error {
		view = c.View()
		return nil
	})
	return view
}

// AddItem looks the product up in the catalog and adds it with quantity 1.
// added is false when the product was already in the cart.
func (s *CartService) AddItem(ctx context.Context, session *models.Session, productID string) (view models.CartView, added bool, err error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return models.CartView{}, false, err
	}

	_ = session.WithCart(func(c *models.Cart) error {
		added = c.AddLine(*product)
		view = c.View()
		return nil
	})
	return view, added, nil
}

func (s *CartService) SetQuantity(session *models.Session, productID string, qty int) (models.CartView, error) {
	var view models.CartView
	err := session.WithCart(func(c *models.Cart) error {
		if _, err := c.SetQuantity(productID, qty); err != nil {
			return err
		}
		view = c.View()
		return nil
	})
	return view, err
}

func (s *CartService) RemoveItem(session *models.Session, productID string) models.CartView {
	var view models.CartView
	_ = session.WithCart(func(c *models.Cart) error {
		c.RemoveLine(productID)
		view = c.View()
		return nil
	})
	return view
}

func (s *CartService) Clear(session *models.Session) {
	_ = session.WithCart(func(c *models.Cart) error {
		c.Clear()
		return nil
	})
}
