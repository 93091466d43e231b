package services

import (
	"context"
	"easy-shop/models"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutService struct {
	orders   OrderStore
	notifier OrderNotifier
	timeout  time.Duration
	logger   *zap.Logger
}

// NewCheckoutService wires the order store. notifier may be nil, in which
// case no confirmation email is sent.
func NewCheckoutService(orders OrderStore, notifier OrderNotifier, timeout time.Duration, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		notifier: notifier,
		timeout:  timeout,
		logger:   logger,
	}
}

// PlaceOrder turns the session's cart into a stored order.
//
// The cart is locked for the whole call. It is cleared only after the store
// accepted the order; on any failure it is left exactly as it was. A
// non-empty orderID makes the call idempotent: repeating it with the same
// cart returns the order already stored under that id.
func (s *CheckoutService) PlaceOrder(ctx context.Context, session *models.Session, info models.CustomerInfo, orderID string) (*models.Order, error) {
	info.Normalize()
	if err := info.Validate(); err != nil {
		return nil, err
	}

	orderID = strings.TrimSpace(orderID)
	keyed := orderID != ""
	if !keyed {
		orderID = uuid.NewString()
	} else if _, err := uuid.Parse(orderID); err != nil {
		return nil, &models.ValidationError{Field: "order_id", Message: "Order id must be a UUID"}
	}

	var (
		order    *models.Order
		replayed bool
	)
	err := session.WithCart(func(c *models.Cart) error {
		if c.IsEmpty() {
			// A retried request whose first attempt already went through
			// finds the cart cleared.
			if keyed {
				existing, err := s.replay(ctx, session, orderID)
				if err != nil {
					return err
				}
				if existing != nil {
					order = existing
					replayed = true
					return nil
				}
			}
			return models.ErrEmptyCart
		}

		lines := c.Snapshot()
		candidate := &models.Order{
			ID:            orderID,
			CustomerName:  info.Name,
			Mobile:        info.Mobile,
			Address:       info.Address,
			Email:         session.Email,
			PaymentMethod: info.PaymentMethod,
			Lines:         lines,
			TotalPrice:    models.LinesTotal(lines),
		}

		storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		err := s.orders.Create(storeCtx, candidate)
		switch {
		case err == nil:
			order = candidate
		case errors.Is(err, models.ErrDuplicateOrder):
			existing, getErr := s.orders.GetByID(storeCtx, orderID)
			if getErr != nil {
				return storeErr("load existing order", getErr)
			}
			// Only a retry of the very same checkout is replayed. A key reused
			// for a different cart is a conflict and the cart stays as it is.
			if existing.Email != session.Email || !models.SameLines(existing.Lines, lines) {
				return models.ErrDuplicateOrder
			}
			s.logger.Info("duplicate checkout replayed", zap.String("order_id", orderID))
			c.Clear()
			order = existing
			replayed = true
			return nil
		default:
			return storeErr("place order", err)
		}

		c.Clear()
		return nil
	})
	if err != nil {
		if !errors.Is(err, models.ErrEmptyCart) {
			s.logger.Error("checkout failed",
				zap.String("session_id", session.ID),
				zap.String("order_id", orderID),
				zap.Error(err),
			)
		}
		return nil, err
	}
	if replayed {
		return order, nil
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("email", order.Email),
		zap.String("total", order.TotalPrice.StringFixed(2)),
	)

	if s.notifier != nil {
		go s.notify(*order)
	}

	return order, nil
}

func (s *CheckoutService) notify(order models.Order) {
	if err := s.notifier.SendOrderConfirmation(&order); err != nil {
		s.logger.Warn("order confirmation email failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}
}

// replay looks up the order a keyed retry refers to. It returns nil without
// error when there is nothing of this customer's to replay.
func (s *CheckoutService) replay(ctx context.Context, session *models.Session, orderID string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	existing, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, models.ErrOrderNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("load existing order", err)
	}
	if existing.Email != session.Email {
		return nil, nil
	}
	return existing, nil
}
