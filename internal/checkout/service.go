//go:generate mockgen -source ./service.go -destination=./mocks/service.go -package=mock_checkout
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shelfwise/bookstore/internal/auth"
	"github.com/shelfwise/bookstore/internal/db"
	"github.com/shelfwise/bookstore/internal/metrics"
	"github.com/shelfwise/bookstore/internal/repository"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrItemNotFound      = errors.New("item no longer available")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidCartItem   = errors.New("invalid cart item")
	ErrCartItemMissing   = errors.New("item not found in cart")
)

// Catalog is the authoritative book lookup the checkout relies on.
type Catalog interface {
	CartInfo(ctx context.Context, id int64) (*repository.CartBook, error)
	CheckoutInfoTx(ctx context.Context, tx db.Tx, id int64) (*repository.CheckoutBook, error)
	DecrementStockTx(ctx context.Context, tx db.Tx, id int64, quantity int) (bool, error)
}

// StoreRepo persists the per-user cart/order document.
type StoreRepo interface {
	Load(ctx context.Context, ac auth.Context) (Store, error)
	Save(ctx context.Context, ac auth.Context, st Store) error
	SaveTx(ctx context.Context, tx db.Tx, ac auth.Context, st Store) error
}

// Enqueuer hands the committed order to the purchase-alert outbox.
type Enqueuer interface {
	Enqueue(ctx context.Context, order Order, ac auth.Context) (int64, error)
}

type Service struct {
	db       db.DB
	catalog  Catalog
	stores   StoreRepo
	enqueuer Enqueuer
	logger   *zap.Logger
}

func NewService(db db.DB, catalog Catalog, stores StoreRepo, enqueuer Enqueuer, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		catalog:  catalog,
		stores:   stores,
		enqueuer: enqueuer,
		logger:   logger,
	}
}

// Request carries the optional shipping/payment fields from the
// checkout request body.
type Request struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

const (
	MailStatusQueued      = "queued"
	MailStatusQueueFailed = "queue_failed"
)

// Result reports the placed order and, independently, whether the
// purchase alert made it into the outbox.
type Result struct {
	Order      Order  `json:"order"`
	MailStatus string `json:"mail_status"`
}

// Checkout validates the cart against live stock, prices the order from
// authoritative data, and commits the stock decrement, order-history
// update, and cart clear as one unit. The purchase alert is enqueued
// after the commit: its failure never rolls back the order.
func (s *Service) Checkout(ctx context.Context, ac auth.Context, req Request) (*Result, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}

	store, err := s.stores.Load(ctx, ac)
	if err != nil {
		return nil, err
	}
	if len(store.Cart) == 0 {
		metrics.CheckoutFailuresTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	lines := make([]OrderLine, 0, len(store.Cart))
	for _, item := range store.Cart {
		if item.Quantity < 1 {
			metrics.CheckoutFailuresTotal.WithLabelValues("invalid_item").Inc()
			return nil, fmt.Errorf("%w: book %d has quantity %d", ErrInvalidCartItem, item.ID, item.Quantity)
		}

		book, err := s.catalog.CheckoutInfoTx(ctx, tx, item.ID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				metrics.CheckoutFailuresTotal.WithLabelValues("item_not_found").Inc()
				return nil, fmt.Errorf("%w: %q", ErrItemNotFound, item.Title)
			}
			return nil, err
		}
		if item.Quantity > book.Stock {
			metrics.CheckoutFailuresTotal.WithLabelValues("insufficient_stock").Inc()
			return nil, fmt.Errorf("%w: %q has %d left", ErrInsufficientStock, book.Title, book.Stock)
		}

		lines = append(lines, OrderLine{UnitPrice: book.Price, Quantity: item.Quantity})
	}

	totals := ComputeTotals(lines)
	now := time.Now().UTC()
	order := Order{
		ID:              newOrderID(now),
		OrderNumber:     newOrderNumber(now),
		OrderDate:       now.Format(time.RFC3339),
		Status:          "processing",
		Items:           store.Cart,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Shipping:        totals.Shipping,
		Discount:        0,
		Total:           totals.Total,
		ShippingAddress: NormalizeShippingAddress(req.ShippingAddress),
		PaymentMethod:   paymentMethodOrDefault(req.PaymentMethod),
		PaymentStatus:   "paid",
		Timeline: []TimelineEvent{
			{Status: "Order Placed", Date: now.Format(time.RFC3339), Completed: true, Icon: "check"},
		},
	}

	// Conditional decrements guard against checkouts racing between the
	// validation read and here; losing the race aborts the whole order.
	for _, item := range store.Cart {
		ok, err := s.catalog.DecrementStockTx(ctx, tx, item.ID, item.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			metrics.CheckoutFailuresTotal.WithLabelValues("insufficient_stock").Inc()
			return nil, fmt.Errorf("%w: %q was bought out", ErrInsufficientStock, item.Title)
		}
	}

	store.Orders = append([]Order{order}, store.Orders...)
	store.Cart = []CartItem{}
	if err := s.stores.SaveTx(ctx, tx, ac, store); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}
	metrics.CheckoutsCompletedTotal.Inc()

	mailStatus := MailStatusQueued
	if _, err := s.enqueuer.Enqueue(ctx, order, ac); err != nil {
		// The order stands; the alert pipeline is a separate failure
		// domain.
		s.logger.Error("failed to enqueue purchase alert",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
		mailStatus = MailStatusQueueFailed
	}

	return &Result{Order: order, MailStatus: mailStatus}, nil
}

func paymentMethodOrDefault(method string) string {
	if method == "" {
		return "Card"
	}
	return method
}

// Cart returns the current cart for the authenticated user.
func (s *Service) Cart(ctx context.Context, ac auth.Context) ([]CartItem, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}
	store, err := s.stores.Load(ctx, ac)
	if err != nil {
		return nil, err
	}
	return store.Cart, nil
}

// AddToCart snapshots the live book row into a new cart line, or bumps
// the quantity if one already exists.
func (s *Service) AddToCart(ctx context.Context, ac auth.Context, bookID int64, quantity int) ([]CartItem, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		quantity = 1
	}

	store, err := s.stores.Load(ctx, ac)
	if err != nil {
		return nil, err
	}

	book, err := s.catalog.CartInfo(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: book %d", ErrItemNotFound, bookID)
		}
		return nil, err
	}

	found := false
	for i := range store.Cart {
		if store.Cart[i].ID == bookID {
			store.Cart[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		author := "Unknown Author"
		if book.AuthorName != nil && *book.AuthorName != "" {
			author = *book.AuthorName
		}
		store.Cart = append(store.Cart, CartItem{
			ID:       book.ID,
			Title:    book.Title,
			Author:   author,
			Price:    book.Price,
			Stock:    book.Stock,
			Quantity: quantity,
			ImageURL: book.Image,
			AddedAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}

	if err := s.stores.Save(ctx, ac, store); err != nil {
		return nil, err
	}
	return store.Cart, nil
}

// UpdateQuantity sets the quantity of an existing cart line.
func (s *Service) UpdateQuantity(ctx context.Context, ac auth.Context, bookID int64, quantity int) ([]CartItem, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidCartItem)
	}

	store, err := s.stores.Load(ctx, ac)
	if err != nil {
		return nil, err
	}

	updated := false
	for i := range store.Cart {
		if store.Cart[i].ID == bookID {
			store.Cart[i].Quantity = quantity
			updated = true
			break
		}
	}
	if !updated {
		return nil, ErrCartItemMissing
	}

	if err := s.stores.Save(ctx, ac, store); err != nil {
		return nil, err
	}
	return store.Cart, nil
}

// RemoveFromCart drops a cart line; removing an absent line is a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, ac auth.Context, bookID int64) ([]CartItem, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}

	store, err := s.stores.Load(ctx, ac)
	if err != nil {
		return nil, err
	}

	kept := store.Cart[:0]
	for _, item := range store.Cart {
		if item.ID != bookID {
			kept = append(kept, item)
		}
	}
	store.Cart = kept

	if err := s.stores.Save(ctx, ac, store); err != nil {
		return nil, err
	}
	return store.Cart, nil
}

// Orders returns the order history, newest first.
func (s *Service) Orders(ctx context.Context, ac auth.Context) ([]Order, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}
	store, err := s.stores.Load(ctx, ac)
	if err != nil {
		return nil, err
	}
	return store.Orders, nil
}

// OrderByID looks a single order up in the history.
func (s *Service) OrderByID(ctx context.Context, ac auth.Context, orderID string) (*Order, error) {
	if err := ac.Validate(); err != nil {
		return nil, err
	}
	store, err := s.stores.Load(ctx, ac)
	if err != nil {
		return nil, err
	}
	for i := range store.Orders {
		if store.Orders[i].ID == orderID {
			return &store.Orders[i], nil
		}
	}
	return nil, repository.ErrObjectNotFound
}
