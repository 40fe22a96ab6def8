package orders

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gadgetline/storebot/models"
)

// ErrEmptyCart is returned when an order is placed over an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// StockUnavailableError reports the cart lines whose products cannot be
// purchased right now. Placement aborts without touching cart or orders.
type StockUnavailableError struct {
	Products []string
}

func (e *StockUnavailableError) Error() string {
	return fmt.Sprintf("products unavailable: %s", strings.Join(e.Products, ", "))
}

// InvalidTransitionError reports an illegal status change.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order transition %s -> %s", e.From, e.To)
}

type Store interface {
	GetByID(id uint) (*models.Order, error)
	CreateFromCart(userID int64, cartItems []models.CartItem) (*models.Order, error)
	UpdateStatus(id uint, status models.OrderStatus) error
	SetDeleted(id uint, deleted bool) error
	PurgeDeleted() (int64, error)
	ListByUser(userID int64, includeDeleted bool) ([]models.Order, error)
	ListAll(includeDeleted bool) ([]models.Order, error)
}

type CartProvider interface {
	List(userID int64) ([]models.CartItem, error)
}

type ProductProvider interface {
	GetByID(id uint) (*models.Product, error)
}

type UserProvider interface {
	GetOrCreate(userID int64, username, fullName string) (*models.User, error)
}

// Notifier delivers order status updates to the customer. Delivery is
// best-effort: a failed notification never affects the status change.
type Notifier interface {
	OrderStatusChanged(order *models.Order) error
}

// Service implements the order lifecycle: atomic cart drain into a new
// order, a strict status state machine, soft delete with restore, and
// history purge.
type Service struct {
	store    Store
	cart     CartProvider
	products ProductProvider
	users    UserProvider
	notifier Notifier
	log      *slog.Logger
}

func NewService(store Store, cart CartProvider, products ProductProvider, users UserProvider, notifier Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:    store,
		cart:     cart,
		products: products,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// Place converts the identity's cart into a PROCESSING order. Every cart
// line is stock-checked up front; if any product is unavailable the whole
// placement aborts with StockUnavailableError and nothing is mutated. The
// order row, its items and the cart deletions land in one commit.
func (s *Service) Place(identity models.Identity) (*models.Order, error) {
	user, err := s.users.GetOrCreate(identity.UserID, identity.Username, identity.FullName)
	if err != nil {
		return nil, err
	}

	cartItems, err := s.cart.List(user.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var unavailable []string
	for _, item := range cartItems {
		product, err := s.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.InStock {
			unavailable = append(unavailable, product.Name)
		}
	}
	if len(unavailable) > 0 {
		return nil, &StockUnavailableError{Products: unavailable}
	}

	return s.store.CreateFromCart(user.UserID, cartItems)
}

// SetStatus moves the order along the state machine:
// PROCESSING → READY_FOR_PICKUP → COMPLETED, with CANCELLED reachable from
// any non-terminal status. Illegal moves fail with InvalidTransitionError.
func (s *Service) SetStatus(orderID uint, next models.OrderStatus) (*models.Order, error) {
	order, err := s.store.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(next) {
		return nil, &InvalidTransitionError{From: order.Status, To: next}
	}
	if err := s.store.UpdateStatus(orderID, next); err != nil {
		return nil, err
	}
	order.Status = next

	if s.notifier != nil {
		if err := s.notifier.OrderStatusChanged(order); err != nil {
			s.log.Warn("order status notification failed",
				"order_id", order.ID, "status", string(next), "error", err)
		}
	}
	return order, nil
}

// SoftDelete hides the order without destroying it. Idempotent.
func (s *Service) SoftDelete(orderID uint) error {
	return s.store.SetDeleted(orderID, true)
}

// Restore brings a soft-deleted order back. Idempotent.
func (s *Service) Restore(orderID uint) error {
	return s.store.SetDeleted(orderID, false)
}

// PurgeDeleted irreversibly removes every soft-deleted order together with
// its items. Returns the number of orders purged.
func (s *Service) PurgeDeleted() (int64, error) {
	return s.store.PurgeDeleted()
}

func (s *Service) Get(orderID uint) (*models.Order, error) {
	return s.store.GetByID(orderID)
}

// ListByUser returns the user's orders, newest first. Soft-deleted orders
// are excluded unless includeDeleted is set.
func (s *Service) ListByUser(userID int64, includeDeleted bool) ([]models.Order, error) {
	return s.store.ListByUser(userID, includeDeleted)
}

// ListAll is the admin-scope listing across all users.
func (s *Service) ListAll(includeDeleted bool) ([]models.Order, error) {
	return s.store.ListAll(includeDeleted)
}

// Total computes the order value from current product prices; quantities are
// frozen at placement but prices deliberately are not.
func (s *Service) Total(order *models.Order) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range order.Items {
		product, err := s.products.GetByID(item.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}
