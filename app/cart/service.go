package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/gadgetline/storebot/models"
)

// ErrOutOfStock is returned when a product cannot be added because it is
// currently not purchasable. The cart is left untouched.
var ErrOutOfStock = errors.New("product is out of stock")

type ProductProvider interface {
	GetByID(id uint) (*models.Product, error)
}

type UserProvider interface {
	GetOrCreate(userID int64, username, fullName string) (*models.User, error)
}

type Store interface {
	Get(userID int64, productID uint) (*models.CartItem, error)
	List(userID int64) ([]models.CartItem, error)
	Save(item *models.CartItem) error
	Delete(item *models.CartItem) error
}

// Service implements the cart engine: one line per (user, product), quantity
// at least 1, removal on exhaustion.
type Service struct {
	store    Store
	products ProductProvider
	users    UserProvider
}

func NewService(store Store, products ProductProvider, users UserProvider) *Service {
	return &Service{
		store:    store,
		products: products,
		users:    users,
	}
}

// Add puts one unit of the product into the identity's cart. The user record
// is provisioned on first touch. Adding a product already in the cart bumps
// its quantity instead of creating a second line.
func (s *Service) Add(identity models.Identity, productID uint) (*models.CartItem, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, ErrOutOfStock
	}

	user, err := s.users.GetOrCreate(identity.UserID, identity.Username, identity.FullName)
	if err != nil {
		return nil, err
	}

	item, err := s.store.Get(user.UserID, productID)
	switch {
	case err == nil:
		item.Quantity++
	case errors.Is(err, models.ErrCartItemNotFound):
		item = &models.CartItem{
			UserID:    user.UserID,
			ProductID: productID,
			Quantity:  1,
		}
	default:
		return nil, err
	}

	if err := s.store.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Increment bumps an existing cart line by one.
func (s *Service) Increment(userID int64, productID uint) (*models.CartItem, error) {
	item, err := s.store.Get(userID, productID)
	if err != nil {
		return nil, err
	}
	item.Quantity++
	if err := s.store.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Decrement lowers an existing cart line by one. At quantity 1 the line is
// deleted and a nil item is returned; quantities never reach zero.
func (s *Service) Decrement(userID int64, productID uint) (*models.CartItem, error) {
	item, err := s.store.Get(userID, productID)
	if err != nil {
		return nil, err
	}
	if item.Quantity <= 1 {
		if err := s.store.Delete(item); err != nil {
			return nil, err
		}
		return nil, nil
	}
	item.Quantity--
	if err := s.store.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove drops a cart line regardless of quantity.
func (s *Service) Remove(userID int64, productID uint) error {
	item, err := s.store.Get(userID, productID)
	if err != nil {
		return err
	}
	return s.store.Delete(item)
}

// List returns the cart in insertion order.
func (s *Service) List(userID int64) ([]models.CartItem, error) {
	return s.store.List(userID)
}

// Total recomputes the cart value from current product prices on every call.
// A price change between two reads changes the total.
func (s *Service) Total(userID int64) (decimal.Decimal, error) {
	items, err := s.store.List(userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		product, err := s.products.GetByID(item.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		line := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total, nil
}
