package orders

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadgetline/storebot/models"
)

// --- Fakes ---

type fakeProducts struct {
	products map[uint]*models.Product
}

func (f *fakeProducts) GetByID(id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return p, nil
}

type fakeUsers struct {
	users map[int64]*models.User
}

func (f *fakeUsers) GetOrCreate(userID int64, username, fullName string) (*models.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	u := &models.User{UserID: userID, Username: username, FullName: fullName}
	f.users[userID] = u
	return u, nil
}

type fakeCart struct {
	items []models.CartItem
}

func (f *fakeCart) List(userID int64) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeCart) drain(userID int64) {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	f.items = kept
}

// fakeStore mimics the repository's all-or-nothing contract: CreateFromCart
// either applies the order, its items and the cart drain together, or fails
// having applied nothing. Like the real repository, it hands back items with
// their products resolved.
type fakeStore struct {
	cart       *fakeCart
	products   *fakeProducts
	orders     map[uint]*models.Order
	nextID     uint
	createErr  error
	updateErr  error
	createdSeq []uint
}

func newFakeStore(cart *fakeCart, products *fakeProducts) *fakeStore {
	return &fakeStore{cart: cart, products: products, orders: map[uint]*models.Order{}}
}

func (f *fakeStore) GetByID(id uint) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) CreateFromCart(userID int64, cartItems []models.CartItem) (*models.Order, error) {
	if f.createErr != nil {
		// Simulated crash mid-sequence: nothing may stick.
		return nil, f.createErr
	}
	f.nextID++
	order := &models.Order{
		ID:        f.nextID,
		Reference: "ref",
		UserID:    userID,
		Status:    models.OrderStatusProcessing,
		CreatedAt: time.Now().Add(time.Duration(f.nextID) * time.Second),
	}
	for _, item := range cartItems {
		orderItem := models.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if product, err := f.products.GetByID(item.ProductID); err == nil {
			orderItem.Product = *product
		}
		order.Items = append(order.Items, orderItem)
	}
	f.orders[order.ID] = order
	f.cart.drain(userID)
	f.createdSeq = append(f.createdSeq, order.ID)
	cp := *order
	return &cp, nil
}

func (f *fakeStore) UpdateStatus(id uint, status models.OrderStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	o, ok := f.orders[id]
	if !ok {
		return models.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeStore) SetDeleted(id uint, deleted bool) error {
	o, ok := f.orders[id]
	if !ok {
		return models.ErrOrderNotFound
	}
	o.IsDeleted = deleted
	return nil
}

func (f *fakeStore) PurgeDeleted() (int64, error) {
	var purged int64
	for id, o := range f.orders {
		if o.IsDeleted {
			delete(f.orders, id)
			purged++
		}
	}
	return purged, nil
}

func (f *fakeStore) ListByUser(userID int64, includeDeleted bool) ([]models.Order, error) {
	all, err := f.ListAll(includeDeleted)
	if err != nil {
		return nil, err
	}
	var out []models.Order
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(includeDeleted bool) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if !includeDeleted && o.IsDeleted {
			continue
		}
		out = append(out, *o)
	}
	// newest first
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

type fakeNotifier struct {
	err   error
	calls []models.Order
}

func (f *fakeNotifier) OrderStatusChanged(order *models.Order) error {
	f.calls = append(f.calls, *order)
	return f.err
}

type fixture struct {
	svc      *Service
	store    *fakeStore
	cart     *fakeCart
	products *fakeProducts
	users    *fakeUsers
	notifier *fakeNotifier
}

func newFixture() *fixture {
	products := &fakeProducts{products: map[uint]*models.Product{
		1: {ID: 1, Name: "Pixelphone A1", SKU: "PHN-A1", Price: decimal.NewFromInt(100), InStock: true},
		2: {ID: 2, Name: "Titan G17", SKU: "LPT-G17", Price: decimal.NewFromInt(50), InStock: true},
		3: {ID: 3, Name: "VistaView 55", SKU: "TV-VV55", Price: decimal.NewFromInt(449), InStock: false},
	}}
	users := &fakeUsers{users: map[int64]*models.User{}}
	cart := &fakeCart{}
	store := newFakeStore(cart, products)
	notifier := &fakeNotifier{}
	return &fixture{
		svc:      NewService(store, cart, products, users, notifier, nil),
		store:    store,
		cart:     cart,
		products: products,
		users:    users,
		notifier: notifier,
	}
}

var alice = models.Identity{UserID: 42, Username: "alice", FullName: "Alice A"}

func (f *fixture) fillCart(userID int64, lines ...models.CartItem) {
	f.cart.items = append(f.cart.items, lines...)
}

// --- Place ---

func TestPlaceEmptyCart(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Place(alice)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.store.orders, "no order row may exist after a failed placement")
}

func TestPlaceStockUnavailable(t *testing.T) {
	f := newFixture()
	f.fillCart(42,
		models.CartItem{ID: 1, UserID: 42, ProductID: 1, Quantity: 2},
		models.CartItem{ID: 2, UserID: 42, ProductID: 3, Quantity: 1},
	)

	_, err := f.svc.Place(alice)

	var stockErr *StockUnavailableError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, []string{"VistaView 55"}, stockErr.Products)

	// All-or-nothing pre-check: cart and orders are untouched.
	assert.Len(t, f.cart.items, 2)
	assert.Empty(t, f.store.orders)
}

func TestPlaceDrainsCartAtomically(t *testing.T) {
	f := newFixture()
	f.fillCart(42,
		models.CartItem{ID: 1, UserID: 42, ProductID: 1, Quantity: 2},
		models.CartItem{ID: 2, UserID: 42, ProductID: 2, Quantity: 1},
	)

	order, err := f.svc.Place(alice)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, uint(1), order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "Pixelphone A1", order.Items[0].Product.Name,
		"placement hands back items with their products resolved")
	assert.Equal(t, uint(2), order.Items[1].ProductID)
	assert.Equal(t, 1, order.Items[1].Quantity)

	assert.Empty(t, f.cart.items, "placement must drain the cart")
	assert.Len(t, f.store.orders, 1)
}

func TestPlaceStorageFailureLeavesNoPartialState(t *testing.T) {
	f := newFixture()
	f.fillCart(42, models.CartItem{ID: 1, UserID: 42, ProductID: 1, Quantity: 1})
	f.store.createErr = errors.New("connection lost mid-commit")

	_, err := f.svc.Place(alice)
	require.Error(t, err)

	assert.Len(t, f.cart.items, 1, "cart must survive an aborted placement")
	assert.Empty(t, f.store.orders, "no order may survive an aborted placement")
}

func TestPlaceDoesNotTouchOtherCarts(t *testing.T) {
	f := newFixture()
	f.fillCart(42, models.CartItem{ID: 1, UserID: 42, ProductID: 1, Quantity: 1})
	f.fillCart(7, models.CartItem{ID: 2, UserID: 7, ProductID: 2, Quantity: 3})

	_, err := f.svc.Place(alice)
	require.NoError(t, err)

	require.Len(t, f.cart.items, 1)
	assert.Equal(t, int64(7), f.cart.items[0].UserID)
}

// --- Status machine ---

func TestSetStatusTransitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"processing to ready", models.OrderStatusProcessing, models.OrderStatusReadyForPickup, true},
		{"processing to cancelled", models.OrderStatusProcessing, models.OrderStatusCancelled, true},
		{"ready to completed", models.OrderStatusReadyForPickup, models.OrderStatusCompleted, true},
		{"ready to cancelled", models.OrderStatusReadyForPickup, models.OrderStatusCancelled, true},
		{"processing to completed", models.OrderStatusProcessing, models.OrderStatusCompleted, false},
		{"completed to processing", models.OrderStatusCompleted, models.OrderStatusProcessing, false},
		{"completed to cancelled", models.OrderStatusCompleted, models.OrderStatusCancelled, false},
		{"cancelled to ready", models.OrderStatusCancelled, models.OrderStatusReadyForPickup, false},
		{"ready to processing", models.OrderStatusReadyForPickup, models.OrderStatusProcessing, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.store.orders[1] = &models.Order{ID: 1, UserID: 42, Status: tc.from}

			order, err := f.svc.SetStatus(1, tc.to)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.to, order.Status)
				assert.Equal(t, tc.to, f.store.orders[1].Status)
			} else {
				var transitionErr *InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tc.from, transitionErr.From)
				assert.Equal(t, tc.to, transitionErr.To)
				assert.Equal(t, tc.from, f.store.orders[1].Status, "status must not change on an illegal transition")
			}
		})
	}
}

func TestSetStatusUnknownOrder(t *testing.T) {
	f := newFixture()
	_, err := f.svc.SetStatus(99, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestSetStatusNotifies(t *testing.T) {
	f := newFixture()
	f.store.orders[1] = &models.Order{ID: 1, UserID: 42, Status: models.OrderStatusProcessing}

	_, err := f.svc.SetStatus(1, models.OrderStatusReadyForPickup)
	require.NoError(t, err)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, models.OrderStatusReadyForPickup, f.notifier.calls[0].Status)
}

func TestSetStatusSurvivesNotifierFailure(t *testing.T) {
	f := newFixture()
	f.store.orders[1] = &models.Order{ID: 1, UserID: 42, Status: models.OrderStatusProcessing}
	f.notifier.err = errors.New("chat unreachable")

	order, err := f.svc.SetStatus(1, models.OrderStatusReadyForPickup)
	require.NoError(t, err, "a failed notification must not roll back the status change")
	assert.Equal(t, models.OrderStatusReadyForPickup, order.Status)
	assert.Equal(t, models.OrderStatusReadyForPickup, f.store.orders[1].Status)
}

func TestIllegalTransitionDoesNotNotify(t *testing.T) {
	f := newFixture()
	f.store.orders[1] = &models.Order{ID: 1, UserID: 42, Status: models.OrderStatusCompleted}

	_, err := f.svc.SetStatus(1, models.OrderStatusProcessing)
	require.Error(t, err)
	assert.Empty(t, f.notifier.calls)
}

// --- Soft delete, restore, purge ---

func TestSoftDeleteAndRestoreAreIdempotent(t *testing.T) {
	f := newFixture()
	f.store.orders[1] = &models.Order{ID: 1, UserID: 42, Status: models.OrderStatusCancelled}

	require.NoError(t, f.svc.SoftDelete(1))
	require.NoError(t, f.svc.SoftDelete(1))
	assert.True(t, f.store.orders[1].IsDeleted)
	assert.Equal(t, models.OrderStatusCancelled, f.store.orders[1].Status,
		"soft delete is orthogonal to status")

	require.NoError(t, f.svc.Restore(1))
	require.NoError(t, f.svc.Restore(1))
	assert.False(t, f.store.orders[1].IsDeleted)
}

func TestPurgeDeletedRemovesOnlyMarkedOrders(t *testing.T) {
	f := newFixture()
	f.store.orders[1] = &models.Order{ID: 1, UserID: 42, Status: models.OrderStatusCancelled, IsDeleted: true,
		Items: []models.OrderItem{{OrderID: 1, ProductID: 1, Quantity: 1}}}
	f.store.orders[2] = &models.Order{ID: 2, UserID: 42, Status: models.OrderStatusProcessing,
		Items: []models.OrderItem{{OrderID: 2, ProductID: 2, Quantity: 2}}}
	f.store.orders[3] = &models.Order{ID: 3, UserID: 7, Status: models.OrderStatusCompleted, IsDeleted: true}

	purged, err := f.svc.PurgeDeleted()
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	_, err = f.svc.Get(1)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
	_, err = f.svc.Get(3)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)

	survivor, err := f.svc.Get(2)
	require.NoError(t, err)
	assert.Len(t, survivor.Items, 1, "surviving orders keep their items")
}

// --- Listings ---

func TestListByUserFiltersAndOrders(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.store.orders[1] = &models.Order{ID: 1, UserID: 42, CreatedAt: base}
	f.store.orders[2] = &models.Order{ID: 2, UserID: 42, CreatedAt: base.Add(time.Hour), IsDeleted: true}
	f.store.orders[3] = &models.Order{ID: 3, UserID: 42, CreatedAt: base.Add(2 * time.Hour)}
	f.store.orders[4] = &models.Order{ID: 4, UserID: 7, CreatedAt: base.Add(3 * time.Hour)}

	visible, err := f.svc.ListByUser(42, false)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, uint(3), visible[0].ID, "newest first")
	assert.Equal(t, uint(1), visible[1].ID)

	all, err := f.svc.ListByUser(42, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	everyone, err := f.svc.ListAll(false)
	require.NoError(t, err)
	assert.Len(t, everyone, 3)
}

// --- Totals ---

func TestOrderTotalUsesCurrentPrices(t *testing.T) {
	f := newFixture()
	order := &models.Order{ID: 1, UserID: 42, Items: []models.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}}

	total, err := f.svc.Total(order)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(250)), "got %s", total)

	// Quantities are frozen, prices are not.
	f.products.products[1].Price = decimal.NewFromInt(90)
	total, err = f.svc.Total(order)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(230)), "got %s", total)
}
