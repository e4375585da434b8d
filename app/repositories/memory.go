package repositories

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/infocart/app/models"
)

// NewMemoryStore builds an in-process Store with the same observable
// semantics as the Mongo driver: unique usernames, lazy carts, cascade pull
// on product delete. Used by the test suite and by STORAGE-free local runs.
func NewMemoryStore() *Store {
	m := &memoryDB{
		users:    map[primitive.ObjectID]models.User{},
		products: map[primitive.ObjectID]models.Product{},
		carts:    map[primitive.ObjectID]models.Cart{}, // keyed by user id
	}
	return &Store{
		Users:    &memoryUsers{db: m},
		Products: &memoryProducts{db: m},
		Carts:    &memoryCarts{db: m},
		Orders:   &memoryOrders{db: m},
	}
}

type memoryDB struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]models.User
	products map[primitive.ObjectID]models.Product
	carts    map[primitive.ObjectID]models.Cart
	orders   []models.Order
}

// ── Users ─────────────────────────────────────────────────────────────────────

type memoryUsers struct{ db *memoryDB }

func (r *memoryUsers) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == user.Username {
			return ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.db.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := u
	return &out, nil
}

func (r *memoryUsers) UpdatePassword(_ context.Context, username, hash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for id, u := range r.db.users {
		if u.Username == username {
			u.Password = hash
			r.db.users[id] = u
			return nil
		}
	}
	return ErrNotFound
}

// ── Products ──────────────────────────────────────────────────────────────────

type memoryProducts struct{ db *memoryDB }

func (r *memoryProducts) Create(_ context.Context, product *models.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	r.db.products[product.ID] = *product
	return nil
}

func (r *memoryProducts) All(_ context.Context) ([]models.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []models.Product{}
	for _, p := range r.db.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := p
	return &out, nil
}

func (r *memoryProducts) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.Product
	for _, id := range ids {
		if p, ok := r.db.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.products, id)
	return nil
}

// ── Carts ─────────────────────────────────────────────────────────────────────

type memoryCarts struct{ db *memoryDB }

func (r *memoryCarts) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := c
	out.Items = append([]models.CartItem(nil), c.Items...)
	return &out, nil
}

func (r *memoryCarts) Save(_ context.Context, cart *models.Cart) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	saved := *cart
	saved.Items = append([]models.CartItem(nil), cart.Items...)
	r.db.carts[cart.UserID] = saved
	return nil
}

func (r *memoryCarts) PullProduct(_ context.Context, productID primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for userID, cart := range r.db.carts {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
		r.db.carts[userID] = cart
	}
	return nil
}

func (r *memoryCarts) ClearItems(_ context.Context, userID primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cart, ok := r.db.carts[userID]
	if !ok {
		return nil
	}
	cart.Items = []models.CartItem{}
	r.db.carts[userID] = cart
	return nil
}

// ── Orders ────────────────────────────────────────────────────────────────────

type memoryOrders struct{ db *memoryDB }

func (r *memoryOrders) Create(_ context.Context, order *models.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	saved := *order
	saved.Items = append([]models.OrderItem(nil), order.Items...)
	r.db.orders = append(r.db.orders, saved)
	return nil
}

func (r *memoryOrders) AllByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []models.Order{}
	for _, o := range r.db.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
