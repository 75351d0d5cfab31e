package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go-inventory-client/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// memoryProductRepo keeps products in insertion order. Listings return newest
// first, like the postgres repository.
type memoryProductRepo struct {
	mu       sync.RWMutex
	products []model.Product
}

// NewMemoryProductRepo returns a process-local ProductRepository.
func NewMemoryProductRepo() ProductRepository {
	return &memoryProductRepo{}
}

func (r *memoryProductRepo) Create(product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if strings.EqualFold(r.products[i].SKU, product.SKU) {
			return errors.Wrapf(ErrDuplicate, "sku %q", product.SKU)
		}
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products = append(r.products, *product)
	return nil
}

func (r *memoryProductRepo) FindAll() ([]model.Product, error) {
	return r.collect(func(*model.Product) bool { return true }), nil
}

func (r *memoryProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(id); i >= 0 {
		p := r.products[i]
		return &p, nil
	}
	return nil, ErrNotFound
}

func (r *memoryProductRepo) FindBySKU(sku string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.products {
		if strings.EqualFold(r.products[i].SKU, sku) {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryProductRepo) Update(product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(product.ID)
	if i < 0 {
		return ErrNotFound
	}
	for j := range r.products {
		if j != i && strings.EqualFold(r.products[j].SKU, product.SKU) {
			return errors.Wrapf(ErrDuplicate, "sku %q", product.SKU)
		}
	}
	product.CreatedAt = r.products[i].CreatedAt
	product.UpdatedAt = time.Now()
	r.products[i] = *product
	return nil
}

func (r *memoryProductRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return ErrNotFound
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

func (r *memoryProductRepo) Search(keyword string) ([]model.Product, error) {
	return r.collect(func(p *model.Product) bool { return p.MatchesKeyword(keyword) }), nil
}

func (r *memoryProductRepo) FindLowStock() ([]model.Product, error) {
	return r.collect((*model.Product).IsLowStock), nil
}

func (r *memoryProductRepo) FindByCategory(category string) ([]model.Product, error) {
	products := r.collect(func(p *model.Product) bool { return p.Category == category })
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Price.GreaterThan(products[j].Price)
	})
	return products, nil
}

func (r *memoryProductRepo) collect(keep func(*model.Product) bool) []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, 0, len(r.products))
	for i := len(r.products) - 1; i >= 0; i-- {
		if keep(&r.products[i]) {
			out = append(out, r.products[i])
		}
	}
	return out
}

func (r *memoryProductRepo) index(id uuid.UUID) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}

type memoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*model.User
}

// NewMemoryUserRepo returns a process-local UserRepository.
func NewMemoryUserRepo() UserRepository {
	return &memoryUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *memoryUserRepo) FindByEmail(email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			user := *u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := *u
	return &user, nil
}

func (r *memoryUserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Email = strings.ToLower(user.Email)
	for _, u := range r.users {
		if u.Email == user.Email {
			return errors.Wrapf(ErrDuplicate, "email %q", user.Email)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Password = hashedPassword
	u.UpdatedAt = time.Now()
	return nil
}
