package services

import (
	"context"
	"easy-shop/models"
	"easy-shop/repositories"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type fakeProductStore struct {
	mu        sync.Mutex
	products  map[string]models.Product
	listCalls int
	err       error
}

func newFakeProductStore(products ...models.Product) *fakeProductStore {
	s := &fakeProductStore{products: make(map[string]models.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	s.products[p.ID] = *p
	return nil
}

func (s *fakeProductStore) GetByID(_ context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &p, nil
}

func (s *fakeProductStore) List(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeProductStore) Update(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.products[p.ID]; !ok {
		return models.ErrProductNotFound
	}
	s.products[p.ID] = *p
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.products[id]; !ok {
		return models.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

// gatedProductStore reads the products, then holds the result until release
// is closed. listed fires once the read has happened.
type gatedProductStore struct {
	*fakeProductStore
	listed  chan struct{}
	release chan struct{}
}

func newGatedProductStore(store *fakeProductStore) *gatedProductStore {
	return &gatedProductStore{
		fakeProductStore: store,
		listed:           make(chan struct{}, 1),
		release:          make(chan struct{}),
	}
}

func (s *gatedProductStore) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.fakeProductStore.List(ctx)
	select {
	case s.listed <- struct{}{}:
	default:
	}
	<-s.release
	return products, err
}

// fakeOrderStore keeps orders in insertion order and refuses duplicate ids
// the way the unique primary key does.
type fakeOrderStore struct {
	mu        sync.Mutex
	orders    []models.Order
	createErr error
	getErr    error
	creates   int
}

func (s *fakeOrderStore) Create(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.createErr != nil {
		return s.createErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, existing := range s.orders {
		if existing.ID == o.ID {
			return models.ErrDuplicateOrder
		}
	}
	o.CreatedAt = time.Now()
	stored := *o
	stored.Lines = append([]models.OrderLine(nil), o.Lines...)
	s.orders = append(s.orders, stored)
	return nil
}

func (s *fakeOrderStore) GetByID(_ context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, o := range s.orders {
		if o.ID == id {
			o := o
			return &o, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

func (s *fakeOrderStore) ListByEmail(_ context.Context, email string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].Email == email {
			out = append(out, s.orders[i])
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ListAll(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func (s *fakeOrderStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.orders {
		if o.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return models.ErrOrderNotFound
}

// blockingOrderStore never answers until the context expires.
type blockingOrderStore struct {
	fakeOrderStore
}

func (s *blockingOrderStore) Create(ctx context.Context, _ *models.Order) error {
	<-ctx.Done()
	return ctx.Err()
}

// lostReplyOrderStore commits the first order it is given and then reports a
// timeout, as when the reply from the database never arrives.
type lostReplyOrderStore struct {
	fakeOrderStore
	lost bool
}

func (s *lostReplyOrderStore) Create(ctx context.Context, o *models.Order) error {
	if err := s.fakeOrderStore.Create(ctx, o); err != nil {
		return err
	}
	if !s.lost {
		s.lost = true
		return context.DeadlineExceeded
	}
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (s *fakeUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return models.ErrEmailTaken
	}
	u.ID = uuid.NewString()
	s.users[u.Email] = *u
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &u, nil
}

type fakeImageStore struct {
	mu        sync.Mutex
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (s *fakeImageStore) Upload(_ context.Context, body io.Reader, filename string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", "", s.uploadErr
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", "", err
	}
	publicID := fmt.Sprintf("img-%d-%s", len(s.uploaded)+1, filename)
	s.uploaded = append(s.uploaded, publicID)
	return "https://cdn.example.com/" + publicID, publicID, nil
}

func (s *fakeImageStore) Delete(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, publicID)
	return s.deleteErr
}

func (s *fakeImageStore) deletedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

type fakeProductCache struct {
	mu          sync.Mutex
	products    []models.Product
	cached      bool
	sets        int
	invalidated int
}

func (c *fakeProductCache) GetList(_ context.Context) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cached {
		return nil, repositories.ErrCacheMiss
	}
	return c.products, nil
}

func (c *fakeProductCache) SetList(_ context.Context, products []models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.cached = true
	c.sets++
	return nil
}

func (c *fakeProductCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = false
	c.products = nil
	c.invalidated++
	return nil
}

func (c *fakeProductCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

type fakeNotifier struct {
	sent chan models.Order
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan models.Order, 4)}
}

func (n *fakeNotifier) SendOrderConfirmation(o *models.Order) error {
	n.sent <- *o
	return nil
}
