package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Persistence сериализует корзину на границе хранилища.
// Load возвращает nil, nil, если корзины нет.
type Persistence interface {
	Load(ctx context.Context, ownerID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, ownerID string) error
}

type Store struct {
	persist Persistence
	now     func() time.Time
}

func NewStore(p Persistence) *Store {
	return &Store{persist: p, now: time.Now}
}

func (s *Store) Get(ctx context.Context, ownerID string) (*Cart, error) {
	c, err := s.persist.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return New(ownerID), nil
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	c.OwnerID = ownerID
	return c, nil
}

// Update загружает корзину, применяет fn и сохраняет результат.
// Если fn вернула ошибку, ничего не сохраняется.
func (s *Store) Update(ctx context.Context, ownerID string, fn func(c *Cart) error) (*Cart, error) {
	c, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.now().UTC()
	if err := s.persist.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) Clear(ctx context.Context, ownerID string) error {
	return s.persist.Delete(ctx, ownerID)
}

// MemoryPersistence хранит JSON-копии корзин в памяти процесса.
type MemoryPersistence struct {
	mu    sync.Mutex
	carts map[string][]byte
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{carts: map[string][]byte{}}
}

func (m *MemoryPersistence) Load(_ context.Context, ownerID string) (*Cart, error) {
	m.mu.Lock()
	raw, ok := m.carts[ownerID]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *MemoryPersistence) Save(_ context.Context, c *Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.carts[c.OwnerID] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryPersistence) Delete(_ context.Context, ownerID string) error {
	m.mu.Lock()
	delete(m.carts, ownerID)
	m.mu.Unlock()
	return nil
}
