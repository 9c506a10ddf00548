package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/shelfwise/bookstore/internal/metrics"
	"github.com/shelfwise/bookstore/internal/repository"
)

type BookLister interface {
	List(ctx context.Context) ([]*repository.Book, error)
}

// BookCache is a read-through cache over the catalog list. The catalog
// mutates rarely; checkout bypasses it entirely and always reads the
// live rows.
type BookCache struct {
	mu    sync.RWMutex
	books map[int64]*repository.Book
	order []int64
	repo  BookLister
}

func NewBookCache(repo BookLister) *BookCache {
	return &BookCache{
		books: make(map[int64]*repository.Book),
		repo:  repo,
	}
}

func (c *BookCache) LoadInitialData(ctx context.Context) error {
	books, err := c.repo.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.books = make(map[int64]*repository.Book, len(books))
	c.order = c.order[:0]
	for _, book := range books {
		bookCopy := *book
		c.books[book.ID] = &bookCopy
		c.order = append(c.order, book.ID)
	}
	metrics.BookCacheItems.Set(float64(len(c.books)))
	zap.L().Info("book cache loaded", zap.Int("count", len(c.books)))
	return nil
}

func (c *BookCache) Get(id int64) (*repository.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	book, found := c.books[id]
	if !found {
		return nil, false
	}
	bookCopy := *book
	return &bookCopy, true
}

// All returns the cached catalog in id order, or nil when the cache has
// not been loaded.
func (c *BookCache) All() []*repository.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.order) == 0 {
		return nil
	}
	out := make([]*repository.Book, 0, len(c.order))
	for _, id := range c.order {
		if book, ok := c.books[id]; ok {
			bookCopy := *book
			out = append(out, &bookCopy)
		}
	}
	return out
}

// Invalidate drops the cached catalog after a mutation; the next read
// reloads from the database.
func (c *BookCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.books = make(map[int64]*repository.Book)
	c.order = c.order[:0]
	metrics.BookCacheItems.Set(0)
}
