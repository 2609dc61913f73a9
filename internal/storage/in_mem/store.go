package in_mem

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/storage"
	"github.com/DjordjeVuckovic/news-mann/pkg/pagination"
	"github.com/DjordjeVuckovic/news-mann/pkg/stringsutil"
	"github.com/google/uuid"
)

type Store struct {
	storageLock sync.RWMutex
	articles    map[string]domain.Article
	byURL       map[string]string
	categories  map[string]int
	links       map[string]map[string]struct{}
	order       []string
	now         func() time.Time
}

type Option func(s *Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		articles:   make(map[string]domain.Article),
		byURL:      make(map[string]string),
		categories: make(map[string]int),
		links:      make(map[string]map[string]struct{}),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) StoreAll(_ context.Context, drafts []domain.Draft, topic string) (storage.StoreResult, error) {
	if len(drafts) == 0 {
		return storage.StoreResult{}, nil
	}
	name := stringsutil.NormalizeTopic(topic)
	if name == "" {
		return storage.StoreResult{}, apperr.NewValidation("topic must not be empty")
	}

	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if _, ok := s.categories[name]; !ok {
		s.categories[name] = len(s.categories) + 1
	}

	createdAt := s.now().UTC()
	var res storage.StoreResult
	for _, d := range drafts {
		if d.SourceURL == "" {
			continue
		}
		id, exists := s.byURL[d.SourceURL]
		if !exists {
			id = uuid.NewString()
			a := storage.NewArticle(id, d, createdAt)
			s.articles[id] = a
			s.byURL[d.SourceURL] = id
			s.order = append(s.order, id)
			res.Inserted = append(res.Inserted, a)
		}
		if s.links[id] == nil {
			s.links[id] = make(map[string]struct{})
		}
		s.links[id][name] = struct{}{}
	}

	for i := range res.Inserted {
		res.Inserted[i].Categories = s.categoriesOf(res.Inserted[i].ID)
	}
	res.NewCount = len(res.Inserted)
	slog.Debug("Stored articles in memory", "topic", name, "new", res.NewCount, "total", len(s.articles))
	return res, nil
}

func (s *Store) LatestArticleAt(_ context.Context, topic string) (*time.Time, error) {
	name := stringsutil.NormalizeTopic(topic)

	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	var latest *time.Time
	for id, cats := range s.links {
		if _, ok := cats[name]; !ok {
			continue
		}
		at := s.articles[id].CreatedAt
		if latest == nil || at.After(*latest) {
			latest = &at
		}
	}
	return latest, nil
}

func (s *Store) ListArticles(_ context.Context, page pagination.OffsetRequest) ([]domain.Article, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	return s.list(page, func(string) bool { return true }), nil
}

func (s *Store) ListByCategory(_ context.Context, name string, page pagination.OffsetRequest) ([]domain.Article, error) {
	name = stringsutil.NormalizeTopic(name)

	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	return s.list(page, func(id string) bool {
		_, ok := s.links[id][name]
		return ok
	}), nil
}

func (s *Store) GetArticle(_ context.Context, id string) (*domain.Article, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	a.Categories = s.categoriesOf(id)
	return &a, nil
}

// list must be called with the read lock held.
func (s *Store) list(page pagination.OffsetRequest, keep func(id string) bool) []domain.Article {
	result := make([]domain.Article, 0)
	// newest insert first, then a stable sort by created_at
	for i := len(s.order) - 1; i >= 0; i-- {
		id := s.order[i]
		if !keep(id) {
			continue
		}
		a := s.articles[id]
		a.Categories = s.categoriesOf(id)
		result = append(result, a)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if !page.Limited() {
		return result
	}
	start := min(page.Offset(), len(result))
	end := min(start+page.Size, len(result))
	return result[start:end]
}

func (s *Store) categoriesOf(id string) []string {
	names := make([]string, 0, len(s.links[id]))
	for name := range s.links[id] {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var _ storage.Store = (*Store)(nil)
