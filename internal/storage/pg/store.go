package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/storage"
	"github.com/DjordjeVuckovic/news-mann/pkg/stringsutil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	upsertCategorySQL = `
		INSERT INTO categories (category_name) VALUES ($1)
		ON CONFLICT (category_name) DO UPDATE SET category_name = EXCLUDED.category_name
		RETURNING id`

	insertArticleSQL = `
		INSERT INTO articles (id, created_at, title, headline, summary, source_url, image_url, published_at, source_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (source_url) DO NOTHING
		RETURNING id`

	articleIDByURLSQL = `SELECT id FROM articles WHERE source_url = $1`

	linkCategorySQL = `
		INSERT INTO article_categories (article_id, category_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
)

type Store struct {
	db    DB
	now   func() time.Time
	newID func() string
}

func NewStore(db DB) *Store {
	return &Store{
		db:    db,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Store) StoreAll(ctx context.Context, drafts []domain.Draft, topic string) (res storage.StoreResult, err error) {
	if len(drafts) == 0 {
		return storage.StoreResult{}, nil
	}
	name := stringsutil.NormalizeTopic(topic)
	if name == "" {
		return storage.StoreResult{}, apperr.NewValidation("topic must not be empty")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return storage.StoreResult{}, apperr.NewStorage("begin", err)
	}

	res, err = s.storeAll(ctx, tx, drafts, name)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			slog.Error("Failed to rollback article batch", "topic", name, "error", rbErr)
		}
		return storage.StoreResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return storage.StoreResult{}, apperr.NewStorage("commit", err)
	}

	slog.Info("Stored articles", "topic", name, "new", res.NewCount, "batch", len(drafts))
	return res, nil
}

func (s *Store) storeAll(ctx context.Context, tx pgx.Tx, drafts []domain.Draft, name string) (storage.StoreResult, error) {
	var categoryID int
	if err := tx.QueryRow(ctx, upsertCategorySQL, name).Scan(&categoryID); err != nil {
		return storage.StoreResult{}, apperr.NewStorage("upsert category", err)
	}

	createdAt := s.now().UTC()
	var res storage.StoreResult
	for _, d := range drafts {
		if d.SourceURL == "" {
			continue
		}

		a := storage.NewArticle(s.newID(), d, createdAt)
		id, inserted, err := s.insertIfAbsent(ctx, tx, a)
		if err != nil {
			return storage.StoreResult{}, err
		}

		if _, err := tx.Exec(ctx, linkCategorySQL, id, categoryID); err != nil {
			return storage.StoreResult{}, apperr.NewStorage("link category", err)
		}

		if inserted {
			a.Categories = []string{name}
			res.Inserted = append(res.Inserted, a)
		}
	}

	res.NewCount = len(res.Inserted)
	return res, nil
}

// insertIfAbsent inserts a, or returns the id of the existing row with the same source url.
func (s *Store) insertIfAbsent(ctx context.Context, tx pgx.Tx, a domain.Article) (string, bool, error) {
	var id string
	err := tx.QueryRow(ctx, insertArticleSQL,
		a.ID,
		a.CreatedAt,
		a.Title,
		a.Headline,
		a.Summary,
		a.SourceURL,
		a.ImageURL,
		a.PublishedAt,
		a.SourceName,
	).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", false, apperr.NewStorage("insert article", fmt.Errorf("%s: %w", a.SourceURL, err))
	}

	if err := tx.QueryRow(ctx, articleIDByURLSQL, a.SourceURL).Scan(&id); err != nil {
		return "", false, apperr.NewStorage("lookup article", fmt.Errorf("%s: %w", a.SourceURL, err))
	}
	return id, false, nil
}

var _ storage.Store = (*Store)(nil)
