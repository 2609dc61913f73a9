package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/pkg/pagination"
	"github.com/DjordjeVuckovic/news-mann/pkg/stringsutil"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var articleColumns = []string{
	"a.id",
	"a.created_at",
	"a.title",
	"a.headline",
	"a.summary",
	"a.source_url",
	"a.image_url",
	"a.published_at",
	"a.source_name",
	"COALESCE((SELECT array_agg(c2.category_name ORDER BY c2.category_name) " +
		"FROM article_categories ac2 JOIN categories c2 ON c2.id = ac2.category_id " +
		"WHERE ac2.article_id = a.id), '{}') AS categories",
}

func selectArticles() sq.SelectBuilder {
	return psql.Select(articleColumns...).From("articles a")
}

func (s *Store) LatestArticleAt(ctx context.Context, topic string) (*time.Time, error) {
	query, args, err := psql.Select("MAX(a.created_at)").
		From("articles a").
		Join("article_categories ac ON ac.article_id = a.id").
		Join("categories c ON c.id = ac.category_id").
		Where(sq.Eq{"c.category_name": stringsutil.NormalizeTopic(topic)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest query: %w", err)
	}

	var latest *time.Time
	if err := s.db.QueryRow(ctx, query, args...).Scan(&latest); err != nil {
		return nil, err
	}
	return latest, nil
}

func (s *Store) ListArticles(ctx context.Context, page pagination.OffsetRequest) ([]domain.Article, error) {
	return s.queryArticles(ctx, paginate(selectArticles(), page))
}

func (s *Store) ListByCategory(ctx context.Context, name string, page pagination.OffsetRequest) ([]domain.Article, error) {
	q := selectArticles().
		Join("article_categories ac ON ac.article_id = a.id").
		Join("categories c ON c.id = ac.category_id").
		Where(sq.Eq{"c.category_name": stringsutil.NormalizeTopic(name)})
	return s.queryArticles(ctx, paginate(q, page))
}

func (s *Store) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	query, args, err := selectArticles().Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build article query: %w", err)
	}

	a, err := scanArticle(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.NewStorage("get article", err)
	}
	return &a, nil
}

func paginate(q sq.SelectBuilder, page pagination.OffsetRequest) sq.SelectBuilder {
	q = q.OrderBy("a.created_at DESC", "a.id DESC")
	if page.Limited() {
		q = q.Limit(uint64(page.Size)).Offset(uint64(page.Offset()))
	}
	return q
}

func (s *Store) queryArticles(ctx context.Context, q sq.SelectBuilder) ([]domain.Article, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build articles query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.NewStorage("list articles", err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, apperr.NewStorage("scan article", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewStorage("list articles", err)
	}
	return articles, nil
}

func scanArticle(row pgx.Row) (domain.Article, error) {
	var a domain.Article
	err := row.Scan(
		&a.ID,
		&a.CreatedAt,
		&a.Title,
		&a.Headline,
		&a.Summary,
		&a.SourceURL,
		&a.ImageURL,
		&a.PublishedAt,
		&a.SourceName,
		&a.Categories,
	)
	return a, err
}
