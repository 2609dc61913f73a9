package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/news-mann/internal/dto"
	"github.com/DjordjeVuckovic/news-mann/internal/storage"
	"github.com/DjordjeVuckovic/news-mann/pkg/pagination"
	"github.com/labstack/echo/v4"
)

type ArticleRouter struct {
	e       *echo.Echo
	storage storage.Reader
}

func NewArticleRouter(e *echo.Echo, storage storage.Reader) *ArticleRouter {
	return &ArticleRouter{
		e:       e,
		storage: storage,
	}
}

func (r *ArticleRouter) Bind() {
	g := r.e.Group("/articles")
	g.GET("/", r.listHandler)
	g.GET("", r.listHandler)
	g.GET("/by-category/:name", r.byCategoryHandler)
	g.GET("/:id", r.getHandler)
}

// listHandler godoc
// @Summary List articles for the news feed
// @Description Newest first. Without page and size every article is returned.
// @Tags articles
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param size query int false "Page size"
// @Success 200 {array} dto.Article
// @Failure 500 {object} map[string]string
// @Router /articles/ [get]
func (r *ArticleRouter) listHandler(c echo.Context) error {
	page := pagination.ParseOffsetRequest(c.QueryParam("page"), c.QueryParam("size"))

	articles, err := r.storage.ListArticles(c.Request().Context(), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.FromArticles(articles))
}

// byCategoryHandler godoc
// @Summary List articles in a category
// @Description Newest first. An unknown category yields an empty list.
// @Tags articles
// @Produce json
// @Param name path string true "Category name, e.g. chess"
// @Param page query int false "Page number, starting at 1"
// @Param size query int false "Page size"
// @Success 200 {array} dto.Article
// @Failure 500 {object} map[string]string
// @Router /articles/by-category/{name} [get]
func (r *ArticleRouter) byCategoryHandler(c echo.Context) error {
	page := pagination.ParseOffsetRequest(c.QueryParam("page"), c.QueryParam("size"))

	articles, err := r.storage.ListByCategory(c.Request().Context(), c.Param("name"), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.FromArticles(articles))
}

// getHandler godoc
// @Summary Get one article
// @Tags articles
// @Produce json
// @Param id path string true "Article id"
// @Success 200 {object} dto.Article
// @Failure 404 {object} map[string]string
// @Router /articles/{id} [get]
func (r *ArticleRouter) getHandler(c echo.Context) error {
	article, err := r.storage.GetArticle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.FromArticle(*article))
}
