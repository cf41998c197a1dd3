package router

import (
	"net/http"
	"strconv"

	"github.com/DjordjeVuckovic/pagekit/internal/domain"
	"github.com/DjordjeVuckovic/pagekit/internal/storage"
	"github.com/DjordjeVuckovic/pagekit/pkg/apperr"
	"github.com/DjordjeVuckovic/pagekit/pkg/pagination"
	"github.com/labstack/echo/v4"
)

// ArticlePage is the response body of GET /articles.
type ArticlePage = pagination.Page[domain.Article]

type ArticleRouter struct {
	e      *echo.Echo
	source storage.ArticleSource
}

func NewArticleRouter(e *echo.Echo, source storage.ArticleSource) *ArticleRouter {
	return &ArticleRouter{
		e:      e,
		source: source,
	}
}

func (r *ArticleRouter) Bind() {
	r.e.GET("/articles", r.listHandler)
}

// listHandler godoc
// @Summary List articles page by page
// @Description Returns one page of articles, optionally filtered and sorted by any article property
// @Tags articles
// @Produce json
// @Param pageSize query int false "Page size; omit for a single page with every article" minimum(1)
// @Param pageNumber query int false "Zero-based page number" minimum(0) default(0)
// @Param sortProperty query string false "Article property to sort by, e.g. publishedAt"
// @Param descending query bool false "Sort descending" default(false)
// @Param language query string false "Language filter"
// @Param category query string false "Category filter"
// @Success 200 {object} ArticlePage
// @Failure 400 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /articles [get]
func (r *ArticleRouter) listHandler(c echo.Context) error {
	req, err := parseSortablePagingRequest(c)
	if err != nil {
		return err
	}

	filter := storage.ArticleFilter{
		Language: c.QueryParam("language"),
		Category: c.QueryParam("category"),
	}

	page, err := pagination.NewSortedPage(c.Request().Context(), r.source.Articles(filter), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func parseSortablePagingRequest(c echo.Context) (pagination.SortablePagingRequest, error) {
	req := pagination.SortablePagingRequest{
		PagingRequest: pagination.DefaultPagingRequest(),
		SortProperty:  c.QueryParam("sortProperty"),
	}

	if raw := c.QueryParam("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return req, apperr.NewArgumentWrap("pageSize", raw, "must be an integer", err)
		}
		req.PageSize = &size
	}

	if raw := c.QueryParam("pageNumber"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil {
			return req, apperr.NewArgumentWrap("pageNumber", raw, "must be an integer", err)
		}
		req.PageNumber = number
	}

	if raw := c.QueryParam("descending"); raw != "" {
		desc, err := strconv.ParseBool(raw)
		if err != nil {
			return req, apperr.NewArgumentWrap("descending", raw, "must be a boolean", err)
		}
		req.Descending = desc
	}

	return req, nil
}
