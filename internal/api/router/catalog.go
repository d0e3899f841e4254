package router

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/storefront/internal/apperr"
	"github.com/DjordjeVuckovic/storefront/internal/domain"
	"github.com/DjordjeVuckovic/storefront/internal/dto"
	"github.com/DjordjeVuckovic/storefront/internal/storage"
	"github.com/DjordjeVuckovic/storefront/pkg/cache"
	"github.com/DjordjeVuckovic/storefront/pkg/pagination"
)

type CatalogRouter struct {
	e         *echo.Echo
	catalog   storage.Catalog
	paginator *pagination.Paginator[domain.Product]
	store     cache.Store
	cacheCfg  cache.Config
	products  *cache.Memoizer[domain.Product]
}

type CatalogRouterOption func(*CatalogRouter)

func WithPagination(cfg pagination.Config) CatalogRouterOption {
	return func(r *CatalogRouter) {
		r.paginator = pagination.New[domain.Product](cfg)
	}
}

// WithCache enables response caching for the list route and memoized product lookups
func WithCache(store cache.Store, cfg cache.Config) CatalogRouterOption {
	return func(r *CatalogRouter) {
		r.store = store
		r.cacheCfg = cfg
	}
}

func NewCatalogRouter(e *echo.Echo, catalog storage.Catalog, opts ...CatalogRouterOption) *CatalogRouter {
	r := &CatalogRouter{
		e:         e,
		catalog:   catalog,
		paginator: pagination.New[domain.Product](pagination.DefaultConfig()),
		store:     cache.NopStore{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cacheCfg.TTL <= 0 {
		r.cacheCfg.TTL = cache.DefaultTTL
	}
	r.products = cache.NewMemoizer[domain.Product](r.store, r.cacheCfg.TTL)
	return r
}

func (r *CatalogRouter) Bind() {
	cached := cache.Middleware(cache.MiddlewareConfig{
		Store:     r.store,
		TTL:       r.cacheCfg.TTL,
		KeyPrefix: r.cacheCfg.KeyPrefix,
	})

	r.e.GET("/products", r.listProducts, cached)
	r.e.GET("/products/:id", r.getProduct)
	r.e.POST("/products", r.createProduct)
	r.e.PUT("/products/:id", r.replaceProduct)
}

func (r *CatalogRouter) listProducts(c echo.Context) error {
	req := pagination.CursorRequest{
		Cursor:   c.QueryParam("cursor"),
		Ordering: c.QueryParam("ordering"),
	}

	// an unparsable limit falls back to the default page size
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		req.Limit = limit
	}

	direction, err := pagination.ParseDirection(c.QueryParam("direction"))
	if err != nil {
		return apperr.NewValidationWrap("invalid direction", err)
	}
	req.Direction = direction

	page, err := r.paginator.GetPage(c.Request().Context(), r.catalog, req)
	if err != nil {
		if errors.Is(err, pagination.ErrUnknownField) {
			return apperr.NewValidationWrap("invalid ordering", err)
		}
		return err
	}

	return c.JSON(http.StatusOK, dto.NewProductPage(page))
}

func (r *CatalogRouter) getProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	key, err := r.productKey(id)
	if err != nil {
		return err
	}

	p, err := r.products.Do(c.Request().Context(), key, func(ctx context.Context) (domain.Product, error) {
		p, err := r.catalog.Get(ctx, id)
		if err != nil {
			return domain.Product{}, err
		}
		return *p, nil
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

func (r *CatalogRouter) createProduct(c echo.Context) error {
	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	p := req.ToDomain(uuid.Nil)
	id, err := r.save(c.Request().Context(), p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id})
}

// replaceProduct creates or replaces the product and drops its memoized lookup
func (r *CatalogRouter) replaceProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	ctx := c.Request().Context()
	p := req.ToDomain(id)
	if req.CreatedAt == nil {
		// a replace keeps the listing position of an existing product
		if existing, err := r.catalog.Get(ctx, id); err == nil {
			p.CreatedAt = existing.CreatedAt
		} else if !isNotFound(err) {
			return err
		}
	}
	if _, err := r.save(ctx, p); err != nil {
		return err
	}

	key, err := r.productKey(id)
	if err != nil {
		return err
	}
	if err := r.products.Invalidate(ctx, key); err != nil {
		slog.Warn("Failed to invalidate cached product", "id", id, "error", err)
	}

	saved, err := r.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewProductResponse(*saved))
}

func (r *CatalogRouter) save(ctx context.Context, p domain.Product) (uuid.UUID, error) {
	p.Normalize(time.Now())
	if err := p.Validate(); err != nil {
		return uuid.Nil, err
	}
	return r.catalog.Save(ctx, p)
}

func (r *CatalogRouter) productKey(id uuid.UUID) (string, error) {
	return cache.ArgsKey(r.cacheCfg.KeyPrefix+":product", id.String())
}

func isNotFound(err error) bool {
	var nf *apperr.NotFoundError
	return errors.As(err, &nf)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.NewValidationWrap("invalid product id", err)
	}
	return id, nil
}
