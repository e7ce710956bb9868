package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/service/catalog"
)

func (h *handlers) newSession(c *gin.Context) {
	session := uuid.NewString()
	c.Header(SessionHeader, session)
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func (h *handlers) listProducts(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	products, err := h.deps.Catalog.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func parseFilter(c *gin.Context) (catalog.Filter, error) {
	sort, err := catalog.ParseSort(c.Query("sort"))
	if err != nil {
		return catalog.Filter{}, err
	}
	f := catalog.Filter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Sort:     sort,
	}
	if f.Query == "" {
		f.Query = c.Query("search")
	}
	if f.MinPrice, err = priceParam(c, "minPrice"); err != nil {
		return catalog.Filter{}, err
	}
	if f.MaxPrice, err = priceParam(c, "maxPrice"); err != nil {
		return catalog.Filter{}, err
	}
	return f, nil
}

func priceParam(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, fmt.Errorf("%s %q: %w", name, raw, domain.ErrInvalidInput)
	}
	return &d, nil
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.deps.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) listCategories(c *gin.Context) {
	cats, err := h.deps.Catalog.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *handlers) listCoupons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"coupons": h.deps.Coupons.All()})
}
