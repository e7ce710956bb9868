package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/service/catalog"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size" binding:"required"`
}

type updateQuantityRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Delta     int    `json:"delta" binding:"required"`
}

type couponRequest struct {
	Code string `json:"code" binding:"required"`
}

type cartResponse struct {
	cart.Snapshot
	CouponResult *cart.CouponResult `json:"couponResult,omitempty"`
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse{Snapshot: cartFrom(c).Snapshot()})
}

func (h *handlers) clearCart(c *gin.Context) {
	store := cartFrom(c)
	store.Clear(c.Request.Context())
	c.JSON(http.StatusOK, cartResponse{Snapshot: store.Snapshot()})
}

// addItem only accepts sizes the catalog has in stock.
func (h *handlers) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.deps.Catalog.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := catalog.Addable(*product, req.Size); err != nil {
		h.fail(c, err)
		return
	}

	store := cartFrom(c)
	if err := store.AddItem(c.Request.Context(), *product, req.Size); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse{Snapshot: store.Snapshot()})
}

func (h *handlers) updateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	store := cartFrom(c)
	store.UpdateQuantity(c.Request.Context(), req.ProductID, req.Size, req.Delta)
	c.JSON(http.StatusOK, cartResponse{Snapshot: store.Snapshot()})
}

func (h *handlers) removeItem(c *gin.Context) {
	productID := c.Query("productId")
	size := c.Query("size")
	if productID == "" || size == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "productId and size query parameters required"})
		return
	}
	store := cartFrom(c)
	store.RemoveItem(c.Request.Context(), productID, size)
	c.JSON(http.StatusOK, cartResponse{Snapshot: store.Snapshot()})
}

// applyCoupon answers 422 when the coupon is rejected; the body still
// carries the unchanged cart and the reason.
func (h *handlers) applyCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	store := cartFrom(c)
	res := store.ApplyCoupon(c.Request.Context(), req.Code)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, cartResponse{Snapshot: store.Snapshot(), CouponResult: &res})
}

func (h *handlers) removeCoupon(c *gin.Context) {
	store := cartFrom(c)
	store.RemoveCoupon(c.Request.Context())
	c.JSON(http.StatusOK, cartResponse{Snapshot: store.Snapshot()})
}
