package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"

	ctxCart     = "cart"
	ctxSession  = "cart_session"
	ctxCustomer = "customer"
	ctxToken    = "access_token"
)

// requestLogger logs one line per request and feeds the HTTP metrics.
func requestLogger(logger zerolog.Logger, m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		status := c.Writer.Status()

		m.Observe(c.Request.Method, c.FullPath(), status, elapsed)

		ev := logger.Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = logger.Error()
		case status >= http.StatusBadRequest:
			ev = logger.Warn()
		}
		ev.Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int("size", c.Writer.Size()).
			Dur("duration", elapsed).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

func recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		logger.Error().
			Interface("panic", rec).
			Str("path", c.Request.URL.Path).
			Msg("http handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	})
}

// cartSession resolves the X-Cart-Session header to the session's store.
func (h *handlers) cartSession(c *gin.Context) {
	session := strings.TrimSpace(c.GetHeader(SessionHeader))
	if session == "" {
		h.fail(c, errMissingSession)
		return
	}
	store, err := h.deps.Carts.Get(c.Request.Context(), session)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(ctxSession, session)
	c.Set(ctxCart, store)
	c.Header(SessionHeader, session)
	c.Next()
}

func cartFrom(c *gin.Context) *cart.Store {
	return c.MustGet(ctxCart).(*cart.Store)
}

// requireCustomer authenticates the bearer token.
func (h *handlers) requireCustomer(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}
	customer, err := h.deps.Customers.Authenticate(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(ctxCustomer, customer)
	c.Set(ctxToken, token)
	c.Next()
}

func customerFrom(c *gin.Context) *domain.Customer {
	return c.MustGet(ctxCustomer).(*domain.Customer)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
