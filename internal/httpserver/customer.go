package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	customersvc "storefront/internal/service/customer"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type customerView struct {
	*domain.Customer
	Address string            `json:"address"`
	Level   customersvc.Level `json:"level"`
}

type loginResponse struct {
	Customer customerView `json:"customer"`
	customersvc.Session
}

func viewOf(c *domain.Customer) customerView {
	return customerView{Customer: c, Address: c.FullAddress(), Level: customersvc.LevelFor(c.Points)}
}

func (h *handlers) register(c *gin.Context) {
	var req customersvc.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.deps.Customers.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": viewOf(customer)})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	customer, sess, err := h.deps.Customers.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Customer: viewOf(customer), Session: sess})
}

func (h *handlers) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.deps.Customers.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.Customers.Logout(c.Request.Context(), c.GetString(ctxToken)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customer": viewOf(customerFrom(c))})
}

func (h *handlers) updateMe(c *gin.Context) {
	var req customersvc.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.deps.Customers.UpdateProfile(c.Request.Context(), customerFrom(c).ID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": viewOf(updated)})
}

func (h *handlers) checkout(c *gin.Context) {
	order, err := h.deps.Checkout.HandOff(c.Request.Context(), *customerFrom(c), cartFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
