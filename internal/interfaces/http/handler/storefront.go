package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	checkoutapp "github.com/tindahan/backend/internal/application/checkout"
	storefrontapp "github.com/tindahan/backend/internal/application/storefront"
	"github.com/tindahan/backend/internal/interfaces/http/middleware"
)

// StorefrontHandler handles the public storefront API: catalog browsing,
// session cart editing and checkout dispatch
type StorefrontHandler struct {
	BaseHandler
	carts      *storefrontapp.CartService
	checkout   *checkoutapp.Service
	middleware []gin.HandlerFunc
}

// NewStorefrontHandler creates a new StorefrontHandler. The supplied
// middleware runs on every storefront route; site resolution and visitor
// session tracking belong here rather than on the whole engine.
func NewStorefrontHandler(carts *storefrontapp.CartService, checkout *checkoutapp.Service, mw ...gin.HandlerFunc) *StorefrontHandler {
	return &StorefrontHandler{
		carts:      carts,
		checkout:   checkout,
		middleware: mw,
	}
}

// AddCartItemRequest represents a request to add a product to the cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateCartItemRequest represents a request to change a cart line quantity
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// CheckoutRequest represents a checkout submission. Fields left empty fall
// back to the values stored on the session form.
type CheckoutRequest struct {
	Name     string `json:"name" binding:"omitempty,max=255"`
	Location string `json:"location" binding:"omitempty,max=500"`
	Message  string `json:"message" binding:"omitempty,max=2000"`
}

// ListProducts returns the catalog published on the resolved storefront
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	website := middleware.MustGetSite(c)

	products, err := h.carts.Products(c.Request.Context(), website)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetCart returns the visitor's current cart state
func (h *StorefrontHandler) GetCart(c *gin.Context) {
	website := middleware.MustGetSite(c)
	sessionID := middleware.GetSessionID(c)

	view, err := h.carts.View(c.Request.Context(), website, sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// AddCartItem adds a product to the cart, merging quantities for repeats
func (h *StorefrontHandler) AddCartItem(c *gin.Context) {
	website := middleware.MustGetSite(c)
	sessionID := middleware.GetSessionID(c)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	view, err := h.carts.AddItem(c.Request.Context(), website, sessionID, productID, qty)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// UpdateCartItem sets a cart line's quantity; zero removes the line
func (h *StorefrontHandler) UpdateCartItem(c *gin.Context) {
	website := middleware.MustGetSite(c)
	sessionID := middleware.GetSessionID(c)

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	view, err := h.carts.UpdateQuantity(c.Request.Context(), website, sessionID, productID, *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// RemoveCartItem removes a cart line
func (h *StorefrontHandler) RemoveCartItem(c *gin.Context) {
	website := middleware.MustGetSite(c)
	sessionID := middleware.GetSessionID(c)

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	view, err := h.carts.RemoveItem(c.Request.Context(), website, sessionID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// EmptyCart clears all cart lines, keeping the typed form fields
func (h *StorefrontHandler) EmptyCart(c *gin.Context) {
	website := middleware.MustGetSite(c)
	sessionID := middleware.GetSessionID(c)

	view, err := h.carts.Empty(c.Request.Context(), website, sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// UpdateCheckoutForm applies a field-level update to the stored form
func (h *StorefrontHandler) UpdateCheckoutForm(c *gin.Context) {
	website := middleware.MustGetSite(c)
	sessionID := middleware.GetSessionID(c)

	var update storefrontapp.FormUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	view, err := h.carts.UpdateForm(c.Request.Context(), website, sessionID, update)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Checkout dispatches the cart as an order. On success the deep link for
// the interactive channel is returned with 202 Accepted; the background
// order log runs detached and never delays this response.
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	website := middleware.MustGetSite(c)
	sessionID := middleware.GetSessionID(c)

	// The body is optional; an empty submission falls back entirely to the
	// stored session form
	var req CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	result, err := h.checkout.Checkout(c.Request.Context(), website, sessionID, checkoutapp.CheckoutRequest{
		Name:     req.Name,
		Location: req.Location,
		Message:  req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, result)
}

// RegisterRoutes registers the storefront routes
func (h *StorefrontHandler) RegisterRoutes(rg *gin.RouterGroup) {
	storefront := rg.Group("/storefront", h.middleware...)
	{
		storefront.GET("/products", h.ListProducts)
		storefront.GET("/cart", h.GetCart)
		storefront.DELETE("/cart", h.EmptyCart)
		storefront.POST("/cart/items", h.AddCartItem)
		storefront.PUT("/cart/items/:productId", h.UpdateCartItem)
		storefront.DELETE("/cart/items/:productId", h.RemoveCartItem)
		storefront.PUT("/checkout/form", h.UpdateCheckoutForm)
		storefront.POST("/checkout", h.Checkout)
	}
}
