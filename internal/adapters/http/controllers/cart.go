package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/rocketshoes/internal/adapters/http/handlers"
	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
	"github.com/rafaelleal24/rocketshoes/internal/core/dto"
	"github.com/rafaelleal24/rocketshoes/internal/core/messages"
	"github.com/rafaelleal24/rocketshoes/internal/core/service"
	"github.com/rafaelleal24/rocketshoes/internal/core/serviceerrors"
)

type CartController struct {
	cartService *service.CartService
	messages    *messages.Catalog
}

type CartItemResponse struct {
	ID                int     `json:"id" example:"1"`
	Title             string  `json:"title" example:"Tênis de Caminhada Leve Confortável"`
	Price             float64 `json:"price" example:"179.9"`
	PriceFormatted    string  `json:"price_formatted" example:"$ 179.90"`
	Image             string  `json:"image"`
	Amount            int     `json:"amount" example:"2"`
	Subtotal          float64 `json:"subtotal" example:"359.8"`
	SubtotalFormatted string  `json:"subtotal_formatted" example:"$ 359.80"`
}

type CartResponse struct {
	Items          []CartItemResponse       `json:"items"`
	Amounts        map[domain.ProductID]int `json:"amounts"`
	Size           int                      `json:"size" example:"1"`
	Total          float64                  `json:"total" example:"359.8"`
	TotalFormatted string                   `json:"total_formatted" example:"$ 359.80"`
}

func NewCartController(cartService *service.CartService, catalogMessages *messages.Catalog) *CartController {
	return &CartController{cartService: cartService, messages: catalogMessages}
}

func (cartController *CartController) newCartResponse(cart domain.Cart) CartResponse {
	items := make([]CartItemResponse, len(cart))
	for i, product := range cart {
		items[i] = CartItemResponse{
			ID:                int(product.ID),
			Title:             product.Title,
			Price:             product.Price.ToDecimal(),
			PriceFormatted:    cartController.messages.FormatPrice(product.Price),
			Image:             product.Image,
			Amount:            product.Amount,
			Subtotal:          product.Subtotal().ToDecimal(),
			SubtotalFormatted: cartController.messages.FormatPrice(product.Subtotal()),
		}
	}
	total := cart.Total()
	return CartResponse{
		Items:          items,
		Amounts:        cart.AmountByProduct(),
		Size:           cart.Size(),
		Total:          total.ToDecimal(),
		TotalFormatted: cartController.messages.FormatPrice(total),
	}
}

func productIDParam(c *gin.Context) (domain.ProductID, bool) {
	productID, ok := domain.ParseProductID(c.Param("id"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("Invalid product ID"))
	}
	return productID, ok
}

// GetCart godoc
// @Summary     Get the cart
// @Description Returns the cart with per-item subtotals and the cart total
// @Tags        cart
// @Produce     json
// @Success     200 {object} CartResponse
// @Router      /api/v1/cart [get]
func (cartController *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartController.newCartResponse(cartController.cartService.Cart()))
}

// AddProduct godoc
// @Summary     Add a product to the cart
// @Description Adds one unit of a product, checking the stock first. Requests sharing an Idempotency-Key are applied once.
// @Tags        cart
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                false "Idempotency key"
// @Param       request         body     dto.AddProductRequest true  "Product to add"
// @Success     200             {object} CartResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     429             {object} handlers.ErrorResponse
// @Failure     500             {object} handlers.ErrorResponse
// @Failure     502             {object} handlers.ErrorResponse
// @Router      /api/v1/cart/items [post]
func (cartController *CartController) AddProduct(c *gin.Context) {
	var request dto.AddProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	idempotencyKey := c.GetHeader("Idempotency-Key")
	cart, err := cartController.cartService.AddProductWithKey(c.Request.Context(), idempotencyKey, domain.ProductID(request.ProductID))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartController.newCartResponse(cart))
}

// RemoveProduct godoc
// @Summary     Remove a product from the cart
// @Tags        cart
// @Produce     json
// @Param       id  path     int true "Product ID"
// @Success     200 {object} CartResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     429 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/cart/items/{id} [delete]
func (cartController *CartController) RemoveProduct(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	if err := cartController.cartService.RemoveProduct(c.Request.Context(), productID); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartController.newCartResponse(cartController.cartService.Cart()))
}

// UpdateProductAmount godoc
// @Summary     Set the quantity of a product in the cart
// @Description Amounts below one leave the cart unchanged
// @Tags        cart
// @Accept      json
// @Produce     json
// @Param       id      path     int                            true "Product ID"
// @Param       request body     dto.UpdateProductAmountRequest true "New amount"
// @Success     200     {object} CartResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Failure     502     {object} handlers.ErrorResponse
// @Router      /api/v1/cart/items/{id} [patch]
func (cartController *CartController) UpdateProductAmount(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	var request dto.UpdateProductAmountRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	err := cartController.cartService.UpdateProductAmount(c.Request.Context(), service.UpdateProductAmount{
		ProductID: productID,
		Amount:    *request.Amount,
	})
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartController.newCartResponse(cartController.cartService.Cart()))
}
