package dto

import (
	"encoding/json"
	"fmt"

	"github.com/rafaelleal24/rocketshoes/internal/core/domain"
)

// CartProduct is the persisted shape of a cart entry. Price is kept as a decimal
// so snapshots match the catalog API's product records.
type CartProduct struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int     `json:"amount"`
}

type AddProductRequest struct {
	ProductID int `json:"product_id" binding:"required,gt=0"`
}

type UpdateProductAmountRequest struct {
	Amount *int `json:"amount" binding:"required"`
}

func NewCartProduct(p domain.Product) CartProduct {
	return CartProduct{
		ID:     int(p.ID),
		Title:  p.Title,
		Price:  p.Price.ToDecimal(),
		Image:  p.Image,
		Amount: p.Amount,
	}
}

func (p CartProduct) ToDomain() domain.Product {
	return domain.Product{
		ID:     domain.ProductID(p.ID),
		Title:  p.Title,
		Price:  domain.NewAmountFromDecimal(p.Price),
		Image:  p.Image,
		Amount: p.Amount,
	}
}

func EncodeCart(cart domain.Cart) (string, error) {
	products := make([]CartProduct, len(cart))
	for i, product := range cart {
		products[i] = NewCartProduct(product)
	}
	data, err := json.Marshal(products)
	if err != nil {
		return "", fmt.Errorf("failed to encode cart: %w", err)
	}
	return string(data), nil
}

func DecodeCart(raw string) (domain.Cart, error) {
	var products []CartProduct
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	cart := make(domain.Cart, len(products))
	for i, product := range products {
		cart[i] = product.ToDomain()
	}
	return cart, nil
}
