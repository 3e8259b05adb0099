package domain

import "strconv"

type ProductID int

func (id ProductID) String() string {
	return strconv.Itoa(int(id))
}

func ParseProductID(raw string) (ProductID, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return ProductID(id), true
}

// Product is a catalog record. Amount is the quantity held in the cart and is
// zero for plain catalog lookups.
type Product struct {
	ID     ProductID
	Title  string
	Price  Amount
	Image  string
	Amount int
}

func NewProduct(id ProductID, title string, price Amount, image string) *Product {
	return &Product{
		ID:    id,
		Title: title,
		Price: price,
		Image: image,
	}
}

func (p Product) Subtotal() Amount {
	return p.Price.Multiply(p.Amount)
}

type Stock struct {
	ID     ProductID
	Amount int
}

func (s Stock) Covers(amount int) bool {
	return amount <= s.Amount
}
