package domain

import "time"

// Cart is an ordered list of products, unique by ID. Every entry holds an
// Amount of at least one. Methods never modify the receiver.
type Cart []Product

func (c Cart) IndexOf(id ProductID) int {
	for i, product := range c {
		if product.ID == id {
			return i
		}
	}
	return -1
}

func (c Cart) Find(id ProductID) (Product, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c[i], true
	}
	return Product{}, false
}

func (c Cart) Clone() Cart {
	clone := make(Cart, len(c))
	copy(clone, c)
	return clone
}

// WithProduct appends product with the given amount.
func (c Cart) WithProduct(product Product, amount int) Cart {
	product.Amount = amount
	next := make(Cart, len(c), len(c)+1)
	copy(next, c)
	return append(next, product)
}

func (c Cart) WithoutProduct(id ProductID) Cart {
	next := make(Cart, 0, len(c))
	for _, product := range c {
		if product.ID != id {
			next = append(next, product)
		}
	}
	return next
}

// WithAmount sets the amount of the matching entry. An amount below one drops
// the entry. The boolean is false when id is not in the cart.
func (c Cart) WithAmount(id ProductID, amount int) (Cart, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, false
	}
	if amount < 1 {
		return c.WithoutProduct(id), true
	}
	next := c.Clone()
	next[i].Amount = amount
	return next, true
}

// Normalize drops entries that break the cart invariants (non-positive amounts
// and repeated IDs, keeping the first occurrence) and reports how many were dropped.
func (c Cart) Normalize() (Cart, int) {
	seen := make(map[ProductID]struct{}, len(c))
	next := make(Cart, 0, len(c))
	for _, product := range c {
		if product.Amount < 1 {
			continue
		}
		if _, ok := seen[product.ID]; ok {
			continue
		}
		seen[product.ID] = struct{}{}
		next = append(next, product)
	}
	return next, len(c) - len(next)
}

// Size is the number of distinct products in the cart.
func (c Cart) Size() int {
	return len(c)
}

func (c Cart) Total() Amount {
	total := Amount(0)
	for _, product := range c {
		total = total.Add(product.Subtotal())
	}
	return total
}

func (c Cart) AmountByProduct() map[ProductID]int {
	amounts := make(map[ProductID]int, len(c))
	for _, product := range c {
		amounts[product.ID] = product.Amount
	}
	return amounts
}

type CartEventType string

const (
	CartProductAdded         CartEventType = "cart.product_added"
	CartProductRemoved       CartEventType = "cart.product_removed"
	CartProductAmountUpdated CartEventType = "cart.product_amount_updated"
)

type CartChangedEvent struct {
	Type       CartEventType `json:"type"`
	ProductID  ProductID     `json:"product_id"`
	Amount     int           `json:"amount"`
	CartSize   int           `json:"cart_size"`
	CartTotal  Amount        `json:"cart_total"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func (e *CartChangedEvent) GetName() string {
	return string(e.Type)
}

func (e *CartChangedEvent) GetEntityName() string {
	return "cart"
}

func NewCartChangedEvent(eventType CartEventType, productID ProductID, amount int, cart Cart) *CartChangedEvent {
	return &CartChangedEvent{
		Type:       eventType,
		ProductID:  productID,
		Amount:     amount,
		CartSize:   cart.Size(),
		CartTotal:  cart.Total(),
		OccurredAt: time.Now(),
	}
}
