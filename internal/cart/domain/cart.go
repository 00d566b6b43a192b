package domain

import catalog "github.com/pixelmart/storefront/internal/catalog/domain"

// Cart is one user's mutable pre-purchase document: at most one item per
// product. It stores product references only; prices are joined in live.
type Cart struct {
	UserID string
	Items  []Item
}

type Item struct {
	ProductID string
	Quantity  int
}

func New(userID string) Cart {
	return Cart{UserID: userID, Items: []Item{}}
}

// Add increments the existing entry or appends a new one.
func (c *Cart) Add(productID string, quantity int) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, Item{ProductID: productID, Quantity: quantity})
}

// Set overwrites the quantity for productID, inserting the entry if absent.
func (c *Cart) Set(productID string, quantity int) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
	c.Items = append(c.Items, Item{ProductID: productID, Quantity: quantity})
}

// Remove deletes the entry for productID; absent entries are a no-op.
func (c *Cart) Remove(productID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// Prune drops entries whose quantity fell to zero or below. A cart never
// persists a non-positive quantity.
func (c *Cart) Prune() {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }

// View is the cart joined with live catalog data; this is what every cart
// endpoint returns, and what the client replaces its mirror with.
type View struct {
	Items []ItemView `json:"items"`
}

type ItemView struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}
