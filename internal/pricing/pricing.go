// Package pricing computes checkout quotes: subtotal, tax, shipping fee and
// total. Arithmetic is done in decimal so currency amounts round cleanly to
// two places.
package pricing

import "github.com/shopspring/decimal"

// Config holds the pricing constants. Orders ship free above the threshold,
// otherwise the flat fee applies; tax is charged on the subtotal.
type Config struct {
	TaxRate          float64
	FreeShippingOver float64
	ShippingFee      float64
}

func DefaultConfig() Config {
	return Config{
		TaxRate:          0.10,
		FreeShippingOver: 50,
		ShippingFee:      9.99,
	}
}

type Line struct {
	UnitPrice float64
	Quantity  int
}

type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type Engine struct {
	taxRate   decimal.Decimal
	threshold decimal.Decimal
	fee       decimal.Decimal
}

func NewEngine(cfg Config) *Engine {
	return &Engine{
		taxRate:   decimal.NewFromFloat(cfg.TaxRate),
		threshold: decimal.NewFromFloat(cfg.FreeShippingOver),
		fee:       decimal.NewFromFloat(cfg.ShippingFee),
	}
}

func (e *Engine) Quote(lines []Line) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		price := decimal.NewFromFloat(l.UnitPrice)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(e.taxRate).Round(2)

	// Free shipping strictly above the threshold: a 50.00 subtotal still pays.
	shipping := e.fee
	if subtotal.GreaterThan(e.threshold) {
		shipping = decimal.Zero
	}

	total := subtotal.Add(tax).Add(shipping).Round(2)

	return Quote{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}
