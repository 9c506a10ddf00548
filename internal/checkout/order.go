package checkout

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a snapshot of a book at the time it was added to the
// cart. Snapshot fields go into the order as-is; validation and pricing
// always re-read the live book row.
type CartItem struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock,omitempty"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"imageUrl"`
	AddedAt  string  `json:"added_at,omitempty"`
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type TimelineEvent struct {
	Status    string `json:"status"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Icon      string `json:"icon"`
}

// Order is immutable once created and embedded as JSON in the user
// store document.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	OrderDate       string          `json:"orderDate"`
	Status          string          `json:"status"`
	Items           []CartItem      `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Tax             float64         `json:"tax"`
	Shipping        float64         `json:"shipping"`
	Discount        float64         `json:"discount"`
	Total           float64         `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	Timeline        []TimelineEvent `json:"timeline"`
}

const (
	taxRate               = "0.10"
	freeShippingThreshold = 50
	flatShippingFee       = "5.99"
)

// OrderLine carries the authoritative unit price for one cart line.
type OrderLine struct {
	UnitPrice float64
	Quantity  int
}

type Totals struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

// ComputeTotals prices an order: tax is 10% of the subtotal, shipping
// is waived above $50 and a flat fee otherwise. All outputs are rounded
// to 2 decimals, halves away from zero.
func ComputeTotals(lines []OrderLine) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		price := decimal.NewFromFloat(line.UnitPrice)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tax := subtotal.Mul(decimal.RequireFromString(taxRate))
	shipping := decimal.RequireFromString(flatShippingFee)
	if subtotal.GreaterThan(decimal.NewFromInt(freeShippingThreshold)) {
		shipping = decimal.Zero
	}
	total := subtotal.Add(tax).Add(shipping)

	return Totals{
		Subtotal: round2(subtotal),
		Tax:      round2(tax),
		Shipping: round2(shipping),
		Total:    round2(total),
	}
}

// round2 rounds to 2 decimal places with halves away from zero.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// NormalizeShippingAddress fills the canonical 8-field shape, defaulting
// the country when the client sent none.
func NormalizeShippingAddress(in ShippingAddress) ShippingAddress {
	if in.Country == "" {
		in.Country = "United States"
	}
	return in
}

func newOrderID(now time.Time) string {
	return fmt.Sprintf("%d%d", now.UnixMilli(), 100+rand.Intn(900))
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%d", now.UTC().Format("20060102-150405"), 100+rand.Intn(900))
}
