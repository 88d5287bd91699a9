// Package order implements commerce orders.
package order

import (
	"encoding/json"
	"fmt"
	"time"
)

// Order is a customer order owned by an organization.
//
// Items is a list of JSON-encoded strings, one per line item. The upstream
// system double-serializes items and every consumer parses them one by one;
// that wire shape is preserved here on purpose. Use ParsedItems to decode.
type Order struct {
	ID              string    `json:"id"`
	OrgID           string    `json:"organizationId"`
	OrderNumber     string    `json:"orderNumber"`
	CustomerID      string    `json:"customerId"`
	Status          string    `json:"status"`
	TotalCents      int64     `json:"totalCents"`
	Items           []string  `json:"items"`
	ShippingAddress string    `json:"shippingAddress"`
	PaymentMethod   string    `json:"paymentMethod"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SearchFields returns the fields matched by free-text search.
func (o *Order) SearchFields() []string {
	return []string{o.OrderNumber, o.CustomerID}
}

// StatusValue returns the order's current status.
func (o *Order) StatusValue() string { return o.Status }

// Item is one decoded line item.
type Item struct {
	Name          string `json:"name"`
	PriceCents    int64  `json:"price"`
	DiscountCents int64  `json:"discountPrice,omitempty"`
	Quantity      int    `json:"quantity"`
}

// ParsedItems decodes each item string individually. A single malformed item
// fails the whole decode; items are never silently dropped.
func (o *Order) ParsedItems() ([]Item, error) {
	items := make([]Item, 0, len(o.Items))
	for i, raw := range o.Items {
		var item Item
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("decode item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// EncodeItems serializes items into the wire shape.
func EncodeItems(items []Item) ([]string, error) {
	out := make([]string, 0, len(items))
	for i, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encode item %d: %w", i, err)
		}
		out = append(out, string(raw))
	}
	return out, nil
}
