package checkout

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Store is the canonical per-user document: current cart plus order
// history, newest order first.
type Store struct {
	Cart   []CartItem `json:"cart"`
	Orders []Order    `json:"orders"`
}

// DecodeStore parses a user store document, tolerating the three
// historical shapes of the column:
//
//  1. the canonical {cart, orders} object;
//  2. a bare array of orders (first element carries orderNumber,
//     shippingAddress or orderDate);
//  3. a bare array of cart items (any other array).
//
// Unparseable input decodes as an empty store rather than an error,
// matching how the column has always been read.
func DecodeStore(raw []byte) Store {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Store{Cart: []CartItem{}, Orders: []Order{}}
	}

	if trimmed[0] == '{' {
		var doc struct {
			Cart   []CartItem `json:"cart"`
			Orders []Order    `json:"orders"`
		}
		if err := json.Unmarshal(trimmed, &doc); err == nil {
			return Store{
				Cart:   nonNilCart(doc.Cart),
				Orders: nonNilOrders(doc.Orders),
			}
		}
		return Store{Cart: []CartItem{}, Orders: []Order{}}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return Store{Cart: []CartItem{}, Orders: []Order{}}
	}
	if len(elements) == 0 {
		return Store{Cart: []CartItem{}, Orders: []Order{}}
	}

	if looksLikeOrder(elements[0]) {
		var orders []Order
		if err := json.Unmarshal(trimmed, &orders); err != nil {
			return Store{Cart: []CartItem{}, Orders: []Order{}}
		}
		return Store{Cart: []CartItem{}, Orders: orders}
	}

	var cart []CartItem
	if err := json.Unmarshal(trimmed, &cart); err != nil {
		return Store{Cart: []CartItem{}, Orders: []Order{}}
	}
	return Store{Cart: cart, Orders: []Order{}}
}

// EncodeStore always writes the canonical shape back, never a legacy
// one, with empty slices rather than nulls.
func EncodeStore(st Store) ([]byte, error) {
	st.Cart = nonNilCart(st.Cart)
	st.Orders = nonNilOrders(st.Orders)
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user store: %w", err)
	}
	return data, nil
}

func looksLikeOrder(raw json.RawMessage) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	for _, key := range []string{"orderNumber", "shippingAddress", "orderDate"} {
		if _, ok := fields[key]; ok {
			return true
		}
	}
	return false
}

func nonNilCart(items []CartItem) []CartItem {
	if items == nil {
		return []CartItem{}
	}
	return items
}

func nonNilOrders(orders []Order) []Order {
	if orders == nil {
		return []Order{}
	}
	return orders
}
