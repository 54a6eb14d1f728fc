package domain

import "github.com/shopspring/decimal"

type CartItem struct {
	ProductID int64            `json:"productId"`
	Quantity  int              `json:"quantity"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	CreatedAt string           `json:"createdAt,omitempty"`
}

type Cart struct {
	ID        *int64     `json:"id,omitempty"`
	UserID    *int64     `json:"userId,omitempty"`
	Items     []CartItem `json:"items"`
	Status    *bool      `json:"status,omitempty"`
	CreatedAt string     `json:"createdAt,omitempty"`
	UpdatedAt string     `json:"updatedAt,omitempty"`
}

// Persisted reports whether the remote cart service already assigned an id.
func (c *Cart) Persisted() bool {
	return c != nil && c.ID != nil
}

func (c *Cart) HasItems() bool {
	return c != nil && len(c.Items) > 0
}

// Total sums price*quantity; items without a price count as zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, item := range c.Items {
		if item.Price == nil {
			continue
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// AddOrUpdateItem returns the item list to persist after adding quantity of
// productID. The input cart is never modified.
func AddOrUpdateItem(cart *Cart, productID int64, quantity int) []CartItem {
	var items []CartItem
	if cart != nil {
		items = cart.Items
	}

	updated := make([]CartItem, len(items), len(items)+1)
	copy(updated, items)

	for i := range updated {
		if updated[i].ProductID == productID {
			updated[i].Quantity += quantity
			return updated
		}
	}
	return append(updated, CartItem{ProductID: productID, Quantity: quantity})
}

// RemoveItem filters productID out of the cart. A result with no items is
// rejected: a persisted cart keeps at least one product.
func RemoveItem(cart *Cart, productID int64) ([]CartItem, error) {
	if !cart.HasItems() {
		return nil, ErrCartEmpty
	}

	updated := make([]CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			updated = append(updated, item)
		}
	}
	if len(updated) == 0 {
		return nil, ErrCartMustKeepItem
	}
	return updated, nil
}

// UpdateQuantity replaces the quantity of productID. It returns false, and no
// list, when there is nothing to update or quantity is below one.
func UpdateQuantity(cart *Cart, productID int64, quantity int) ([]CartItem, bool) {
	if !cart.HasItems() || quantity < 1 {
		return nil, false
	}

	updated := make([]CartItem, len(cart.Items))
	for i, item := range cart.Items {
		if item.ProductID == productID {
			item.Quantity = quantity
		}
		updated[i] = item
	}
	return updated, true
}
