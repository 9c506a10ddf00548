package mail

import (
	"fmt"
	"html"
	"strings"

	"github.com/shelfwise/bookstore/internal/checkout"
)

// Rendering is deterministic: the same order and context always
// produce the same bodies.

func renderHTML(order checkout.Order, pc PayloadContext) string {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>$%s</td></tr>",
			html.EscapeString(item.Title), item.Quantity, money(item.Price))
	}
	itemsHTML := rows.String()
	if itemsHTML == "" {
		itemsHTML = `<tr><td colspan="3">No items recorded.</td></tr>`
	}

	var b strings.Builder
	b.WriteString("<h2>New purchase received</h2>")
	fmt.Fprintf(&b, "<p><strong>Order Number:</strong> %s</p>", html.EscapeString(order.OrderNumber))
	fmt.Fprintf(&b, "<p><strong>Order Date (UTC):</strong> %s</p>", html.EscapeString(order.OrderDate))
	fmt.Fprintf(&b, "<p><strong>User:</strong> %s #%d</p>", html.EscapeString(pc.UserType), pc.UserID)
	fmt.Fprintf(&b, "<p><strong>Shipping Name:</strong> %s</p>", html.EscapeString(order.ShippingAddress.Name))
	fmt.Fprintf(&b, "<p><strong>Shipping Email:</strong> %s</p>", html.EscapeString(order.ShippingAddress.Email))
	fmt.Fprintf(&b, "<p><strong>Shipping Phone:</strong> %s</p>", html.EscapeString(order.ShippingAddress.Phone))
	b.WriteString(`<table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse;">`)
	b.WriteString("<thead><tr><th>Item</th><th>Qty</th><th>Unit Price</th></tr></thead>")
	b.WriteString("<tbody>" + itemsHTML + "</tbody>")
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p><strong>Subtotal:</strong> $%s</p>", money(order.Subtotal))
	fmt.Fprintf(&b, "<p><strong>Tax:</strong> $%s</p>", money(order.Tax))
	fmt.Fprintf(&b, "<p><strong>Shipping:</strong> $%s</p>", money(order.Shipping))
	fmt.Fprintf(&b, "<p><strong>Total:</strong> $%s</p>", money(order.Total))
	return b.String()
}

func renderText(order checkout.Order, pc PayloadContext) string {
	lines := []string{
		"New purchase received",
		"Order Number: " + order.OrderNumber,
		"Order Date (UTC): " + order.OrderDate,
		fmt.Sprintf("User: %s #%d", pc.UserType, pc.UserID),
		"Shipping Name: " + order.ShippingAddress.Name,
		"Shipping Email: " + order.ShippingAddress.Email,
		"Shipping Phone: " + order.ShippingAddress.Phone,
		"",
		"Items:",
	}

	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("- %s | Qty: %d | Unit: $%s", item.Title, item.Quantity, money(item.Price)))
	}

	lines = append(lines,
		"",
		"Subtotal: $"+money(order.Subtotal),
		"Tax: $"+money(order.Tax),
		"Shipping: $"+money(order.Shipping),
		"Total: $"+money(order.Total),
	)

	return strings.Join(lines, "\n")
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
