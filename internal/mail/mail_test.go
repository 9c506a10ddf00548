package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/bookstore/internal/checkout"
)

type captureTransport struct {
	sent []Message
	err  error
}

func (t *captureTransport) Send(_ context.Context, msg Message) error {
	if t.err != nil {
		return t.err
	}
	t.sent = append(t.sent, msg)
	return nil
}

func testOrder() checkout.Order {
	return checkout.Order{
		ID:          "171234567890123",
		OrderNumber: "ORD-20250101-120000-123",
		OrderDate:   "2025-01-01T12:00:00Z",
		Items: []checkout.CartItem{
			{Title: "Dune", Quantity: 2, Price: 9.99},
			{Title: "Solaris & Friends <tag>", Quantity: 1, Price: 12.5},
		},
		Subtotal: 32.48,
		Tax:      3.25,
		Shipping: 5.99,
		Total:    41.72,
		ShippingAddress: checkout.ShippingAddress{
			Name: "Jane Reader", Email: "jane@example.com", Phone: "555-0100",
		},
	}
}

var alertCtx = PayloadContext{UserType: "customer", UserID: 42}

func TestSendPurchaseAlert(t *testing.T) {
	ctx := context.Background()
	enabled := Config{Enabled: true, To: "owner@example.com", SubjectPrefix: "[New Purchase]",
		FromAddress: "no-reply@example.com", FromName: "Bookstore"}

	t.Run("renders and sends", func(t *testing.T) {
		transport := &captureTransport{}
		d := NewDispatcherWithTransport(enabled, transport)

		err := d.SendPurchaseAlert(ctx, testOrder(), alertCtx)
		require.NoError(t, err)
		require.Len(t, transport.sent, 1)

		msg := transport.sent[0]
		assert.Equal(t, "owner@example.com", msg.To)
		assert.Equal(t, "[New Purchase] ORD-20250101-120000-123", msg.Subject)
		assert.Contains(t, msg.HTML, "New purchase received")
		assert.Contains(t, msg.HTML, "ORD-20250101-120000-123")
		assert.Contains(t, msg.HTML, "customer #42")
		assert.Contains(t, msg.HTML, "$9.99")
		assert.Contains(t, msg.HTML, "Solaris &amp; Friends &lt;tag&gt;")
		assert.Contains(t, msg.Text, "Order Number: ORD-20250101-120000-123")
		assert.Contains(t, msg.Text, "- Dune | Qty: 2 | Unit: $9.99")
		assert.Contains(t, msg.Text, "Total: $41.72")
	})

	t.Run("deterministic rendering", func(t *testing.T) {
		transport := &captureTransport{}
		d := NewDispatcherWithTransport(enabled, transport)

		require.NoError(t, d.SendPurchaseAlert(ctx, testOrder(), alertCtx))
		require.NoError(t, d.SendPurchaseAlert(ctx, testOrder(), alertCtx))
		require.Len(t, transport.sent, 2)
		assert.Equal(t, transport.sent[0], transport.sent[1])
	})

	t.Run("no items placeholder", func(t *testing.T) {
		transport := &captureTransport{}
		d := NewDispatcherWithTransport(enabled, transport)

		order := testOrder()
		order.Items = nil
		require.NoError(t, d.SendPurchaseAlert(ctx, order, alertCtx))
		assert.Contains(t, transport.sent[0].HTML, "No items recorded.")
	})

	t.Run("disabled is skipped", func(t *testing.T) {
		cfg := enabled
		cfg.Enabled = false
		d := NewDispatcherWithTransport(cfg, &captureTransport{})

		err := d.SendPurchaseAlert(ctx, testOrder(), alertCtx)
		assert.ErrorIs(t, err, ErrSkipped)
	})

	t.Run("missing recipient is skipped", func(t *testing.T) {
		cfg := enabled
		cfg.To = ""
		d := NewDispatcherWithTransport(cfg, &captureTransport{})

		err := d.SendPurchaseAlert(ctx, testOrder(), alertCtx)
		assert.ErrorIs(t, err, ErrSkipped)
	})

	t.Run("transport failure is not skipped", func(t *testing.T) {
		transport := &captureTransport{err: errors.New("connection refused")}
		d := NewDispatcherWithTransport(enabled, transport)

		err := d.SendPurchaseAlert(ctx, testOrder(), alertCtx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSkipped)
		assert.Contains(t, err.Error(), "ORD-20250101-120000-123")
	})
}

func TestSelectTransport(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantAPI  bool
		wantErr  bool
	}{
		{
			name:    "explicit api",
			cfg:     Config{Transport: TransportAPI, APIKey: "key", APIEndpoint: "https://mail.example.com/send"},
			wantAPI: true,
		},
		{
			name: "explicit smtp",
			cfg:  Config{Transport: TransportSMTP, SMTPHost: "smtp.example.com"},
		},
		{
			name:    "api key implies api transport",
			cfg:     Config{APIKey: "key", APIEndpoint: "https://mail.example.com/send"},
			wantAPI: true,
		},
		{
			name: "default is smtp",
			cfg:  Config{SMTPHost: "smtp.example.com"},
		},
		{
			name:    "api without endpoint fails",
			cfg:     Config{Transport: TransportAPI, APIKey: "key"},
			wantErr: true,
		},
		{
			name:    "unknown transport fails",
			cfg:     Config{Transport: "carrier-pigeon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport, err := selectTransport(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, isAPI := transport.(*apiTransport)
			assert.Equal(t, tt.wantAPI, isAPI)
		})
	}
}
