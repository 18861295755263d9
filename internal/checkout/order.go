package checkout

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"quote-storefront/internal/model"

	"github.com/google/uuid"
)

const nameFallback = "N/A"

// NewOrderNumber takes the first 8 characters of a random UUID, upper-cased.
// Uniqueness is probabilistic; nothing checks for collisions.
func NewOrderNumber() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// OrderSummary formats an order for the chat channel (Telegram HTML).
func OrderSummary(order *model.Order) string {
	name := order.CustomerName
	if name == "" {
		name = nameFallback
	}

	lines := make([]string, len(order.Items))
	for i, item := range order.Items {
		lines[i] = fmt.Sprintf("• %s - %s", html.EscapeString(item.Name), model.FormatUSD(item.Price))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🛍️ <b>New Order #%s</b>\n", order.Number)
	fmt.Fprintf(&b, "⏰ <b>Order Time:</b> %s\n\n", order.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	b.WriteString("👤 <b>Customer Information:</b>\n")
	fmt.Fprintf(&b, "• Email: %s\n", html.EscapeString(order.CustomerEmail))
	fmt.Fprintf(&b, "• Name: %s\n\n", html.EscapeString(name))
	b.WriteString("🛒 <b>Order Items:</b>\n")
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\n💰 <b>Total Amount:</b> %s\n\n", model.FormatUSD(order.Total))
	b.WriteString("📱 <b>Contact:</b> Customer will contact via Telegram for payment\n")
	return b.String()
}

// Timer holds the payment step in its processing state before confirmation.
type Timer interface {
	Wait(ctx context.Context) error
}

// Delay waits for a fixed duration or until ctx is done.
type Delay time.Duration

func (d Delay) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
