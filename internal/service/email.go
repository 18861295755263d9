package service

import (
	"context"
	"fmt"
	"quote-storefront/internal/model"
	"strings"

	"go.uber.org/zap"
)

// EmailService sends the order confirmation. The current implementation only
// logs the message; it never fails.
type EmailService interface {
	SendOrderConfirmation(ctx context.Context, order *model.Order)
}

type logEmailServiceImpl struct {
	log     *zap.Logger
	chatURL string
}

func NewLogEmailService(log *zap.Logger, chatURL string) EmailService {
	return &logEmailServiceImpl{
		log:     log,
		chatURL: chatURL,
	}
}

func (s *logEmailServiceImpl) SendOrderConfirmation(ctx context.Context, order *model.Order) {
	subject := fmt.Sprintf("Order Confirmation #%s", order.Number)

	s.log.Info("order confirmation email",
		zap.String("to", order.CustomerEmail),
		zap.String("subject", subject),
		zap.String("body", ConfirmationEmailBody(order, s.chatURL)),
	)
}

func ConfirmationEmailBody(order *model.Order, chatURL string) string {
	lines := make([]string, len(order.Items))
	for i, item := range order.Items {
		lines[i] = fmt.Sprintf("- %s: %s", item.Name, model.FormatUSD(item.Price))
	}

	var b strings.Builder
	b.WriteString("Thank you for your order!\n\n")
	b.WriteString("Order Details:\n")
	fmt.Fprintf(&b, "Order Number: %s\n", order.Number)
	fmt.Fprintf(&b, "Total Amount: %s\n\n", model.FormatUSD(order.Total))
	b.WriteString("Items:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nPlease contact us on Telegram for payment instructions.\n")
	b.WriteString(chatURL)
	return b.String()
}
