// Package notification sends customer emails about their orders. Sending is
// always best effort: callers dispatch through a Dispatcher and never wait
// on the result.
package notification

import (
	"context"

	"storefront-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Recipient struct {
	Name  string
	Email string
}

// DisplayName falls back to "Customer" when the user has no name.
func (r Recipient) DisplayName() string {
	if r.Name == "" {
		return "Customer"
	}
	return r.Name
}

type LineItem struct {
	Name       string
	Size       string
	Quantity   int
	FinalPrice decimal.Decimal
}

type OrderPlaced struct {
	To                Recipient
	OrderID           string
	Items             []LineItem
	Total             decimal.Decimal
	EstimatedDelivery string
}

type StatusChanged struct {
	To                Recipient
	OrderID           string
	Status            string
	EstimatedDelivery string
}

type Notifier interface {
	OrderPlaced(ctx context.Context, msg OrderPlaced) error
	OrderStatusChanged(ctx context.Context, msg StatusChanged) error
}

// LogNotifier only logs. It stands in for the mailer when SMTP is not
// configured.
type LogNotifier struct{}

func (LogNotifier) OrderPlaced(ctx context.Context, msg OrderPlaced) error {
	logger.FromCtx(ctx).Info("order confirmation (mail disabled)",
		zap.String("to", msg.To.Email),
		zap.String("order_id", msg.OrderID),
		zap.String("total", msg.Total.String()),
	)
	return nil
}

func (LogNotifier) OrderStatusChanged(ctx context.Context, msg StatusChanged) error {
	logger.FromCtx(ctx).Info("order status mail (mail disabled)",
		zap.String("to", msg.To.Email),
		zap.String("order_id", msg.OrderID),
		zap.String("status", msg.Status),
	)
	return nil
}
