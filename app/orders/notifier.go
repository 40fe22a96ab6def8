package orders

import (
	"log/slog"

	"github.com/gadgetline/storebot/models"
)

// LogNotifier records status changes to the log. It stands in for the chat
// front-end's real delivery channel when none is wired.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) OrderStatusChanged(order *models.Order) error {
	n.log.Info("order status changed",
		"order_id", order.ID,
		"reference", order.Reference,
		"user_id", order.UserID,
		"status", string(order.Status))
	return nil
}
