package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const notificationQueue = "notification_queue"

type notification struct {
	Event      string    `json:"event"`
	BusinessID int64     `json:"businessID"`
	DraftID    int64     `json:"draftID,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Detail     any       `json:"detail,omitempty"`
}

// publishNotification hands a draft lifecycle event to the notification
// dispatch collaborator. Delivery is best effort: the consumers (email,
// SMS and the like) live outside this service, and a failed publish must
// not fail the request that triggered it.
func (h *Handler) publishNotification(event string, businessID, draftID int64, detail any) {
	body, err := json.Marshal(notification{
		Event:      event,
		BusinessID: businessID,
		DraftID:    draftID,
		Timestamp:  time.Now(),
		Detail:     detail,
	})
	if err != nil {
		slog.Error("cannot marshal notification", "event", event, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.notifyChannel.PublishWithContext(
		ctx,
		"",
		notificationQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		slog.Warn("cannot publish notification", "event", event, "error", err)
	}
}
