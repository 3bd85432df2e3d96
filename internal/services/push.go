package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/chachabrian/delivery-backend/internal/config"
	"github.com/chachabrian/delivery-backend/internal/logger"
	"github.com/chachabrian/delivery-backend/internal/models"
	"google.golang.org/api/option"
)

const pushChannelID = "delivery_shipments"

type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushNotifier sends a Firebase Cloud Messaging notification to a topic
// for every new shipment. Rider apps subscribe to the topic.
type PushNotifier struct {
	client messageSender
	topic  string
}

func NewPushNotifier(ctx context.Context, cfg config.PushConfig) (*PushNotifier, error) {
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, fmt.Errorf("firebase messaging topic is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &PushNotifier{client: client, topic: cfg.Topic}, nil
}

func (p *PushNotifier) ShipmentCreated(ctx context.Context, shipment models.Shipment) {
	response, err := p.client.Send(ctx, shipmentMessage(p.topic, shipment))
	if err != nil {
		logger.Log.Warnw("failed to send shipment notification", "shipment_id", shipment.ShipmentID, "topic", p.topic, "error", err)
		return
	}
	logger.Log.Debugw("shipment notification sent", "shipment_id", shipment.ShipmentID, "response", response)
}

func shipmentMessage(topic string, shipment models.Shipment) *messaging.Message {
	body := shipment.Description
	if body == "" {
		body = "A new shipment is waiting for pickup."
	}

	badge := 1
	return &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title:    "New shipment",
			Body:     body,
			ImageURL: shipment.Image,
		},
		Data: map[string]string{
			"type":              EventShipmentCreated,
			"shipment_id":       strconv.FormatUint(uint64(shipment.ShipmentID), 10),
			"sender_id":         strconv.FormatUint(uint64(shipment.SenderID), 10),
			"receiver_id":       strconv.FormatUint(uint64(shipment.ReceiverID), 10),
			"pickup_location":   shipment.PickupLocation,
			"delivery_location": shipment.DeliveryLocation,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID:    pushChannelID,
				Priority:     messaging.PriorityHigh,
				Sound:        "default",
				DefaultSound: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound:            "default",
					Badge:            &badge,
					ContentAvailable: true,
				},
			},
		},
	}
}
