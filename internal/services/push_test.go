package services

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/chachabrian/delivery-backend/internal/config"
	"github.com/chachabrian/delivery-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, message *messaging.Message) (string, error) {
	f.sent = append(f.sent, message)
	return "projects/p/messages/1", f.err
}

func TestShipmentMessage(t *testing.T) {
	msg := shipmentMessage("riders", models.Shipment{
		ShipmentID:       12,
		SenderID:         1,
		ReceiverID:       2,
		Description:      "Documents",
		Image:            "https://img/1.png",
		PickupLocation:   "13.75,100.50",
		DeliveryLocation: "13.80,100.55",
	})

	assert.Equal(t, "riders", msg.Topic)
	assert.Equal(t, "Documents", msg.Notification.Body)
	assert.Equal(t, "https://img/1.png", msg.Notification.ImageURL)
	assert.Equal(t, map[string]string{
		"type":              EventShipmentCreated,
		"shipment_id":       "12",
		"sender_id":         "1",
		"receiver_id":       "2",
		"pickup_location":   "13.75,100.50",
		"delivery_location": "13.80,100.55",
	}, msg.Data)
	assert.Equal(t, "high", msg.Android.Priority)
}

func TestShipmentMessage_DefaultBody(t *testing.T) {
	msg := shipmentMessage("riders", models.Shipment{ShipmentID: 1})

	assert.NotEmpty(t, msg.Notification.Body)
}

func TestPushNotifier_ShipmentCreated(t *testing.T) {
	sender := &fakeSender{}
	p := &PushNotifier{client: sender, topic: "riders"}

	p.ShipmentCreated(context.Background(), models.Shipment{ShipmentID: 5})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "5", sender.sent[0].Data["shipment_id"])
}

func TestPushNotifier_SendFailureIsSwallowed(t *testing.T) {
	p := &PushNotifier{client: &fakeSender{err: errors.New("quota")}, topic: "riders"}

	assert.NotPanics(t, func() {
		p.ShipmentCreated(context.Background(), models.Shipment{ShipmentID: 5})
	})
}

func TestNewPushNotifier_RequiresTopic(t *testing.T) {
	_, err := NewPushNotifier(context.Background(), config.PushConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic is required")
}
