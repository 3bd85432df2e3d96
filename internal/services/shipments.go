package services

import (
	"context"
	"fmt"

	"github.com/chachabrian/delivery-backend/internal/models"
	"github.com/chachabrian/delivery-backend/internal/storage"
	"gorm.io/gorm"
)

type CreateShipmentInput struct {
	SenderID         uint
	ReceiverID       uint
	Description      string
	PickupLocation   string
	DeliveryLocation string
	Image            Image
}

// ShipmentNotifier is told about every shipment after it is stored.
type ShipmentNotifier interface {
	ShipmentCreated(ctx context.Context, shipment models.Shipment)
}

const shipmentDetailColumns = `
	s.shipment_id, s.sender_id, s.receiver_id, s.description, s.status, s.image,
	s.pickup_location, s.delivery_location,
	sender.uid AS sender_uid, sender.name AS sender_name, sender.phone AS sender_phone,
	sender.image AS sender_image, sender.gps AS sender_gps,
	receiver.uid AS receiver_uid, receiver.name AS receiver_name, receiver.phone AS receiver_phone,
	receiver.image AS receiver_image, receiver.gps AS receiver_gps`

type ShipmentService struct {
	db       *gorm.DB
	storage  storage.Store
	notifier ShipmentNotifier
}

// NewShipmentService builds the service. A nil notifier disables shipment events.
func NewShipmentService(db *gorm.DB, store storage.Store, notifier ShipmentNotifier) *ShipmentService {
	if notifier == nil {
		notifier = Notifiers{}
	}
	return &ShipmentService{db: db, storage: store, notifier: notifier}
}

// Create uploads the shipment photo and stores the shipment as pending.
// Sender and receiver ids are stored as given.
func (s *ShipmentService) Create(ctx context.Context, in CreateShipmentInput) (models.Shipment, error) {
	obj, err := upload(ctx, s.storage, storage.FolderShipments, in.Image)
	if err != nil {
		return models.Shipment{}, err
	}

	shipment := models.Shipment{
		SenderID:         in.SenderID,
		ReceiverID:       in.ReceiverID,
		Description:      in.Description,
		Status:           models.ShipmentStatusPending,
		Image:            obj.URL,
		PickupLocation:   in.PickupLocation,
		DeliveryLocation: in.DeliveryLocation,
	}
	if err := s.db.WithContext(ctx).Create(&shipment).Error; err != nil {
		discardObject(ctx, s.storage, obj)
		return models.Shipment{}, fmt.Errorf("insert shipment: %w", err)
	}

	s.notifier.ShipmentCreated(ctx, shipment)
	return shipment, nil
}

func (s *ShipmentService) ListAll(ctx context.Context) ([]models.Shipment, error) {
	var shipments []models.Shipment
	if err := s.db.WithContext(ctx).Order("shipment_id").Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// ListBySender returns the sender's shipments joined with both parties.
func (s *ShipmentService) ListBySender(ctx context.Context, senderID uint) ([]models.ShipmentDetail, error) {
	return s.listDetails(ctx, "s.sender_id = ?", senderID)
}

// ListByReceiver returns the receiver's shipments joined with both parties.
func (s *ShipmentService) ListByReceiver(ctx context.Context, receiverID uint) ([]models.ShipmentDetail, error) {
	return s.listDetails(ctx, "s.receiver_id = ?", receiverID)
}

func (s *ShipmentService) listDetails(ctx context.Context, filter string, id uint) ([]models.ShipmentDetail, error) {
	var rows []models.ShipmentDetail
	err := s.db.WithContext(ctx).
		Table("shipments AS s").
		Select(shipmentDetailColumns).
		Joins("LEFT JOIN users AS sender ON s.sender_id = sender.uid").
		Joins("LEFT JOIN users AS receiver ON s.receiver_id = receiver.uid").
		Where(filter, id).
		Order("s.shipment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}
