package models

import "time"

type ShipmentStatus int

// ShipmentStatusPending is the only status assigned by this service.
const ShipmentStatusPending ShipmentStatus = 1

// Shipment links a sending user to a receiving user. Neither id is
// enforced as a foreign key.
type Shipment struct {
	ShipmentID       uint           `gorm:"column:shipment_id;primaryKey;autoIncrement" json:"shipment_id"`
	SenderID         uint           `gorm:"column:sender_id;index;not null" json:"sender_id"`
	ReceiverID       uint           `gorm:"column:receiver_id;index;not null" json:"receiver_id"`
	Description      string         `gorm:"column:description" json:"description"`
	Status           ShipmentStatus `gorm:"column:status;not null" json:"status"`
	Image            string         `gorm:"column:image" json:"image"`
	PickupLocation   string         `gorm:"column:pickup_location" json:"pickup_location"`
	DeliveryLocation string         `gorm:"column:delivery_location" json:"delivery_location"`
	CreatedAt        time.Time      `gorm:"column:created_at" json:"createdAt"`
}

func (Shipment) TableName() string {
	return "shipments"
}

// ShipmentDetail is a shipment joined with its sender and receiver.
// Party fields are nil when the referenced user does not exist.
type ShipmentDetail struct {
	ShipmentID       uint           `gorm:"column:shipment_id" json:"shipment_id"`
	SenderID         uint           `gorm:"column:sender_id" json:"sender_id"`
	ReceiverID       uint           `gorm:"column:receiver_id" json:"receiver_id"`
	Description      string         `gorm:"column:description" json:"description"`
	Status           ShipmentStatus `gorm:"column:status" json:"status"`
	Image            string         `gorm:"column:image" json:"image"`
	PickupLocation   string         `gorm:"column:pickup_location" json:"pickup_location"`
	DeliveryLocation string         `gorm:"column:delivery_location" json:"delivery_location"`

	SenderUID   *uint   `gorm:"column:sender_uid" json:"sender_uid"`
	SenderName  *string `gorm:"column:sender_name" json:"sender_name"`
	SenderPhone *string `gorm:"column:sender_phone" json:"sender_phone"`
	SenderImage *string `gorm:"column:sender_image" json:"sender_image"`
	SenderGPS   *string `gorm:"column:sender_gps" json:"sender_gps"`

	ReceiverUID   *uint   `gorm:"column:receiver_uid" json:"receiver_uid"`
	ReceiverName  *string `gorm:"column:receiver_name" json:"receiver_name"`
	ReceiverPhone *string `gorm:"column:receiver_phone" json:"receiver_phone"`
	ReceiverImage *string `gorm:"column:receiver_image" json:"receiver_image"`
	ReceiverGPS   *string `gorm:"column:receiver_gps" json:"receiver_gps"`
}
