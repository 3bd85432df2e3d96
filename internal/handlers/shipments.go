package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chachabrian/delivery-backend/internal/middleware"
	"github.com/chachabrian/delivery-backend/internal/models"
	"github.com/chachabrian/delivery-backend/internal/services"
	"github.com/gin-gonic/gin"
)

const msgFetchShipments = "Error fetching shipments"

func CreateShipment(svc *services.ShipmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		img, ok := middleware.UploadedImage(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgNoFile, nil)
			return
		}

		senderID, err := formID(c, "sender_id")
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid sender_id.", err)
			return
		}
		receiverID, err := formID(c, "receiver_id")
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid receiver_id.", err)
			return
		}

		shipment, err := svc.Create(c.Request.Context(), services.CreateShipmentInput{
			SenderID:         senderID,
			ReceiverID:       receiverID,
			Description:      c.PostForm("description"),
			PickupLocation:   c.PostForm("pickup_location"),
			DeliveryLocation: c.PostForm("delivery_location"),
			Image:            img,
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, msgProcessing, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"shipment_id": shipment.ShipmentID,
			"message":     "Shipment created successfully.",
		})
	}
}

func GetShipments(svc *services.ShipmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shipments, err := svc.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusInternalServerError, msgFetchShipments, err)
			return
		}
		if shipments == nil {
			shipments = []models.Shipment{}
		}
		c.JSON(http.StatusOK, shipments)
	}
}

func GetShipmentsBySender(svc *services.ShipmentService) gin.HandlerFunc {
	return shipmentDetails("senderId", "No shipments found for this sender.", svc.ListBySender)
}

func GetShipmentsByReceiver(svc *services.ShipmentService) gin.HandlerFunc {
	return shipmentDetails("receiverId", "No shipments found for this receiver.", svc.ListByReceiver)
}

type detailLister func(ctx context.Context, id uint) ([]models.ShipmentDetail, error)

func shipmentDetails(param, notFound string, list detailLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s.", param), err)
			return
		}

		shipments, err := list(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				respondError(c, http.StatusNotFound, notFound, nil)
				return
			}
			respondError(c, http.StatusInternalServerError, msgFetchShipments, err)
			return
		}
		c.JSON(http.StatusOK, shipments)
	}
}

// formID parses a required unsigned id from the posted form.
func formID(c *gin.Context, field string) (uint, error) {
	v, err := strconv.ParseUint(c.PostForm(field), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a positive integer", field)
	}
	return uint(v), nil
}
