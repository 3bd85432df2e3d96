package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chachabrian/delivery-backend/internal/middleware"
	"github.com/chachabrian/delivery-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AddRider registers a rider from a multipart form carrying the profile image.
func AddRider(svc *services.RiderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		img, ok := middleware.UploadedImage(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgNoFile, nil)
			return
		}

		url, err := svc.Register(c.Request.Context(), services.RegisterRiderInput{
			Name:                c.PostForm("name"),
			Phone:               c.PostForm("phone"),
			Password:            c.PostForm("password"),
			VehicleRegistration: c.PostForm("vehicleRegistration"),
			Image:               img,
		})
		if err != nil {
			respondRegisterError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Rider added successfully.",
			"imageURL": url,
		})
	}
}

func GetRiders(svc *services.RiderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		riders, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Error retrieving riders", err)
			return
		}
		if len(riders) == 0 {
			respondError(c, http.StatusNotFound, "No riders found.", nil)
			return
		}
		c.JSON(http.StatusOK, riders)
	}
}

func LoginRider(svc *services.RiderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, http.StatusBadRequest, msgLoginRequired, nil)
			return
		}

		rider, err := svc.Authenticate(c.Request.Context(), input.Phone, input.Password)
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(c, http.StatusUnauthorized, "No rider found with this phone number.", nil)
		case errors.Is(err, services.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, msgInvalidPass, nil)
		case err != nil:
			respondError(c, http.StatusInternalServerError, msgProcessing, err)
		default:
			c.JSON(http.StatusOK, gin.H{"message": msgLoginSucceeded, "rider": rider})
		}
	}
}

func GetRider(svc *services.RiderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid, err := strconv.ParseUint(c.Param("rid"), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid rider id.", err)
			return
		}

		rider, err := svc.GetByID(c.Request.Context(), uint(rid))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				respondError(c, http.StatusNotFound, "Rider not found.", nil)
				return
			}
			respondError(c, http.StatusInternalServerError, "Error retrieving rider", err)
			return
		}
		c.JSON(http.StatusOK, rider)
	}
}
