package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chachabrian/delivery-backend/internal/middleware"
	"github.com/chachabrian/delivery-backend/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	msgNoFile         = "No file uploaded."
	msgPhoneInUse     = "This number is already in use."
	msgPasswordLong   = "Password must be at most 72 bytes."
	msgProcessing     = "Error processing request"
	msgLoginRequired  = "Phone number and password are required."
	msgInvalidPass    = "Invalid password."
	msgLoginSucceeded = "Login successful."
)

type LoginInput struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AddUser registers a user from a multipart form carrying the profile image.
func AddUser(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		img, ok := middleware.UploadedImage(c)
		if !ok {
			respondError(c, http.StatusBadRequest, msgNoFile, nil)
			return
		}

		url, err := svc.Register(c.Request.Context(), services.RegisterUserInput{
			Name:     c.PostForm("name"),
			Phone:    c.PostForm("phone"),
			Password: c.PostForm("password"),
			Address:  c.PostForm("address"),
			GPS:      c.PostForm("gps"),
			Image:    img,
		})
		if err != nil {
			respondRegisterError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "File uploaded successfully and user data added.",
			"filename": url,
		})
	}
}

func GetUsers(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Error retrieving users", err)
			return
		}
		if len(users) == 0 {
			respondError(c, http.StatusNotFound, "No users found.", nil)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func LoginUser(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, http.StatusBadRequest, msgLoginRequired, nil)
			return
		}

		user, err := svc.Authenticate(c.Request.Context(), input.Phone, input.Password)
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(c, http.StatusUnauthorized, "No user found with this phone number.", nil)
		case errors.Is(err, services.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, msgInvalidPass, nil)
		case err != nil:
			respondError(c, http.StatusInternalServerError, msgProcessing, err)
		default:
			c.JSON(http.StatusOK, gin.H{"message": msgLoginSucceeded, "user": user})
		}
	}
}

// SearchUsers finds users whose phone contains :phone, leaving out the caller :uid.
func SearchUsers(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := strconv.ParseUint(c.Param("uid"), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid uid.", err)
			return
		}

		users, err := svc.SearchByPhone(c.Request.Context(), c.Param("phone"), uint(uid))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				respondError(c, http.StatusNotFound, "No users found", nil)
				return
			}
			respondError(c, http.StatusInternalServerError, "Internal Server Error", err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// respondRegisterError maps a user or rider registration failure to a response.
func respondRegisterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPhoneInUse):
		respondError(c, http.StatusBadRequest, msgPhoneInUse, nil)
	case errors.Is(err, services.ErrPasswordTooLong):
		respondError(c, http.StatusBadRequest, msgPasswordLong, err)
	default:
		respondError(c, http.StatusInternalServerError, msgProcessing, err)
	}
}
