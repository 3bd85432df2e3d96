package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/chachabrian/delivery-backend/internal/services"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// MaxImageBytes caps the uploaded file.
const MaxImageBytes int64 = 64 << 20

// multipartOverhead is the room left in the request body for form fields and part headers.
const multipartOverhead int64 = 1 << 20

const (
	uploadedImageKey = "uploadedImage"
	imageTypeMessage = "Only .png, .jpg, and .jpeg files are allowed!"
	msgFileTooLarge  = "File too large."
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

// ImageUpload reads the multipart file in field, checks its declared and sniffed
// type and stores it for the handler. A request without the file is passed on
// untouched so the handler can answer.
func ImageUpload(field string, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

		fh, err := c.FormFile(field)
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
				c.Next()
			case errors.As(err, &tooLarge):
				rejectUpload(c, msgFileTooLarge, fmt.Errorf("limit is %d bytes", maxBytes))
			default:
				rejectUpload(c, "Invalid multipart form.", err)
			}
			return
		}

		if fh.Size > maxBytes {
			rejectUpload(c, msgFileTooLarge, fmt.Errorf("file is %d bytes, limit is %d bytes", fh.Size, maxBytes))
			return
		}

		declared := fh.Header.Get("Content-Type")
		if !allowedImageTypes[declared] {
			rejectUpload(c, imageTypeMessage, fmt.Errorf("declared content type %q", declared))
			return
		}

		f, err := fh.Open()
		if err != nil {
			rejectUpload(c, "Invalid multipart form.", err)
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			rejectUpload(c, "Invalid multipart form.", err)
			return
		}

		detected := mimetype.Detect(data)
		if !detected.Is("image/png") && !detected.Is("image/jpeg") {
			rejectUpload(c, imageTypeMessage, fmt.Errorf("file content is %s", detected.String()))
			return
		}

		c.Set(uploadedImageKey, services.Image{
			Filename:    fh.Filename,
			ContentType: detected.String(),
			Data:        data,
		})
		c.Next()
	}
}

// UploadedImage returns the image accepted by ImageUpload.
func UploadedImage(c *gin.Context) (services.Image, bool) {
	v, ok := c.Get(uploadedImageKey)
	if !ok {
		return services.Image{}, false
	}
	img, ok := v.(services.Image)
	return img, ok
}

func rejectUpload(c *gin.Context, message string, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"message": message,
		"error":   err.Error(),
	})
}
