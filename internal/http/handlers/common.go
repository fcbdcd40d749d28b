package handlers

import (
	"database/sql"
	"net/http"
	"time"

	intconfig "ridesboard/internal/config"
	"ridesboard/internal/http/middleware"
	"ridesboard/internal/services"

	"github.com/gin-gonic/gin"
)

// API holds the services behind the HTTP routes.
type API struct {
	Rides    services.RideService
	Feed     *services.FeedService
	Auth     services.AuthService
	Print    services.PrintService
	Email    services.EmailRequestService
	DB       *sql.DB
	Location *time.Location
	Now      func() time.Time
}

func (a *API) now() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	if a.Location != nil {
		return now().In(a.Location)
	}
	return now()
}

func (a *API) db() *sql.DB {
	if a.DB != nil {
		return a.DB
	}
	return intconfig.DB
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
