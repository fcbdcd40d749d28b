package handlers

import (
	"net/http"

	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
	"ridesboard/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func (a *API) ListEmailRequests(c *gin.Context) {
	svc := a.Email
	svc.RequestID = middleware.GetRequestID(c)
	reqs, err := svc.List(c.Request.Context(), c.DefaultQuery("destination", domain.AllDestinations))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (a *API) CreateEmailRequest(c *gin.Context) {
	var in models.EmailRideRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	rc, _ := middleware.GetRequestContext(c)
	svc := a.Email
	svc.RequestID = middleware.GetRequestID(c)
	saved, err := svc.Ingest(c.Request.Context(), rc, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}
