package handlers

import (
	"net/http"

	"ridesboard/internal/http/middleware"
	"ridesboard/internal/services"

	"github.com/gin-gonic/gin"
)

func (a *API) ListRides(c *gin.Context) {
	rides, err := a.Rides.WithRequestID(middleware.GetRequestID(c)).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rides)
}

func (a *API) CreateRide(c *gin.Context) {
	var in services.RideInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rc, _ := middleware.GetRequestContext(c)
	ride, err := a.Rides.WithRequestID(middleware.GetRequestID(c)).Create(c.Request.Context(), rc, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ride)
}

func (a *API) DeleteRide(c *gin.Context) {
	rc, _ := middleware.GetRequestContext(c)
	if err := a.Rides.WithRequestID(middleware.GetRequestID(c)).Delete(c.Request.Context(), rc, c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ride deleted", "id": c.Param("id")})
}
