package handlers

import (
	"net/http"

	"ridesboard/internal/domain"
	"ridesboard/internal/http/middleware"
	"ridesboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type sessionRequest struct {
	Name string `json:"name"`
}

type adminLoginRequest struct {
	Pin string `json:"pin"`
}

type sessionResponse struct {
	Token string `json:"token"`
	domain.RequestContext
}

// CreateSession issues an anonymous user token. The body is optional.
func (a *API) CreateSession(c *gin.Context) {
	var req sessionRequest
	if c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}
	tok, rc, err := a.Auth.NewSession(req.Name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "auth", "session", "user="+rc.UserID)
	c.JSON(http.StatusCreated, sessionResponse{Token: tok, RequestContext: rc})
}

// AdminLogin upgrades the caller's session to admin after a PIN check.
func (a *API) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	current, _ := middleware.GetRequestContext(c)
	tok, rc, err := a.Auth.AdminLogin(req.Pin, current)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "admin_login_failed", err.Error())
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "auth", "admin_login", "user="+rc.UserID)
	c.JSON(http.StatusOK, sessionResponse{Token: tok, RequestContext: rc})
}

// Me echoes the identity of the presented token.
func (a *API) Me(c *gin.Context) {
	rc, _ := middleware.GetRequestContext(c)
	c.JSON(http.StatusOK, rc)
}
