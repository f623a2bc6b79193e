package server

import (
	"net/http"
	"strings"

	appdomain "github.com/collectpay/collectpay/internal/app/domain"
	"github.com/gin-gonic/gin"
)

type createAppRequest struct {
	AppName    string `json:"appName"`
	AppLogoURL string `json:"appLogoUrl"`
}

type updateAppRequest struct {
	AppName    *string `json:"appName"`
	AppLogoURL *string `json:"appLogoUrl"`
}

func (s *Server) CreateApp(c *gin.Context) {
	var req createAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	app, err := s.appSvc.Create(c.Request.Context(), appdomain.CreateAppRequest{
		AppName:    req.AppName,
		AppLogoURL: req.AppLogoURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": app})
}

func (s *Server) ListApps(c *gin.Context) {
	apps, err := s.appSvc.List(c.Request.Context(), scopeFromContext(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(apps), "data": apps})
}

func (s *Server) GetApp(c *gin.Context) {
	appID := strings.TrimSpace(c.Param("appId"))

	app, err := s.appSvc.GetByAppID(c.Request.Context(), scopeFromContext(c), appID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": app})
}

func (s *Server) UpdateApp(c *gin.Context) {
	appID := strings.TrimSpace(c.Param("appId"))

	var req updateAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	app, err := s.appSvc.Update(c.Request.Context(), scopeFromContext(c), appID, appdomain.UpdateAppRequest{
		AppName:    req.AppName,
		AppLogoURL: req.AppLogoURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": app})
}

func (s *Server) DeleteApp(c *gin.Context) {
	appID := strings.TrimSpace(c.Param("appId"))

	if err := s.appSvc.Delete(c.Request.Context(), scopeFromContext(c), appID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"appId": appID, "deleted": true}})
}
