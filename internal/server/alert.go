package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
)

func (s *Server) CreateAlert(c *gin.Context) {
	var req alertdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.alertSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAlerts(c *gin.Context) {
	var query alertdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.alertSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MarkAlertRead(c *gin.Context) {
	if err := s.alertSvc.MarkRead(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"read": true}})
}

func (s *Server) MarkAllAlertsRead(c *gin.Context) {
	if err := s.alertSvc.MarkAllRead(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"read": true}})
}
