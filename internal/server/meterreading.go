package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	meterreadingdomain "github.com/aquacoop/aquacoop/internal/meterreading/domain"
)

func (s *Server) CreateMeterReading(c *gin.Context) {
	var req meterreadingdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.meterReadingSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAllMeterReadings(c *gin.Context) {
	resp, err := s.meterReadingSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMeterReadings(c *gin.Context) {
	resp, err := s.meterReadingSvc.ListBySubscriber(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
