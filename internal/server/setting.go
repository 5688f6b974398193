package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	settingdomain "github.com/aquacoop/aquacoop/internal/setting/domain"
)

func (s *Server) ListSettings(c *gin.Context) {
	resp, err := s.settingSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSetting(c *gin.Context) {
	resp, err := s.settingSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("key")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpsertSetting(c *gin.Context) {
	var value json.RawMessage
	if err := c.ShouldBindJSON(&value); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.settingSvc.Upsert(c.Request.Context(), settingdomain.UpsertRequest{
		Key:   strings.TrimSpace(c.Param("key")),
		Value: value,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
