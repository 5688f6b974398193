package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	subscriberdomain "github.com/aquacoop/aquacoop/internal/subscriber/domain"
	"github.com/aquacoop/aquacoop/pkg/db/pagination"
)

func (s *Server) CreateSubscriber(c *gin.Context) {
	var req subscriberdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.subscriberSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSubscribers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status string `form:"status"`
		Search string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.subscriberSvc.List(c.Request.Context(), subscriberdomain.ListRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Status:    strings.TrimSpace(query.Status),
		Search:    strings.TrimSpace(query.Search),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSubscriber(c *gin.Context) {
	resp, err := s.subscriberSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSubscriber(c *gin.Context) {
	var req subscriberdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.subscriberSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSubscriber(c *gin.Context) {
	if err := s.subscriberSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
