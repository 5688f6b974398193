package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquacoop/aquacoop/internal/authctx"
	profiledomain "github.com/aquacoop/aquacoop/internal/profile/domain"
)

func (s *Server) GetProfile(c *gin.Context) {
	userID, ok := authctx.UserIDFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.profileSvc.Resolve(c.Request.Context(), userID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProfile(c *gin.Context) {
	userID, ok := authctx.UserIDFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req profiledomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.UserID = userID.String()

	resp, err := s.profileSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
