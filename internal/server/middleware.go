package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/aquacoop/aquacoop/internal/authctx"
	"github.com/aquacoop/aquacoop/internal/orgcontext"
)

// AuthRequired verifies the bearer token and stores the caller identity in
// the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userID, err := s.authSvc.VerifyToken(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		id, err := snowflake.ParseString(userID)
		if err != nil || id == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Request = c.Request.WithContext(authctx.WithUserID(c.Request.Context(), id))
		c.Next()
	}
}

// OrgContext resolves the caller's profile to its organization and injects
// it for downstream tenant scoping. Requests from unbound profiles pass
// through; org-scoped services reject them individually.
func (s *Server) OrgContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authctx.UserIDFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		prof, err := s.profileSvc.Resolve(c.Request.Context(), userID.String())
		if err != nil {
			AbortWithError(c, err)
			return
		}

		if prof.OrganizationID != "" {
			orgID, err := snowflake.ParseString(prof.OrganizationID)
			if err == nil && orgID != 0 {
				c.Request = c.Request.WithContext(orgcontext.WithOrgID(c.Request.Context(), orgID))
			}
		}

		c.Next()
	}
}
