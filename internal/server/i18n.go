package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aquacoop/aquacoop/internal/i18n"
)

func (s *Server) GetTranslations(c *gin.Context) {
	lang := strings.TrimSpace(c.Param("lang"))
	if !i18n.ValidLang(lang) {
		AbortWithError(c, newValidationError("lang", "invalid_lang", "unsupported language"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"lang":         lang,
		"rtl":          i18n.IsRTL(lang),
		"translations": i18n.Table(lang),
	}})
}
