// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// I18nMiddleware resolves the response language from Accept-Language.
// Arabic is the default; English is the only other supported locale.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")

		if lang != "" {
			// Handle cases like "ar-PS,ar;q=0.9,en;q=0.8"
			langs := strings.Split(lang, ",")
			if len(langs) > 0 {
				firstLang := strings.TrimSpace(strings.Split(langs[0], ";")[0])
				switch {
				case strings.HasPrefix(firstLang, "en"):
					lang = "en"
				default:
					lang = "ar"
				}
			}
		} else {
			lang = "ar"
		}

		c.Set("lang", lang)
		c.Next()
	}
}
