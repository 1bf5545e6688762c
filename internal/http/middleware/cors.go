package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// CORS allows the dashboard origins. "*" opens every origin but then
// credentials are not allowed.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	allowed := []string{}
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch {
		case o == "*":
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
		case strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://"):
			allowed = append(allowed, o)
		case o != "":
			log.Printf("[CORS] origin diabaikan: %q", o)
		}
	}
	if !cfg.AllowAllOrigins {
		if len(allowed) == 0 {
			allowed = defaultOrigins
		}
		cfg.AllowOrigins = allowed
	}
	return cors.New(cfg)
}
