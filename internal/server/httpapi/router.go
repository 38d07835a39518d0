package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes registered. Everything
// under /api except the auth endpoints requires a Bearer token.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", h.SignUp)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/reset/request", h.RequestReset)
		authGroup.POST("/reset/confirm", h.ConfirmReset)
	}

	secured := r.Group("/api", AuthRequired([]byte(h.cfg.SecretKey)))
	{
		secured.GET("/records", h.ListRecords)
		secured.POST("/records", h.CreateRecord)
		secured.PATCH("/records/:id", h.UpdateRecord)
		secured.DELETE("/records/:id", h.DeleteRecord)
		secured.GET("/records/watch", h.WatchRecords)

		secured.POST("/uploads", h.RequestUpload)
		secured.GET("/geocode/reverse", h.ReverseGeocode)
		secured.GET("/mapconfig", h.MapConfig)
	}

	return r
}
