package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/furari-app/furari/internal/api"
)

func (h *Handler) RequestUpload(c *gin.Context) {
	var req api.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FileName == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorBody{
			Code: api.CodeInternal, Message: "file name required",
		})
		return
	}

	key, uploadURL, publicURL, err := h.storage.RequestUpload(c.Request.Context(), currentUserID(c), req.FileName)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.UploadResponse{
		Key:       key,
		UploadURL: uploadURL,
		PublicURL: publicURL,
	})
}

func (h *Handler) ReverseGeocode(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorBody{
			Code: api.CodeInternal, Message: "lat and lng are required",
		})
		return
	}

	address, err := h.geocode.ReverseGeocode(c.Request.Context(), lat, lng)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.GeocodeResponse{Address: address})
}

func (h *Handler) MapConfig(c *gin.Context) {
	c.JSON(http.StatusOK, api.MapConfig{
		APIKey: h.cfg.MapAPIKey,
		MapID:  h.cfg.MapID,
	})
}
