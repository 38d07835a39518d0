package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/server/models"
	"github.com/furari-app/furari/internal/timex"
)

func (h *Handler) ListRecords(c *gin.Context) {
	snapshot, err := h.records.Snapshot(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) CreateRecord(c *gin.Context) {
	var req api.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorBody{
			Code: api.CodeInternal, Message: "malformed record",
		})
		return
	}

	ownerID := currentUserID(c)
	created, err := h.records.Create(c.Request.Context(), &models.TravelRecord{
		OwnerID:   ownerID,
		Lat:       req.Location.Lat,
		Lng:       req.Location.Lng,
		Address:   req.Address,
		ImageURL:  req.ImageURL,
		Comment:   req.Comment,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAPIRecord(created))
}

func (h *Handler) UpdateRecord(c *gin.Context) {
	var req api.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorBody{
			Code: api.CodeInternal, Message: "malformed record",
		})
		return
	}

	updated, err := h.records.Update(c.Request.Context(), currentUserID(c), c.Param("id"), req.Comment, req.ImageURL)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAPIRecord(updated))
}

func (h *Handler) DeleteRecord(c *gin.Context) {
	if err := h.records.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toAPIRecord(r *models.TravelRecord) api.Record {
	return api.Record{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Location:  api.Location{Lat: r.Lat, Lng: r.Lng},
		Address:   r.Address,
		ImageURL:  r.ImageURL,
		Comment:   r.Comment,
		Timestamp: r.Timestamp,
		CreatedAt: timex.NewInstant(r.CreatedAt),
	}
}
