package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lumen/internal/db"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/lumen/internal/model"
	redisclient "github.com/Nixie-Tech-LLC/lumen/internal/redis"
)

type CampaignController struct {
	store db.Store
}

func NewCampaignController(store db.Store) *CampaignController {
	return &CampaignController{store: store}
}

func CampaignModule(store db.Store) api.Module {
	ctl := NewCampaignController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/campaigns", ctl.listCampaigns)
		c.GET("/campaigns/:id", ctl.getCampaign)
		c.POST("/campaigns", ctl.createCampaign)
		c.DELETE("/campaigns/:id", ctl.deleteCampaign)

		c.PUT("/campaigns/:id/status", ctl.updateStatus)
		c.PUT("/campaigns/:id/targets", ctl.setTargets)
		c.PUT("/campaigns/:id/entries", ctl.setEntries)
	})
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func campaignToResponse(c model.Campaign) packets.CampaignResponse {
	resp := packets.CampaignResponse{
		ID:          c.ID,
		Name:        c.Name,
		Status:      c.Status,
		Priority:    c.Priority,
		TargetType:  c.TargetType,
		StartDate:   formatDate(c.StartDate),
		EndDate:     formatDate(c.EndDate),
		StartMinute: c.StartMinute,
		EndMinute:   c.EndMinute,
		DaysOfWeek:  c.DaysOfWeek,
		DeviceIDs:   c.DeviceIDs,
		GroupIDs:    c.GroupIDs,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
	for _, e := range c.Entries {
		resp.Entries = append(resp.Entries, packets.CampaignEntryResponse{
			ID:        e.ID,
			ContentID: e.ContentID,
			Name:      e.Name,
			Weight:    e.Weight,
			Position:  e.Position,
		})
	}
	return resp
}

// A campaign mutation can change which devices it reaches, so cached
// resolutions are dropped wholesale and every display is told to re-poll.
func (cc *CampaignController) campaignsChanged(ctx *gin.Context) {
	redisclient.InvalidateAllResolutions(ctx)
	middleware.NotifyAllDevices()
}

// GET /api/admin/campaigns
func (cc *CampaignController) listCampaigns(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := cc.store.ListCampaigns()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list campaigns"}
	}

	response := make([]packets.CampaignResponse, 0, len(list))
	for _, c := range list {
		response = append(response, campaignToResponse(c))
	}
	return response, nil
}

// GET /api/admin/campaigns/:id
func (cc *CampaignController) getCampaign(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid campaign id"}
	}

	campaign, err := cc.store.GetCampaign(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to fetch campaign"}
	}
	if campaign == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "campaign not found"}
	}
	return campaignToResponse(*campaign), nil
}

// POST /api/admin/campaigns
func (cc *CampaignController) createCampaign(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateCampaignRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	created, err := cc.store.CreateCampaign(model.Campaign{
		Name:        request.Name,
		Status:      model.CampaignStatusDraft,
		Priority:    request.Priority,
		TargetType:  request.TargetType,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		StartMinute: request.StartMinute,
		EndMinute:   request.EndMinute,
		DaysOfWeek:  request.DaysOfWeek,
		CreatedBy:   user.ID,
	})
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to create campaign"}
	}

	log.Info().Int("campaign_id", created.ID).Str("name", created.Name).Msg("campaign created")
	return campaignToResponse(created), nil
}

// DELETE /api/admin/campaigns/:id
func (cc *CampaignController) deleteCampaign(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid campaign id"}
	}
	if err := cc.store.DeleteCampaign(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to delete campaign"}
	}
	cc.campaignsChanged(ctx)
	return gin.H{"deleted": id}, nil
}

// PUT /api/admin/campaigns/:id/status
func (cc *CampaignController) updateStatus(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid campaign id"}
	}

	var request packets.UpdateCampaignStatusRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := cc.store.UpdateCampaignStatus(id, request.Status); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to update status"}
	}

	cc.campaignsChanged(ctx)
	return gin.H{"id": id, "status": request.Status}, nil
}

// PUT /api/admin/campaigns/:id/targets
func (cc *CampaignController) setTargets(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid campaign id"}
	}

	var request packets.SetCampaignTargetsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := cc.store.SetCampaignTargets(id, request.DeviceIDs, request.GroupIDs); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to update targets"}
	}

	cc.campaignsChanged(ctx)
	return gin.H{"id": id}, nil
}

// PUT /api/admin/campaigns/:id/entries
func (cc *CampaignController) setEntries(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid campaign id"}
	}

	var request packets.SetCampaignEntriesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	entries := make([]model.CampaignContentEntry, 0, len(request.Entries))
	for _, e := range request.Entries {
		entries = append(entries, model.CampaignContentEntry{
			ContentID: e.ContentID,
			Weight:    e.Weight,
		})
	}
	if err := cc.store.SetCampaignEntries(id, entries); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to update entries"}
	}

	cc.campaignsChanged(ctx)
	return gin.H{"id": id}, nil
}
