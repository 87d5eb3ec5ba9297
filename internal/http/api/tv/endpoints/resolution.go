package endpoints

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lumen/internal/db"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/lumen/internal/model"
	redisclient "github.com/Nixie-Tech-LLC/lumen/internal/redis"
	"github.com/Nixie-Tech-LLC/lumen/internal/resolver"
)

type ResolutionController struct {
	store  db.Store
	engine *resolver.Resolver
}

func NewResolutionController(store db.Store) *ResolutionController {
	return &ResolutionController{
		store:  store,
		engine: resolver.New(store),
	}
}

// ResolutionModule mounts the polling endpoint devices call each heartbeat.
func ResolutionModule(store db.Store) api.Module {
	ctl := NewResolutionController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.DEVICE_GET("/resolution", ctl.getResolution)
	})
}

// GET /api/tv/resolution
func (r *ResolutionController) getResolution(ctx *gin.Context, deviceID int) (any, *api.APIError) {
	// Cache hit pins the weighted pick for the TTL as well, which is fine:
	// the pick only needs to be proportional over many draws, not per poll.
	if cached, ok := redisclient.GetCachedResolution(ctx, deviceID); ok {
		return json.RawMessage(cached), nil
	}

	result := r.engine.Resolve(deviceID)
	response := buildResolutionResponse(result)

	if payload, err := json.Marshal(response); err == nil {
		redisclient.CacheResolution(ctx, deviceID, payload)
	} else {
		log.Warn().Err(err).Int("device_id", deviceID).Msg("failed to serialize resolution for cache")
	}
	return response, nil
}

func buildResolutionResponse(result model.ResolutionResult) packets.ResolutionResponse {
	response := packets.ResolutionResponse{
		Type:     string(result.Type),
		Reason:   result.Reason,
		Priority: result.Priority,
	}

	switch content := result.Content.(type) {
	case model.Campaign:
		campaign := &packets.CampaignContent{
			ID:       content.ID,
			Name:     content.Name,
			Priority: content.Priority,
		}
		if picked := resolver.NewPicker(nil).Pick(content.Entries); picked != nil {
			campaign.PickedContentID = picked.ContentID
			campaign.PickedName = picked.Name
		}
		response.Campaign = campaign
	case model.ScheduleTimeBlock:
		response.Block = &packets.BlockContent{
			ID:          content.ID,
			PlaylistID:  content.PlaylistID,
			StartMinute: content.StartMinute,
			EndMinute:   content.EndMinute,
		}
	case model.Layout:
		response.Layout = &packets.LayoutContent{ID: content.ID, Name: content.Name}
	case model.Playlist:
		response.Playlist = &packets.PlaylistContent{ID: content.ID, Name: content.Name}
	}
	return response
}
