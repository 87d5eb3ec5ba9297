package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lumen/internal/db"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/middleware"
	redisclient "github.com/Nixie-Tech-LLC/lumen/internal/redis"
)

type PairingController struct {
	jwtSecret string
	store     db.Store
}

// PairingModule mounts the public pairing endpoint the TV client calls with
// the code shown by the admin dashboard.
func PairingModule(jwtSecret string, store db.Store) api.Module {
	ctl := &PairingController{jwtSecret: jwtSecret, store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/pair", ctl.pairDevice)
	})
}

// POST /api/tv/pair
func (p *PairingController) pairDevice(ctx *gin.Context) (any, *api.APIError) {
	var request packets.PairRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	deviceID, ok := redisclient.ConsumePairingCode(ctx, request.Code)
	if !ok {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "invalid or expired pairing code"}
	}

	device, err := p.store.GetDevice(deviceID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to fetch device"}
	}
	if device == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "device not found"}
	}

	if err := p.store.SetDevicePaired(deviceID, true); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to mark device paired"}
	}

	token, err := middleware.GenerateDeviceJWT(deviceID, p.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	log.Info().Int("device_id", deviceID).Msg("device paired")
	return packets.PairResponse{
		Token:    token,
		DeviceID: device.ID,
		Name:     device.Name,
		Timezone: device.Timezone,
	}, nil
}
