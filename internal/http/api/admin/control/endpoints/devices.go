package endpoints

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/lumen/internal/db"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/lumen/internal/model"
	redisclient "github.com/Nixie-Tech-LLC/lumen/internal/redis"
)

type DeviceController struct {
	store db.Store
}

func NewDeviceController(store db.Store) *DeviceController {
	return &DeviceController{store: store}
}

func DeviceModule(store db.Store) api.Module {
	ctl := NewDeviceController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/devices", ctl.listDevices)
		c.GET("/devices/:id", ctl.getDevice)
		c.POST("/devices", ctl.createDevice)
		c.DELETE("/devices/:id", ctl.deleteDevice)

		// cascade assignments (schedule / layout / playlist references)
		c.PUT("/devices/:id/assignments", ctl.assignDevice)

		// pairing code for the TV client to exchange for a device token
		c.POST("/devices/:id/pairing_code", ctl.issuePairingCode)

		// groups
		c.GET("/groups", ctl.listGroups)
		c.POST("/groups", ctl.createGroup)
		c.POST("/groups/:id/devices", ctl.addGroupMember)
		c.DELETE("/groups/:id/devices/:device_id", ctl.removeGroupMember)
	})
}

func deviceToResponse(d model.Device) packets.DeviceResponse {
	return packets.DeviceResponse{
		ID:         d.ID,
		Name:       d.Name,
		Location:   d.Location,
		Timezone:   d.Timezone,
		ScheduleID: d.ScheduleID,
		LayoutID:   d.LayoutID,
		PlaylistID: d.PlaylistID,
		Paired:     d.Paired,
		GroupIDs:   d.GroupIDs,
		CreatedAt:  d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  d.UpdatedAt.Format(time.RFC3339),
	}
}

// GET /api/admin/devices
func (d *DeviceController) listDevices(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := d.store.ListDevices()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list devices"}
	}

	response := make([]packets.DeviceResponse, 0, len(all))
	for _, dev := range all {
		response = append(response, deviceToResponse(dev))
	}
	return response, nil
}

// GET /api/admin/devices/:id
func (d *DeviceController) getDevice(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid device id"}
	}

	device, err := d.store.GetDevice(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to fetch device"}
	}
	if device == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "device not found"}
	}
	return deviceToResponse(*device), nil
}

// POST /api/admin/devices
func (d *DeviceController) createDevice(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateDeviceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	created, err := d.store.CreateDevice(request.Name, request.Location, request.Timezone, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to create device"}
	}
	return deviceToResponse(created), nil
}

// DELETE /api/admin/devices/:id
func (d *DeviceController) deleteDevice(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid device id"}
	}
	if err := d.store.DeleteDevice(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to delete device"}
	}
	redisclient.InvalidateResolution(ctx, id)
	return gin.H{"deleted": id}, nil
}

// PUT /api/admin/devices/:id/assignments
func (d *DeviceController) assignDevice(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid device id"}
	}

	var request packets.AssignDeviceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := d.store.UpdateDeviceAssignments(id, request.ScheduleID, request.LayoutID, request.PlaylistID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to update assignments"}
	}

	redisclient.InvalidateResolution(ctx, id)
	middleware.NotifyDeviceRefresh(id)

	device, err := d.store.GetDevice(id)
	if err != nil || device == nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to fetch updated device"}
	}
	return deviceToResponse(*device), nil
}

// POST /api/admin/devices/:id/pairing_code
func (d *DeviceController) issuePairingCode(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid device id"}
	}

	device, err := d.store.GetDevice(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to fetch device"}
	}
	if device == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "device not found"}
	}

	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	redisclient.StorePairingCode(ctx, code, id)
	return gin.H{"code": code, "expires_in_seconds": 300}, nil
}

// GET /api/admin/groups
func (d *DeviceController) listGroups(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := d.store.ListDeviceGroups()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list groups"}
	}

	response := make([]packets.GroupResponse, 0, len(all))
	for _, g := range all {
		response = append(response, packets.GroupResponse{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			CreatedAt:   g.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   g.UpdatedAt.Format(time.RFC3339),
		})
	}
	return response, nil
}

// POST /api/admin/groups
func (d *DeviceController) createGroup(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	created, err := d.store.CreateDeviceGroup(request.Name, request.Description)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to create group"}
	}
	return packets.GroupResponse{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		CreatedAt:   created.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   created.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// POST /api/admin/groups/:id/devices
func (d *DeviceController) addGroupMember(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	groupID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid group id"}
	}

	var request packets.GroupMemberRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := d.store.AddDeviceToGroup(request.DeviceID, groupID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to add device to group"}
	}

	// Group membership feeds campaign targeting.
	redisclient.InvalidateResolution(ctx, request.DeviceID)
	middleware.NotifyDeviceRefresh(request.DeviceID)
	return gin.H{"group_id": groupID, "device_id": request.DeviceID}, nil
}

// DELETE /api/admin/groups/:id/devices/:device_id
func (d *DeviceController) removeGroupMember(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	groupID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid group id"}
	}
	deviceID, err := strconv.Atoi(ctx.Param("device_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid device id"}
	}

	if err := d.store.RemoveDeviceFromGroup(deviceID, groupID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to remove device from group"}
	}

	redisclient.InvalidateResolution(ctx, deviceID)
	middleware.NotifyDeviceRefresh(deviceID)
	return gin.H{"group_id": groupID, "device_id": deviceID}, nil
}
