package endpoints

import (
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

type ScheduleController struct {
	store db.Store
}

func NewScheduleController(store db.Store) *ScheduleController {
	return &ScheduleController{store: store}
}

func ScheduleModule(store db.Store) api.Module {
	ctl := NewScheduleController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listSchedules)
		c.GET("/schedules/:id", ctl.getSchedule)
		c.POST("/schedules", ctl.createSchedule)
		c.DELETE("/schedules/:id", ctl.deleteSchedule)

		// time-blocks (playlist assignments per daily window)
		c.POST("/schedules/:id/blocks", ctl.createBlock)
		c.DELETE("/schedules/blocks/:block_id", ctl.deleteBlock)
	})
}

func blockToResponse(b model.ScheduleTimeBlock) packets.TimeBlockResponse {
	return packets.TimeBlockResponse{
		ID:          b.ID,
		ScheduleID:  b.ScheduleID,
		PlaylistID:  b.PlaylistID,
		StartMinute: b.StartMinute,
		EndMinute:   b.EndMinute,
		Position:    b.Position,
		DaysOfWeek:  b.DaysOfWeek,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

// Schedules are shared by reference, so a schedule edit may change the
// resolution of any device pointing at it.
func (s *ScheduleController) schedulesChanged(ctx *gin.Context) {
	redisclient.InvalidateAllResolutions(ctx)
	middleware.NotifyAllDevices()
}

// GET /api/admin/schedules
func (s *ScheduleController) listSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := s.store.ListSchedules(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list schedules"}
	}

	response := make([]packets.ScheduleResponse, 0, len(list))
	for _, it := range list {
		response = append(response, packets.ScheduleResponse{
			ID:        it.ID,
			Name:      it.Name,
			CreatedAt: it.CreatedAt.Format(time.RFC3339),
			UpdatedAt: it.UpdatedAt.Format(time.RFC3339),
		})
	}
	return response, nil
}

// GET /api/admin/schedules/:id
func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid schedule id"}
	}

	schedule, err := s.store.GetSchedule(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to fetch schedule"}
	}
	if schedule == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}

	response := packets.ScheduleResponse{
		ID:        schedule.ID,
		Name:      schedule.Name,
		CreatedAt: schedule.CreatedAt.Format(time.RFC3339),
		UpdatedAt: schedule.UpdatedAt.Format(time.RFC3339),
	}
	for _, b := range schedule.Blocks {
		response.Blocks = append(response.Blocks, blockToResponse(b))
	}
	return response, nil
}

// POST /api/admin/schedules
func (s *ScheduleController) createSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	created, err := s.store.CreateSchedule(request.Name, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to create schedule"}
	}
	return packets.ScheduleResponse{
		ID:        created.ID,
		Name:      created.Name,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
		UpdatedAt: created.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// DELETE /api/admin/schedules/:id
func (s *ScheduleController) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid schedule id"}
	}
	if err := s.store.DeleteSchedule(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to delete schedule"}
	}
	s.schedulesChanged(ctx)
	return gin.H{"deleted": id}, nil
}

// POST /api/admin/schedules/:id/blocks
func (s *ScheduleController) createBlock(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid schedule id"}
	}

	var request packets.CreateTimeBlockRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	// Windows never cross midnight; the matcher treats an inverted window
	// as never active, so reject it here where the author can fix it.
	if request.StartMinute >= request.EndMinute {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "start_minute must be before end_minute"}
	}

	created, err := s.store.CreateTimeBlock(model.ScheduleTimeBlock{
		ScheduleID:  id,
		PlaylistID:  request.PlaylistID,
		StartMinute: request.StartMinute,
		EndMinute:   request.EndMinute,
		Position:    request.Position,
		DaysOfWeek:  request.DaysOfWeek,
	})
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to create time block"}
	}

	s.schedulesChanged(ctx)
	return blockToResponse(created), nil
}

// DELETE /api/admin/schedules/blocks/:block_id
func (s *ScheduleController) deleteBlock(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	blockID, err := strconv.Atoi(ctx.Param("block_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid block id"}
	}
	if err := s.store.DeleteTimeBlock(blockID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to delete time block"}
	}
	s.schedulesChanged(ctx)
	return gin.H{"deleted": blockID}, nil
}
