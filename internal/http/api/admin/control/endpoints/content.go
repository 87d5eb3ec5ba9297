package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/lumen/internal/db"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

type ContentController struct {
	store db.Store
}

func NewContentController(store db.Store) *ContentController {
	return &ContentController{store: store}
}

func ContentModule(store db.Store) api.Module {
	ctl := NewContentController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/content", ctl.listContent)
		c.POST("/content", ctl.createContent)

		c.GET("/layouts", ctl.listLayouts)
		c.POST("/layouts", ctl.createLayout)

		c.GET("/playlists", ctl.listPlaylists)
		c.POST("/playlists", ctl.createPlaylist)
	})
}

type createContentRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
	URL  string `json:"url"  binding:"required,url"`
}

// GET /api/admin/content
func (cc *ContentController) listContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := cc.store.ListContent()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list content"}
	}
	return list, nil
}

// POST /api/admin/content
func (cc *ContentController) createContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request createContentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	created, err := cc.store.CreateContent(request.Name, request.Type, request.URL, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to create content"}
	}
	return created, nil
}

// GET /api/admin/layouts
func (cc *ContentController) listLayouts(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := cc.store.ListLayouts()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list layouts"}
	}

	response := make([]packets.LayoutResponse, 0, len(list))
	for _, l := range list {
		response = append(response, packets.LayoutResponse{
			ID:        l.ID,
			Name:      l.Name,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	return response, nil
}

// POST /api/admin/layouts
func (cc *ContentController) createLayout(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateLayoutRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	created, err := cc.store.CreateLayout(request.Name, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to create layout"}
	}
	return packets.LayoutResponse{
		ID:        created.ID,
		Name:      created.Name,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	}, nil
}

// GET /api/admin/playlists
func (cc *ContentController) listPlaylists(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := cc.store.ListPlaylists()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list playlists"}
	}

	response := make([]packets.PlaylistResponse, 0, len(list))
	for _, p := range list {
		response = append(response, packets.PlaylistResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		})
	}
	return response, nil
}

// POST /api/admin/playlists
func (cc *ContentController) createPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	created, err := cc.store.CreatePlaylist(request.Name, request.Description, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to create playlist"}
	}
	return packets.PlaylistResponse{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		CreatedAt:   created.CreatedAt.Format(time.RFC3339),
	}, nil
}
