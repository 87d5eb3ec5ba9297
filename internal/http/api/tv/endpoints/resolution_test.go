package endpoints_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/lumen/internal/db"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api"
	tvapi "github.com/Nixie-Tech-LLC/lumen/internal/http/api/tv/endpoints"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

// fakeStore overrides only the read paths the resolution endpoint touches;
// anything else panics, which would mean the endpoint grew a dependency this
// test does not model.
type fakeStore struct {
	db.Store
	devices   map[int]model.Device
	campaigns []model.Campaign
	schedules map[int]model.Schedule
	layouts   map[int]model.Layout
	playlists map[int]model.Playlist
}

func (f *fakeStore) GetDevice(id int) (*model.Device, error) {
	if d, ok := f.devices[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (f *fakeStore) ListCampaigns() ([]model.Campaign, error) { return f.campaigns, nil }

func (f *fakeStore) GetSchedule(id int) (*model.Schedule, error) {
	if s, ok := f.schedules[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeStore) GetLayout(id int) (*model.Layout, error) {
	if l, ok := f.layouts[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (f *fakeStore) GetPlaylist(id int) (*model.Playlist, error) {
	if p, ok := f.playlists[id]; ok {
		return &p, nil
	}
	return nil, nil
}

const testSecret = "supersecret"

func setupRouter(store db.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/tv",
		DeviceAuth: true,
		SecretKey:  testSecret,
	},
		tvapi.ResolutionModule(store),
	)
	return r
}

func getResolution(t *testing.T, router *gin.Engine, deviceID int) packets.ResolutionResponse {
	t.Helper()

	token, err := middleware.GenerateDeviceJWT(deviceID, testSecret)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/tv/resolution", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response packets.ResolutionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestResolutionRequiresDeviceToken(t *testing.T) {
	router := setupRouter(&fakeStore{devices: map[int]model.Device{}})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/tv/resolution", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResolutionCampaignWithPick(t *testing.T) {
	store := &fakeStore{
		devices: map[int]model.Device{
			1: {ID: 1, Timezone: "UTC"},
		},
		campaigns: []model.Campaign{{
			ID:         7,
			Name:       "spring sale",
			Status:     model.CampaignStatusActive,
			Priority:   3,
			TargetType: model.TargetAll,
			Entries: []model.CampaignContentEntry{
				{ID: 1, ContentID: 100, Name: "hero video", Weight: 1},
			},
		}},
	}
	router := setupRouter(store)

	response := getResolution(t, router, 1)
	assert.Equal(t, "campaign", response.Type)
	assert.Equal(t, "active campaign", response.Reason)
	assert.Equal(t, model.PriorityCampaignBase+3, response.Priority)
	require.NotNil(t, response.Campaign)
	assert.Equal(t, 7, response.Campaign.ID)
	assert.Equal(t, 100, response.Campaign.PickedContentID)
	assert.Equal(t, "hero video", response.Campaign.PickedName)
}

func TestResolutionFallsBackToPlaylist(t *testing.T) {
	playlistID := 9
	store := &fakeStore{
		devices: map[int]model.Device{
			1: {ID: 1, Timezone: "UTC", PlaylistID: &playlistID},
		},
		playlists: map[int]model.Playlist{
			9: {ID: 9, Name: "ambient loop"},
		},
	}
	router := setupRouter(store)

	response := getResolution(t, router, 1)
	assert.Equal(t, "playlist", response.Type)
	require.NotNil(t, response.Playlist)
	assert.Equal(t, 9, response.Playlist.ID)
	assert.Nil(t, response.Campaign)
}

func TestResolutionEmptyForUnknownDevice(t *testing.T) {
	router := setupRouter(&fakeStore{devices: map[int]model.Device{}})

	response := getResolution(t, router, 404)
	assert.Equal(t, "empty", response.Type)
	assert.Equal(t, "device not found", response.Reason)
	assert.Equal(t, 0, response.Priority)
}
