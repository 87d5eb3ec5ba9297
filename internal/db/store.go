// exposes a Store interface that is passed to API handlers and the resolver
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
	"github.com/Nixie-Tech-LLC/lumen/internal/resolver"
)

type Store interface {
	// read side consumed by the resolution engine
	resolver.Repository

	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)

	// device functions
	ListDevices() ([]model.Device, error)
	CreateDevice(name string, location *string, timezone string, createdBy int) (model.Device, error)
	UpdateDeviceAssignments(deviceID int, scheduleID, layoutID, playlistID *int) error
	SetDevicePaired(deviceID int, paired bool) error
	DeleteDevice(deviceID int) error
	CreateDeviceGroup(name string, description *string) (model.DeviceGroup, error)
	ListDeviceGroups() ([]model.DeviceGroup, error)
	AddDeviceToGroup(deviceID, groupID int) error
	RemoveDeviceFromGroup(deviceID, groupID int) error

	// campaign functions
	GetCampaign(id int) (*model.Campaign, error)
	CreateCampaign(c model.Campaign) (model.Campaign, error)
	UpdateCampaignStatus(campaignID int, status string) error
	DeleteCampaign(campaignID int) error
	SetCampaignTargets(campaignID int, deviceIDs, groupIDs []int) error
	SetCampaignEntries(campaignID int, entries []model.CampaignContentEntry) error

	// schedule functions
	ListSchedules(ownerID int) ([]model.Schedule, error)
	CreateSchedule(name string, createdBy int) (model.Schedule, error)
	DeleteSchedule(scheduleID int) error
	CreateTimeBlock(b model.ScheduleTimeBlock) (model.ScheduleTimeBlock, error)
	DeleteTimeBlock(blockID int) error

	// content asset functions
	CreateContent(name, contentType, url string, createdBy int) (model.Content, error)
	ListContent() ([]model.Content, error)

	// fallback content functions
	ListLayouts() ([]model.Layout, error)
	CreateLayout(name string, createdBy int) (model.Layout, error)
	ListPlaylists() ([]model.Playlist, error)
	CreatePlaylist(name string, description *string, createdBy int) (model.Playlist, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	if db == nil {
		db = DB
	}
	return &pgStore{db: db}
}
