package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

func (s *pgStore) GetDevice(id int) (*model.Device, error) {
	var d model.Device
	const q = `
	SELECT id, name, location, timezone, schedule_id, layout_id, playlist_id,
	       paired, created_at, updated_at
	  FROM devices
	 WHERE id = $1;`
	if err := s.db.Get(&d, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Int("device_id", id).Msg("GetDevice failed")
		return nil, err
	}

	if err := s.db.Select(&d.GroupIDs, `
		SELECT group_id FROM device_group_members WHERE device_id = $1 ORDER BY group_id;
	`, id); err != nil {
		log.Error().Err(err).Int("device_id", id).Msg("GetDevice group load failed")
		return nil, err
	}
	return &d, nil
}

func (s *pgStore) ListDevices() ([]model.Device, error) {
	var out []model.Device
	const q = `
	SELECT id, name, location, timezone, schedule_id, layout_id, playlist_id,
	       paired, created_at, updated_at
	  FROM devices
	 ORDER BY id;`
	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListDevices failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) CreateDevice(name string, location *string, timezone string, createdBy int) (model.Device, error) {
	var d model.Device
	const q = `
	INSERT INTO devices (name, location, timezone, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING id, name, location, timezone, schedule_id, layout_id, playlist_id,
	          paired, created_at, updated_at;`
	if err := s.db.Get(&d, q, name, location, timezone, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateDevice failed")
		return model.Device{}, err
	}
	return d, nil
}

// UpdateDeviceAssignments rewrites the schedule/layout/playlist references.
// Nil clears the reference, matching the cascade falling through that tier.
func (s *pgStore) UpdateDeviceAssignments(deviceID int, scheduleID, layoutID, playlistID *int) error {
	_, err := s.db.Exec(`
	UPDATE devices
	   SET schedule_id = $1,
	       layout_id   = $2,
	       playlist_id = $3,
	       updated_at  = now()
	 WHERE id = $4;`, scheduleID, layoutID, playlistID, deviceID)
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Msg("UpdateDeviceAssignments failed")
	}
	return err
}

func (s *pgStore) SetDevicePaired(deviceID int, paired bool) error {
	_, err := s.db.Exec(`
	UPDATE devices SET paired = $1, updated_at = now() WHERE id = $2;`, paired, deviceID)
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Msg("SetDevicePaired failed")
	}
	return err
}

func (s *pgStore) DeleteDevice(deviceID int) error {
	_, err := s.db.Exec(`DELETE FROM devices WHERE id = $1;`, deviceID)
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Msg("DeleteDevice failed")
	}
	return err
}

func (s *pgStore) CreateDeviceGroup(name string, description *string) (model.DeviceGroup, error) {
	var g model.DeviceGroup
	const q = `
	INSERT INTO device_groups (name, description, created_at, updated_at)
	VALUES ($1, $2, now(), now())
	RETURNING id, name, description, created_at, updated_at;`
	if err := s.db.Get(&g, q, name, description); err != nil {
		log.Error().Err(err).Msg("CreateDeviceGroup failed")
		return model.DeviceGroup{}, err
	}
	return g, nil
}

func (s *pgStore) ListDeviceGroups() ([]model.DeviceGroup, error) {
	var out []model.DeviceGroup
	if err := s.db.Select(&out, `
		SELECT id, name, description, created_at, updated_at FROM device_groups ORDER BY id;
	`); err != nil {
		log.Error().Err(err).Msg("ListDeviceGroups failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) AddDeviceToGroup(deviceID, groupID int) error {
	_, err := s.db.Exec(`
	INSERT INTO device_group_members (device_id, group_id)
	VALUES ($1, $2)
	ON CONFLICT DO NOTHING;`, deviceID, groupID)
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Int("group_id", groupID).Msg("AddDeviceToGroup failed")
	}
	return err
}

func (s *pgStore) RemoveDeviceFromGroup(deviceID, groupID int) error {
	_, err := s.db.Exec(`
	DELETE FROM device_group_members WHERE device_id = $1 AND group_id = $2;`, deviceID, groupID)
	if err != nil {
		log.Error().Err(err).Int("device_id", deviceID).Int("group_id", groupID).Msg("RemoveDeviceFromGroup failed")
	}
	return err
}
