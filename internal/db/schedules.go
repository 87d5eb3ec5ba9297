package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

type timeBlockRow struct {
	ID          int           `db:"id"`
	ScheduleID  int           `db:"schedule_id"`
	PlaylistID  int           `db:"playlist_id"`
	StartMinute int           `db:"start_minute"`
	EndMinute   int           `db:"end_minute"`
	Position    int           `db:"position"`
	DaysOfWeek  pq.Int64Array `db:"days_of_week"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

func (r timeBlockRow) toModel() model.ScheduleTimeBlock {
	b := model.ScheduleTimeBlock{
		ID:          r.ID,
		ScheduleID:  r.ScheduleID,
		PlaylistID:  r.PlaylistID,
		StartMinute: r.StartMinute,
		EndMinute:   r.EndMinute,
		Position:    r.Position,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if len(r.DaysOfWeek) > 0 {
		b.DaysOfWeek = make([]int, len(r.DaysOfWeek))
		for i, d := range r.DaysOfWeek {
			b.DaysOfWeek[i] = int(d)
		}
	}
	return b
}

// GetSchedule returns the schedule with its time-blocks in stored order,
// which is the order the matcher walks them in.
func (s *pgStore) GetSchedule(id int) (*model.Schedule, error) {
	var out model.Schedule
	if err := s.db.Get(&out, `
		SELECT id, name, created_by, created_at, updated_at FROM schedules WHERE id = $1;
	`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Int("schedule_id", id).Msg("GetSchedule failed")
		return nil, err
	}

	var rows []timeBlockRow
	if err := s.db.Select(&rows, `
		SELECT id, schedule_id, playlist_id, start_minute, end_minute,
		       position, days_of_week, created_at, updated_at
		  FROM schedule_time_blocks
		 WHERE schedule_id = $1
		 ORDER BY position, id;
	`, id); err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("GetSchedule blocks load failed")
		return nil, err
	}
	for _, r := range rows {
		out.Blocks = append(out.Blocks, r.toModel())
	}
	return &out, nil
}

func (s *pgStore) ListSchedules(ownerID int) ([]model.Schedule, error) {
	var out []model.Schedule
	const q = `
	SELECT id, name, created_by, created_at, updated_at
	  FROM schedules
	 WHERE created_by = $1
	 ORDER BY id;`
	if err := s.db.Select(&out, q, ownerID); err != nil {
		log.Error().Err(err).Msg("ListSchedules failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) CreateSchedule(name string, createdBy int) (model.Schedule, error) {
	var sch model.Schedule
	const q = `
	INSERT INTO schedules (name, created_by, created_at, updated_at)
	VALUES ($1, $2, now(), now())
	RETURNING id, name, created_by, created_at, updated_at;`
	if err := s.db.Get(&sch, q, name, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateSchedule failed")
		return model.Schedule{}, err
	}
	return sch, nil
}

func (s *pgStore) DeleteSchedule(scheduleID int) error {
	_, err := s.db.Exec(`DELETE FROM schedules WHERE id = $1;`, scheduleID)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("DeleteSchedule failed")
	}
	return err
}

func (s *pgStore) CreateTimeBlock(b model.ScheduleTimeBlock) (model.ScheduleTimeBlock, error) {
	days := make(pq.Int64Array, len(b.DaysOfWeek))
	for i, d := range b.DaysOfWeek {
		days[i] = int64(d)
	}

	var row timeBlockRow
	const q = `
	INSERT INTO schedule_time_blocks
	  (schedule_id, playlist_id, start_minute, end_minute, position, days_of_week, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	RETURNING id, schedule_id, playlist_id, start_minute, end_minute,
	          position, days_of_week, created_at, updated_at;`
	if err := s.db.Get(&row, q,
		b.ScheduleID, b.PlaylistID, b.StartMinute, b.EndMinute, b.Position, days,
	); err != nil {
		log.Error().Err(err).Int("schedule_id", b.ScheduleID).Msg("CreateTimeBlock failed")
		return model.ScheduleTimeBlock{}, err
	}
	return row.toModel(), nil
}

func (s *pgStore) DeleteTimeBlock(blockID int) error {
	_, err := s.db.Exec(`DELETE FROM schedule_time_blocks WHERE id = $1;`, blockID)
	if err != nil {
		log.Error().Err(err).Int("block_id", blockID).Msg("DeleteTimeBlock failed")
	}
	return err
}
