package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

type campaignRow struct {
	ID          int           `db:"id"`
	Name        string        `db:"name"`
	Status      string        `db:"status"`
	Priority    int           `db:"priority"`
	TargetType  string        `db:"target_type"`
	StartDate   *time.Time    `db:"start_date"`
	EndDate     *time.Time    `db:"end_date"`
	StartMinute *int          `db:"start_minute"`
	EndMinute   *int          `db:"end_minute"`
	DaysOfWeek  pq.Int64Array `db:"days_of_week"`
	CreatedBy   int           `db:"created_by"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

func (r campaignRow) toModel() model.Campaign {
	c := model.Campaign{
		ID:          r.ID,
		Name:        r.Name,
		Status:      r.Status,
		Priority:    r.Priority,
		TargetType:  r.TargetType,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		StartMinute: r.StartMinute,
		EndMinute:   r.EndMinute,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if len(r.DaysOfWeek) > 0 {
		c.DaysOfWeek = make([]int, len(r.DaysOfWeek))
		for i, d := range r.DaysOfWeek {
			c.DaysOfWeek[i] = int(d)
		}
	}
	return c
}

const campaignColumns = `
	id, name, status, priority, target_type, start_date, end_date,
	start_minute, end_minute, days_of_week, created_by, created_at, updated_at`

// ListCampaigns returns every campaign with targeting lists and content
// entries loaded, ordered by creation time so equal-priority campaigns
// tie-break on age during resolution.
func (s *pgStore) ListCampaigns() ([]model.Campaign, error) {
	var rows []campaignRow
	if err := s.db.Select(&rows, `
		SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at, id;
	`); err != nil {
		log.Error().Err(err).Msg("ListCampaigns failed")
		return nil, err
	}

	out := make([]model.Campaign, 0, len(rows))
	for _, r := range rows {
		c := r.toModel()
		if err := s.loadCampaignRelations(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *pgStore) GetCampaign(id int) (*model.Campaign, error) {
	var row campaignRow
	if err := s.db.Get(&row, `
		SELECT `+campaignColumns+` FROM campaigns WHERE id = $1;
	`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Int("campaign_id", id).Msg("GetCampaign failed")
		return nil, err
	}
	c := row.toModel()
	if err := s.loadCampaignRelations(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *pgStore) loadCampaignRelations(c *model.Campaign) error {
	if err := s.db.Select(&c.DeviceIDs, `
		SELECT device_id FROM campaign_devices WHERE campaign_id = $1 ORDER BY device_id;
	`, c.ID); err != nil {
		log.Error().Err(err).Int("campaign_id", c.ID).Msg("campaign device targets load failed")
		return err
	}
	if err := s.db.Select(&c.GroupIDs, `
		SELECT group_id FROM campaign_groups WHERE campaign_id = $1 ORDER BY group_id;
	`, c.ID); err != nil {
		log.Error().Err(err).Int("campaign_id", c.ID).Msg("campaign group targets load failed")
		return err
	}
	if err := s.db.Select(&c.Entries, `
		SELECT ce.id, ce.campaign_id, ce.content_id, ce.weight, ce.position, co.name
		  FROM campaign_entries ce
		  JOIN content co ON co.id = ce.content_id
		 WHERE ce.campaign_id = $1
		 ORDER BY ce.position, ce.id;
	`, c.ID); err != nil {
		log.Error().Err(err).Int("campaign_id", c.ID).Msg("campaign entries load failed")
		return err
	}
	return nil
}

func (s *pgStore) CreateCampaign(c model.Campaign) (model.Campaign, error) {
	days := make(pq.Int64Array, len(c.DaysOfWeek))
	for i, d := range c.DaysOfWeek {
		days[i] = int64(d)
	}

	var row campaignRow
	const q = `
	INSERT INTO campaigns
	  (name, status, priority, target_type, start_date, end_date,
	   start_minute, end_minute, days_of_week, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
	RETURNING ` + campaignColumns + `;`
	if err := s.db.Get(&row, q,
		c.Name, c.Status, c.Priority, c.TargetType, c.StartDate, c.EndDate,
		c.StartMinute, c.EndMinute, days, c.CreatedBy,
	); err != nil {
		log.Error().Err(err).Msg("CreateCampaign failed")
		return model.Campaign{}, err
	}
	return row.toModel(), nil
}

func (s *pgStore) UpdateCampaignStatus(campaignID int, status string) error {
	_, err := s.db.Exec(`
	UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2;`, status, campaignID)
	if err != nil {
		log.Error().Err(err).Int("campaign_id", campaignID).Str("status", status).Msg("UpdateCampaignStatus failed")
	}
	return err
}

func (s *pgStore) DeleteCampaign(campaignID int) error {
	_, err := s.db.Exec(`DELETE FROM campaigns WHERE id = $1;`, campaignID)
	if err != nil {
		log.Error().Err(err).Int("campaign_id", campaignID).Msg("DeleteCampaign failed")
	}
	return err
}

// SetCampaignTargets replaces both targeting lists in one transaction.
func (s *pgStore) SetCampaignTargets(campaignID int, deviceIDs, groupIDs []int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM campaign_devices WHERE campaign_id = $1;`, campaignID); err != nil {
		log.Error().Err(err).Int("campaign_id", campaignID).Msg("SetCampaignTargets clear devices failed")
		return err
	}
	if _, err := tx.Exec(`DELETE FROM campaign_groups WHERE campaign_id = $1;`, campaignID); err != nil {
		log.Error().Err(err).Int("campaign_id", campaignID).Msg("SetCampaignTargets clear groups failed")
		return err
	}
	for _, id := range deviceIDs {
		if _, err := tx.Exec(`
			INSERT INTO campaign_devices (campaign_id, device_id) VALUES ($1, $2);`, campaignID, id); err != nil {
			log.Error().Err(err).Int("campaign_id", campaignID).Int("device_id", id).Msg("SetCampaignTargets insert device failed")
			return err
		}
	}
	for _, id := range groupIDs {
		if _, err := tx.Exec(`
			INSERT INTO campaign_groups (campaign_id, group_id) VALUES ($1, $2);`, campaignID, id); err != nil {
			log.Error().Err(err).Int("campaign_id", campaignID).Int("group_id", id).Msg("SetCampaignTargets insert group failed")
			return err
		}
	}
	return tx.Commit()
}

// SetCampaignEntries replaces the weighted content list in one transaction.
func (s *pgStore) SetCampaignEntries(campaignID int, entries []model.CampaignContentEntry) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM campaign_entries WHERE campaign_id = $1;`, campaignID); err != nil {
		log.Error().Err(err).Int("campaign_id", campaignID).Msg("SetCampaignEntries clear failed")
		return err
	}
	for i, e := range entries {
		weight := e.Weight
		if weight < 1 {
			weight = 1
		}
		if _, err := tx.Exec(`
			INSERT INTO campaign_entries (campaign_id, content_id, weight, position)
			VALUES ($1, $2, $3, $4);`, campaignID, e.ContentID, weight, i); err != nil {
			log.Error().Err(err).Int("campaign_id", campaignID).Int("content_id", e.ContentID).Msg("SetCampaignEntries insert failed")
			return err
		}
	}
	return tx.Commit()
}
