package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lumen/internal/model"
)

func (s *pgStore) CreateContent(name, contentType, url string, createdBy int) (model.Content, error) {
	var c model.Content
	const q = `
	INSERT INTO content (name, type, url, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING id, name, type, url, created_by, created_at, updated_at;`
	if err := s.db.Get(&c, q, name, contentType, url, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateContent failed")
		return model.Content{}, err
	}
	return c, nil
}

func (s *pgStore) ListContent() ([]model.Content, error) {
	var out []model.Content
	if err := s.db.Select(&out, `
		SELECT id, name, type, url, created_by, created_at, updated_at FROM content ORDER BY id;
	`); err != nil {
		log.Error().Err(err).Msg("ListContent failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) GetLayout(id int) (*model.Layout, error) {
	var l model.Layout
	if err := s.db.Get(&l, `
		SELECT id, name, created_by, created_at, updated_at FROM layouts WHERE id = $1;
	`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Int("layout_id", id).Msg("GetLayout failed")
		return nil, err
	}
	return &l, nil
}

func (s *pgStore) ListLayouts() ([]model.Layout, error) {
	var out []model.Layout
	if err := s.db.Select(&out, `
		SELECT id, name, created_by, created_at, updated_at FROM layouts ORDER BY id;
	`); err != nil {
		log.Error().Err(err).Msg("ListLayouts failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) CreateLayout(name string, createdBy int) (model.Layout, error) {
	var l model.Layout
	const q = `
	INSERT INTO layouts (name, created_by, created_at, updated_at)
	VALUES ($1, $2, now(), now())
	RETURNING id, name, created_by, created_at, updated_at;`
	if err := s.db.Get(&l, q, name, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateLayout failed")
		return model.Layout{}, err
	}
	return l, nil
}

func (s *pgStore) GetPlaylist(id int) (*model.Playlist, error) {
	var p model.Playlist
	if err := s.db.Get(&p, `
		SELECT id, name, description, created_by, created_at, updated_at FROM playlists WHERE id = $1;
	`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Int("playlist_id", id).Msg("GetPlaylist failed")
		return nil, err
	}
	return &p, nil
}

func (s *pgStore) ListPlaylists() ([]model.Playlist, error) {
	var out []model.Playlist
	if err := s.db.Select(&out, `
		SELECT id, name, description, created_by, created_at, updated_at FROM playlists ORDER BY id;
	`); err != nil {
		log.Error().Err(err).Msg("ListPlaylists failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) CreatePlaylist(name string, description *string, createdBy int) (model.Playlist, error) {
	var p model.Playlist
	const q = `
	INSERT INTO playlists (name, description, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id, name, description, created_by, created_at, updated_at;`
	if err := s.db.Get(&p, q, name, description, createdBy); err != nil {
		log.Error().Err(err).Msg("CreatePlaylist failed")
		return model.Playlist{}, err
	}
	return p, nil
}
