package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// MushafPages is the page count of the Madani mushaf.
const MushafPages = 604

var ErrPageOutOfRange = fmt.Errorf("page must be between 1 and %d", MushafPages)

// returns nil, nil when the user has no bookmark.
func (p *pgStore) GetBookmark(userID int) (*model.Bookmark, error) {
	var b model.Bookmark
	err := p.db.Get(&b, `SELECT user_id, page, updated_at FROM bookmarks WHERE user_id = $1;`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("GetBookmark failed")
		return nil, err
	}
	return &b, nil
}

// a user has at most one bookmark; setting it again moves it.
func (p *pgStore) SetBookmark(userID, page int) (model.Bookmark, error) {
	if page < 1 || page > MushafPages {
		return model.Bookmark{}, ErrPageOutOfRange
	}
	var b model.Bookmark
	const q = `
	INSERT INTO bookmarks (user_id, page, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (user_id) DO UPDATE SET page = EXCLUDED.page, updated_at = now()
	RETURNING user_id, page, updated_at;`
	if err := p.db.Get(&b, q, userID, page); err != nil {
		log.Error().Err(err).Int("user_id", userID).Int("page", page).Msg("SetBookmark failed")
		return model.Bookmark{}, err
	}
	return b, nil
}

func (p *pgStore) ClearBookmark(userID int) error {
	_, err := p.db.Exec(`DELETE FROM bookmarks WHERE user_id = $1;`, userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("ClearBookmark failed")
	}
	return err
}
