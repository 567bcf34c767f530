package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// AdhanVoices are the recordings a user can pick.
var AdhanVoices = map[string]bool{"makkah": true, "madinah": true, "aqsa": true, "egypt": true}

// users without a saved row get model.DefaultAdhanSettings.
func (p *pgStore) GetAdhanSettings(userID int) (model.AdhanSettings, error) {
	var s model.AdhanSettings
	const q = `
	SELECT user_id, voice, fajr, dhuhr, asr, maghrib, isha
	  FROM adhan_settings
	 WHERE user_id = $1;`
	err := p.db.Get(&s, q, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultAdhanSettings(userID), nil
	}
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("GetAdhanSettings failed")
		return model.AdhanSettings{}, err
	}
	return s, nil
}

func (p *pgStore) SaveAdhanSettings(s model.AdhanSettings) error {
	if !AdhanVoices[s.Voice] {
		return fmt.Errorf("unknown adhan voice %q", s.Voice)
	}
	const q = `
	INSERT INTO adhan_settings (user_id, voice, fajr, dhuhr, asr, maghrib, isha)
	VALUES (:user_id, :voice, :fajr, :dhuhr, :asr, :maghrib, :isha)
	ON CONFLICT (user_id) DO UPDATE
	   SET voice = EXCLUDED.voice,
	       fajr = EXCLUDED.fajr,
	       dhuhr = EXCLUDED.dhuhr,
	       asr = EXCLUDED.asr,
	       maghrib = EXCLUDED.maghrib,
	       isha = EXCLUDED.isha;`
	if _, err := p.db.NamedExec(q, s); err != nil {
		log.Error().Err(err).Int("user_id", s.UserID).Msg("SaveAdhanSettings failed")
		return err
	}
	return nil
}
