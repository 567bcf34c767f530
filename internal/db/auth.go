package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// inserts new user into table, returns new user ID.
func (p *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	query := `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;
	`
	var newID int
	if err := p.db.QueryRow(query, email, hashedPassword, name).Scan(&newID); err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return 0, err
	}
	return newID, nil
}

// fetches user by email. returns nil, sql.ErrNoRows if not found.
func (p *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE email = $1;
	`
	if err := p.db.Get(&u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

// fetches a user by ID. Returns nil, sql.ErrNoRows if not found.
func (p *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM users
	WHERE id = $1;
	`
	if err := p.db.Get(&u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("user_id", id).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

// updates a user's email and name, and bumps updated_at.
// returns an error if no rows were affected (e.g. user ID doesn't exist).
func (p *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	query := `
	UPDATE users
	SET email = $2,
	name = $3,
	updated_at = now()
	WHERE id = $1;
	`
	res, err := p.db.Exec(query, id, email, name)
	if err != nil {
		log.Error().Err(err).Msg("failed to update user profile - exec")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		log.Error().Err(err).Msg("failed to update user profile - rows affected")
		return err
	}
	if rows == 0 {
		log.Error().Int("user_id", id).Msg("failed to update user profile - no such user")
		return errors.New("no such user")
	}
	return nil
}
