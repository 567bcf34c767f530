// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// reading position
	GetBookmark(userID int) (*model.Bookmark, error)
	SetBookmark(userID, page int) (model.Bookmark, error)
	ClearBookmark(userID int) error

	// adhan preferences
	GetAdhanSettings(userID int) (model.AdhanSettings, error)
	SaveAdhanSettings(s model.AdhanSettings) error

	// durable cache entries
	GetCacheEntry(ctx context.Context, key string) (model.CacheEntry, bool, error)
	PutCacheEntry(ctx context.Context, entry model.CacheEntry) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
// required so linter doesn't complain
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
