package model

import "time"

// CacheEntry is one durable key -> serialized payload pair.
type CacheEntry struct {
	Key       string    `db:"key"        json:"key"`
	Payload   []byte    `db:"payload"    json:"payload"`
	WrittenAt time.Time `db:"written_at" json:"written_at"`
}
