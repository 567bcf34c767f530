package model

import "time"

type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationType         string `json:"revelationType"`
}

type Ayah struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
	Juz           int    `json:"juz"`
	Page          int    `json:"page"`
	HizbQuarter   int    `json:"hizbQuarter"`
	Surah         *Surah `json:"surah,omitempty"`
}

type QuranPage struct {
	Number int    `json:"number"`
	Ayahs  []Ayah `json:"ayahs"`
}

type Bookmark struct {
	UserID    int       `db:"user_id"    json:"-"`
	Page      int       `db:"page"       json:"page"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
