package models

import "time"

// Artist is a chart performer. Identity is the exact name string as the
// sources publish it; no fuzzy matching across spelling variants.
type Artist struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:255;uniqueIndex;not null"`
	ImageURL string
}

// Music is a single track, keyed by (title, artist) scoped per artist.
// MediaURL holds either a durable object-storage URL or a source-provided
// preview URL, never a local path.
type Music struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"size:255;not null;uniqueIndex:idx_music_title_artist"`
	ArtistID uint   `gorm:"not null;uniqueIndex:idx_music_title_artist"`
	Artist   Artist
	ImageURL string
	Lyrics   string `gorm:"type:text"`
	MediaURL string
}

// Ranking is one chart position for a track on a platform on a calendar
// date. Re-ingesting the same (platform, music, date) overwrites Rank.
type Ranking struct {
	ID       uint   `gorm:"primaryKey"`
	Platform string `gorm:"size:32;not null;uniqueIndex:idx_ranking_key"`
	MusicID  uint   `gorm:"not null;uniqueIndex:idx_ranking_key"`
	Music    Music
	Rank     int       `gorm:"not null"`
	Date     time.Time `gorm:"uniqueIndex:idx_ranking_key"`
}
