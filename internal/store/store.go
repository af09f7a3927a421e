// Package store is the single place where chart identity and ranking rows
// are created and merged. Every source run goes through it, so the
// uniqueness guarantees (one artist per name, one track per title+artist,
// one ranking per platform+track+date) live here and nowhere else.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chartsync/internal/models"
)

// ErrStore marks persistence failures. Callers treat it as "skip this
// entry", never as fatal to the run.
var ErrStore = errors.New("store error")

// MergeStrategy controls what happens to stored metadata when the identity
// row already exists. Each source keeps the policy it always had: the
// scraped chart backfills, the API sources leave existing rows alone.
type MergeStrategy int

const (
	// MergeNone reuses the existing row untouched.
	MergeNone MergeStrategy = iota
	// MergeFillIfMissing backfills fields whose stored value is empty.
	// A non-empty stored value is never overwritten.
	MergeFillIfMissing
)

// TrackInput carries the metadata known for a track at ingestion time.
type TrackInput struct {
	Title    string
	ArtistID uint
	ImageURL string
	Lyrics   string
	MediaURL string // durable or source-hosted URL, never a local path
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ResolveOrCreateArtist returns the id of the artist named name, inserting
// the row if it does not exist yet. The insert races against concurrent
// callers on the name uniqueness constraint, not on a prior read: an
// OnConflict no-op insert followed by an id read-back, so two callers with
// the same name always converge on one row.
func (s *Store) ResolveOrCreateArtist(name, imageURL string, merge MergeStrategy) (uint, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty artist name", ErrStore)
	}

	artist := models.Artist{Name: name, ImageURL: imageURL}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&artist)
	if res.Error != nil {
		return 0, fmt.Errorf("%w: insert artist %q: %v", ErrStore, name, res.Error)
	}
	if res.RowsAffected > 0 {
		return artist.ID, nil
	}

	// Insert was a no-op: the name already exists. Read the surviving row.
	var existing models.Artist
	if err := s.db.Where("name = ?", name).First(&existing).Error; err != nil {
		return 0, fmt.Errorf("%w: lookup artist %q: %v", ErrStore, name, err)
	}

	if merge == MergeFillIfMissing && imageURL != "" && existing.ImageURL == "" {
		err := s.db.Model(&models.Artist{}).
			Where("id = ? AND (image_url IS NULL OR image_url = '')", existing.ID).
			Update("image_url", imageURL).Error
		if err != nil {
			return 0, fmt.Errorf("%w: backfill artist %q: %v", ErrStore, name, err)
		}
	}

	return existing.ID, nil
}

// ResolveOrCreateTrack returns the id of the track keyed by
// (in.Title, in.ArtistID), inserting it with all provided fields if it does
// not exist. On an existing row, merge decides per field: MergeNone leaves
// the row as-is, MergeFillIfMissing backfills only empty columns.
func (s *Store) ResolveOrCreateTrack(in TrackInput, merge MergeStrategy) (uint, error) {
	if in.Title == "" {
		return 0, fmt.Errorf("%w: empty track title", ErrStore)
	}
	if in.ArtistID == 0 {
		return 0, fmt.Errorf("%w: track %q has no artist", ErrStore, in.Title)
	}
	if in.MediaURL != "" && !isRemoteURL(in.MediaURL) {
		return 0, fmt.Errorf("%w: media url %q is not a remote URL", ErrStore, in.MediaURL)
	}

	music := models.Music{
		Title:    in.Title,
		ArtistID: in.ArtistID,
		ImageURL: in.ImageURL,
		Lyrics:   in.Lyrics,
		MediaURL: in.MediaURL,
	}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "title"}, {Name: "artist_id"}},
		DoNothing: true,
	}).Create(&music)
	if res.Error != nil {
		return 0, fmt.Errorf("%w: insert track %q: %v", ErrStore, in.Title, res.Error)
	}
	if res.RowsAffected > 0 {
		return music.ID, nil
	}

	var existing models.Music
	err := s.db.Where("title = ? AND artist_id = ?", in.Title, in.ArtistID).First(&existing).Error
	if err != nil {
		return 0, fmt.Errorf("%w: lookup track %q: %v", ErrStore, in.Title, err)
	}

	if merge == MergeFillIfMissing {
		fills := map[string]string{}
		if in.ImageURL != "" && existing.ImageURL == "" {
			fills["image_url"] = in.ImageURL
		}
		if in.Lyrics != "" && existing.Lyrics == "" {
			fills["lyrics"] = in.Lyrics
		}
		if in.MediaURL != "" && existing.MediaURL == "" {
			fills["media_url"] = in.MediaURL
		}
		for column, value := range fills {
			if err := s.fillMusicColumn(existing.ID, column, value); err != nil {
				return 0, fmt.Errorf("%w: backfill track %q: %v", ErrStore, in.Title, err)
			}
		}
	}

	return existing.ID, nil
}

// fillMusicColumn backfills one column only while its stored value is
// still empty. The guard lives in SQL so a stale snapshot can never
// overwrite a value a concurrent run filled in the meantime.
func (s *Store) fillMusicColumn(id uint, column, value string) error {
	return s.db.Model(&models.Music{}).
		Where("id = ? AND ("+column+" IS NULL OR "+column+" = '')", id).
		Update(column, value).Error
}

// UpsertRanking records rank for (platform, musicID, date) as a single
// atomic insert-or-update against the ranking uniqueness constraint. A
// later call for the same triple overwrites the rank, it never adds a row.
// A zero date means today.
func (s *Store) UpsertRanking(platform string, musicID uint, rank int, date time.Time) error {
	if platform == "" {
		return fmt.Errorf("%w: empty platform", ErrStore)
	}
	if musicID == 0 {
		return fmt.Errorf("%w: ranking has no track", ErrStore)
	}
	if rank < 1 {
		return fmt.Errorf("%w: rank %d out of range", ErrStore, rank)
	}
	if date.IsZero() {
		date = time.Now()
	}
	day := date.UTC().Truncate(24 * time.Hour)

	ranking := models.Ranking{Platform: platform, MusicID: musicID, Rank: rank, Date: day}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}, {Name: "music_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"rank": rank}),
	}).Create(&ranking)
	if res.Error != nil {
		return fmt.Errorf("%w: upsert ranking (%s, %d, %s): %v",
			ErrStore, platform, musicID, day.Format("2006-01-02"), res.Error)
	}
	return nil
}

func isRemoteURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
