package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"chartsync/internal/models"
)

// GetRankings returns a platform's chart for today (or ?date=YYYY-MM-DD),
// ordered by rank.
func (s *Server) GetRankings(c *gin.Context) {
	platform := c.Param("platform")

	day := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed.UTC()
	}

	var rankings []models.Ranking
	err := s.db.DB.
		Preload("Music").
		Preload("Music.Artist").
		Where("platform = ? AND date = ?", platform, day).
		// rank is reserved in MySQL 8; the clause form gets it quoted.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "rank"}}).
		Find(&rankings).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rankings"})
		return
	}

	response := make([]gin.H, 0, len(rankings))
	for _, r := range rankings {
		response = append(response, gin.H{
			"rank":      r.Rank,
			"title":     r.Music.Title,
			"artist":    r.Music.Artist.Name,
			"image_url": r.Music.ImageURL,
			"media_url": r.Music.MediaURL,
			"music_id":  r.MusicID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"platform": platform,
		"date":     day.Format("2006-01-02"),
		"entries":  response,
	})
}

// GetMusic returns one track with its artist and lyrics.
func (s *Server) GetMusic(c *gin.Context) {
	var music models.Music
	if err := s.db.DB.Preload("Artist").First(&music, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        music.ID,
		"title":     music.Title,
		"artist":    music.Artist.Name,
		"image_url": music.ImageURL,
		"media_url": music.MediaURL,
		"lyrics":    music.Lyrics,
	})
}
