package chart

import (
	"context"
	"fmt"
	"log"

	"github.com/zmb3/spotify"
	"golang.org/x/oauth2/clientcredentials"
)

// Spotify reads the Global Top 50 playlist through the Web API with
// client-credentials auth.
type Spotify struct {
	clientID     string
	clientSecret string
	playlistID   string
}

func NewSpotify(clientID, clientSecret, playlistID string) *Spotify {
	return &Spotify{
		clientID:     clientID,
		clientSecret: clientSecret,
		playlistID:   playlistID,
	}
}

func (s *Spotify) Platform() string { return PlatformSpotify }

func (s *Spotify) Fetch(ctx context.Context) ([]Entry, error) {
	auth := &clientcredentials.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		TokenURL:     spotify.TokenURL,
	}
	token, err := auth.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("spotify token: %w", err)
	}

	client := spotify.Authenticator{}.NewClient(token)
	page, err := client.GetPlaylistTracks(spotify.ID(s.playlistID))
	if err != nil {
		return nil, fmt.Errorf("fetch spotify chart: %w", err)
	}

	var entries []Entry
	for i, item := range page.Tracks {
		track := item.Track
		if track.Name == "" || len(track.Artists) == 0 {
			log.Printf("⚠️ Skipping spotify item %d: missing title or artist", i+1)
			continue
		}

		// Prefer the playable preview clip; fall back to the track page.
		preview := track.PreviewURL
		if preview == "" {
			preview = track.ExternalURLs["spotify"]
		}

		imageURL := ""
		if len(track.Album.Images) > 0 {
			imageURL = track.Album.Images[0].URL
		}

		entries = append(entries, Entry{
			Title:      track.Name,
			Artist:     track.Artists[0].Name,
			Rank:       i + 1,
			ImageURL:   imageURL,
			PreviewURL: preview,
		})
	}
	return entries, nil
}
