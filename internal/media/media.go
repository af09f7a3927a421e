// Package media acquires the optional per-track assets (lyrics text, audio
// file) that the iTunes ingestion path attaches to a track before offload.
package media

// Acquirer bundles the lyrics lookup and the audio download behind the
// two-method surface the pipeline consumes.
type Acquirer struct {
	Lyrics    *LyricsClient
	Downloads *Downloader
}

func (a *Acquirer) FetchLyrics(artist, title string) string {
	if a.Lyrics == nil {
		return ""
	}
	return a.Lyrics.FetchLyrics(artist, title)
}

func (a *Acquirer) DownloadAudio(artist, title, assetURL string) (string, bool) {
	if a.Downloads == nil {
		return "", false
	}
	return a.Downloads.DownloadAudio(artist, title, assetURL)
}
