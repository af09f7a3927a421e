package chart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const billboardFixture = `<html><body>
<div class="o-chart-results-list-row">
  <img class="c-lazy-image__img" data-lazy-src="https://charts-static.example/a.jpg"/>
  <h3 id="title-of-a-story"> Flowers </h3>
  <span class="c-label"> Miley Cyrus </span>
</div>
<div class="o-chart-results-list-row">
  <h3 id="title-of-a-story">Kill Bill</h3>
  <span class="c-label">SZA</span>
</div>
<div class="o-chart-results-list-row">
  <h3 id="title-of-a-story"></h3>
  <span class="c-label">Nameless</span>
</div>
</body></html>`

func TestBillboardFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(billboardFixture))
	}))
	defer srv.Close()

	b := &Billboard{url: srv.URL, http: &http.Client{Timeout: time.Second}}
	entries, err := b.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Third row has no title and must be skipped.
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "Flowers" || entries[0].Artist != "Miley Cyrus" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("ranks must follow source order: %d, %d", entries[0].Rank, entries[1].Rank)
	}
	if entries[0].ImageURL != "https://charts-static.example/a.jpg" {
		t.Errorf("lazy image url not extracted: %q", entries[0].ImageURL)
	}
}

func TestBillboardFetchEmptyPageAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>maintenance</body></html>"))
	}))
	defer srv.Close()

	b := &Billboard{url: srv.URL, http: &http.Client{Timeout: time.Second}}
	if _, err := b.Fetch(context.Background()); err == nil {
		t.Error("a page without chart rows must abort the run")
	}
}

const zingFixture = `{
  "err": 0,
  "msg": "Success",
  "data": {
    "RTChart": {
      "items": [
        {"title": "Ngày Mai Người Ta Lấy Chồng", "artistsNames": "Thành Đạt", "position": 1, "thumbnail": "https://photo.example/1.jpg"},
        {"title": "", "artistsNames": "Ai Đó", "position": 2, "thumbnail": ""},
        {"title": "Sau Lời Từ Khước", "artistsNames": "Phan Mạnh Quỳnh", "position": 3, "thumbnail": "https://photo.example/3.jpg"}
      ]
    }
  }
}`

func TestZingFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(zingFixture))
	}))
	defer srv.Close()

	z := &Zing{url: srv.URL, http: &http.Client{Timeout: time.Second}}
	entries, err := z.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (1 skipped), got %d", len(entries))
	}
	if entries[1].Rank != 3 {
		t.Errorf("source position must be kept, got %d", entries[1].Rank)
	}
	if entries[0].PreviewURL != "https://photo.example/1.jpg" {
		t.Errorf("thumbnail not carried: %q", entries[0].PreviewURL)
	}
}

func TestZingFetchAPIErrorAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"err": -201, "msg": "expired"}`))
	}))
	defer srv.Close()

	z := &Zing{url: srv.URL, http: &http.Client{Timeout: time.Second}}
	if _, err := z.Fetch(context.Background()); err == nil {
		t.Error("non-zero err field must abort the run")
	}
}

const itunesFixture = `{
  "feed": {
    "entry": [
      {
        "im:name": {"label": "Golden"},
        "im:artist": {"label": "HUNTR/X"},
        "im:image": [
          {"label": "https://img.example/55.jpg"},
          {"label": "https://img.example/170.jpg"}
        ],
        "link": [
          {"attributes": {"href": "https://music.example/golden"}},
          {"attributes": {"href": "https://audio.example/golden.m4a", "im:assetType": "preview"}}
        ]
      },
      {
        "im:name": {"label": "Ordinary"},
        "im:artist": {"label": "Alex Warren"},
        "im:image": [{"label": "https://img.example/ordinary.jpg"}],
        "link": {"attributes": {"href": "https://music.example/ordinary"}}
      },
      {
        "im:name": {"label": ""},
        "im:artist": {"label": "Unknown"}
      }
    ]
  }
}`

func TestITunesFeedFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(itunesFixture))
	}))
	defer srv.Close()

	f := &ITunesFeed{country: "us", url: srv.URL, http: &http.Client{Timeout: time.Second}}
	if f.Platform() != "itunes_us" {
		t.Errorf("unexpected platform %q", f.Platform())
	}

	entries, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (1 skipped), got %d", len(entries))
	}
	if entries[0].ImageURL != "https://img.example/170.jpg" {
		t.Errorf("expected largest artwork, got %q", entries[0].ImageURL)
	}
	if entries[0].PreviewURL != "https://audio.example/golden.m4a" {
		t.Errorf("preview asset not extracted: %q", entries[0].PreviewURL)
	}
	// Single-object link without a preview asset
	if entries[1].PreviewURL != "" {
		t.Errorf("expected no preview, got %q", entries[1].PreviewURL)
	}
}

func TestITunesFeedInvalidStructureAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	}))
	defer srv.Close()

	f := &ITunesFeed{country: "vn", url: srv.URL, http: &http.Client{Timeout: time.Second}}
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Error("structurally invalid feed must abort the run")
	}
}
