package settings

import (
	"context"
	"encoding/json"
	"testing"

	"pulsefit/rdx"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestDefaults(t *testing.T) {
	d := Defaults()

	if d.SiteTitle == "" || d.SiteTagline == "" {
		t.Fatal("defaults must carry a title and tagline")
	}

	morning, ok := d.SessionTimes["morning"]
	if !ok || !morning.Enabled {
		t.Fatal("morning session must exist and be enabled by default")
	}
	if morning.Start != "5:30 AM" || morning.End != "6:15 AM" {
		t.Fatalf("unexpected morning window %s - %s", morning.Start, morning.End)
	}

	mid, ok := d.SessionTimes["midmorning"]
	if !ok || !mid.Enabled {
		t.Fatal("midmorning session must exist and be enabled by default")
	}
	if mid.Start != "9:30 AM" || mid.End != "10:15 AM" {
		t.Fatalf("unexpected midmorning window %s - %s", mid.Start, mid.End)
	}

	if d.ThemeColors.PrimaryColor == "" || d.ThemeColors.AccentColor == "" {
		t.Fatal("default theme colors must be set")
	}
}

func TestCurrentServesFromCache(t *testing.T) {
	s := miniredis.RunT(t)
	old := rdx.Conn
	rdx.Conn = redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() {
		rdx.Conn.Close()
		rdx.Conn = old
	})

	want := Defaults()
	want.SiteTitle = "Cached Title"
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("settings:site", string(data)); err != nil {
		t.Fatal(err)
	}

	got := Current(context.Background())
	if got.SiteTitle != "Cached Title" {
		t.Fatalf("expected the cached document, got title %q", got.SiteTitle)
	}
	if _, ok := got.SessionTimes["morning"]; !ok {
		t.Fatal("cached settings lost the session map")
	}
}
