package api

import (
	"testing"
	"time"

	"persona-api/internal/storage"
)

func TestPortfolioCache(t *testing.T) {
	c := newPortfolioCache(time.Hour)

	if _, ok := c.Get(); ok {
		t.Fatal("empty cache should miss")
	}

	payload := &PortfolioPayload{Profile: &storage.CandidateProfile{Name: "Jordan"}}
	c.Set(payload)

	got, ok := c.Get()
	if !ok {
		t.Fatal("cache should hit after Set")
	}
	if got.Profile.Name != "Jordan" {
		t.Errorf("cached profile name = %q", got.Profile.Name)
	}

	c.Invalidate()
	if _, ok := c.Get(); ok {
		t.Fatal("cache should miss after Invalidate")
	}
}

func TestPortfolioCacheExpiry(t *testing.T) {
	c := newPortfolioCache(10 * time.Millisecond)
	c.Set(&PortfolioPayload{})

	if _, ok := c.Get(); !ok {
		t.Fatal("cache should hit before TTL")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get(); ok {
		t.Fatal("cache should miss after TTL")
	}
}
