package topic

import (
	"testing"
	"time"
)

func TestMemoryCatalog(t *testing.T) {
	c := NewMemoryCatalog(time.Minute)

	if _, found := c.Lookup("missing"); found {
		t.Fatal("empty catalog should miss")
	}

	c.Put(Topic{Key: "bio101", Title: "Cell Biology", Summary: "Cells and organelles"})

	got, found := c.Lookup("bio101")
	if !found {
		t.Fatal("seeded key should hit")
	}
	if got.Title != "Cell Biology" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestMemoryCatalogExpiry(t *testing.T) {
	c := NewMemoryCatalog(10 * time.Millisecond)
	c.Put(Topic{Key: "temp", Title: "Ephemeral"})

	time.Sleep(30 * time.Millisecond)

	if _, found := c.Lookup("temp"); found {
		t.Error("entry should expire after ttl")
	}
}
