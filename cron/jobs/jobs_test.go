package jobs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront.GO/cron"
	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
)

func TestJobsRegistered(t *testing.T) {
	jobs := cron.Jobs()
	for _, name := range []string{SessionSweep, DealReport} {
		if _, ok := jobs[name]; !ok {
			t.Errorf("job %s not registered", name)
		}
	}
}

func TestWriteDealReport(t *testing.T) {
	c := &entity.Catalog{
		Products: []entity.Product{
			{ID: "1", Name: "Late Deal", Category: "A", DealEndTime: "2024-01-03T00:00:00Z"},
			{ID: "2", Name: "No Deal", Category: "A"},
			{ID: "3", Name: "Soon Deal", Category: "A", DealEndTime: "2024-01-01T06:00:00Z"},
			{ID: "4", Name: "Over", Category: "A", DealEndTime: "2023-12-31T00:00:00Z"},
		},
		Categories: []string{"A"},
	}
	store := catalog.NewStore(catalog.StaticSource{Catalog: c}, 0)
	if err := store.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n, err := WriteDealReport(&buf, store, now, "1")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if n != 2 || len(lines) != 2 {
		t.Fatalf("n = %d, lines = %q", n, lines)
	}
	if !strings.HasPrefix(lines[0], "3 ") || !strings.Contains(lines[0], "Offer ends in 6 hrs") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1 ") || !strings.Contains(lines[1], "Offer ends in 2 days") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestWriteDealReport_NotLoaded(t *testing.T) {
	store := catalog.NewStore(catalog.StaticSource{Catalog: &entity.Catalog{}}, time.Hour)
	if _, err := WriteDealReport(&bytes.Buffer{}, store, time.Now(), ""); !errors.Is(err, catalog.ErrNotLoaded) {
		t.Errorf("err = %v, want ErrNotLoaded", err)
	}
}
