package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"storefront.GO/model/entity"
)

func fixture() *entity.Catalog {
	return &entity.Catalog{
		Products: []entity.Product{
			{ID: "1", Name: "Test Product 1", Price: 50, Category: "Productivity", Tags: []string{"test", "productivity"}, Rating: 4.5, Reviews: 100, LastUpdated: "2024-01-15"},
			{ID: "2", Name: "Test Product 2", Price: 100, Category: "Design", Tags: []string{"test", "design"}, Rating: 4.0, Reviews: 50, LastUpdated: "2024-01-20"},
		},
		Categories: []string{"Productivity", "Design"},
	}
}

type countingSource struct {
	Source
	calls atomic.Int32
}

func (c *countingSource) Load(ctx context.Context) (*entity.Catalog, error) {
	c.calls.Add(1)
	return c.Source.Load(ctx)
}

func TestStore_LoadingFlag(t *testing.T) {
	s := NewStore(StaticSource{Catalog: fixture()}, 20*time.Millisecond)
	if !s.Loading() {
		t.Fatal("new store should be loading")
	}
	if got := s.Products(); len(got) != 0 {
		t.Errorf("Products while loading = %d, want 0", len(got))
	}
	if _, err := s.Catalog(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Catalog while loading err = %v, want ErrNotLoaded", err)
	}

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Loading() || s.Failed() {
		t.Fatalf("state after load = %s, want ready", s.State())
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done not closed after load")
	}
	if len(s.Products()) != 2 {
		t.Errorf("Products = %d, want 2", len(s.Products()))
	}
	if want := []string{"design", "productivity", "test"}; !reflect.DeepEqual(s.AllTags(), want) {
		t.Errorf("AllTags = %v, want %v", s.AllTags(), want)
	}
	if p, ok := s.Product("2"); !ok || p.Name != "Test Product 2" {
		t.Errorf("Product(2) = %+v, %v", p, ok)
	}
	if _, ok := s.Product("nope"); ok {
		t.Error("Product(nope) should not be found")
	}
}

func TestStore_DelayHonoured(t *testing.T) {
	delay := 30 * time.Millisecond
	s := NewStore(StaticSource{Catalog: fixture()}, delay)
	start := time.Now()
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if el := time.Since(start); el < delay {
		t.Errorf("Load returned after %s, want >= %s", el, delay)
	}
}

func TestStore_CancelLeavesStateUntouched(t *testing.T) {
	src := &countingSource{Source: StaticSource{Catalog: fixture()}}
	s := NewStore(src, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	if err := s.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Load err = %v, want context.Canceled", err)
	}
	if !s.Loading() {
		t.Errorf("state after cancel = %s, want loading", s.State())
	}
	if src.calls.Load() != 0 {
		t.Errorf("source called %d times after cancel, want 0", src.calls.Load())
	}
	select {
	case <-s.Done():
		t.Error("Done closed after cancelled load")
	default:
	}

	s.delay = 0
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("retry after cancel: %v", err)
	}
	if s.State() != StateReady {
		t.Errorf("state after retry = %s, want ready", s.State())
	}
}

func TestStore_Idempotent(t *testing.T) {
	src := &countingSource{Source: StaticSource{Catalog: fixture()}}
	s := NewStore(src, 0)
	for i := 0; i < 3; i++ {
		if err := s.Load(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if src.calls.Load() != 1 {
		t.Errorf("source called %d times, want 1", src.calls.Load())
	}
}

func TestStore_FailedSource(t *testing.T) {
	boom := errors.New("boom")
	s := NewStore(failingSource{name: "broken", err: boom}, 0)
	err := s.Load(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Load err = %v, want wrapping boom", err)
	}
	if !s.Failed() || s.Loading() {
		t.Errorf("state = %s, want failed", s.State())
	}
	if !errors.Is(s.Err(), boom) {
		t.Errorf("Err = %v", s.Err())
	}
	if _, err := s.Catalog(); !errors.Is(err, boom) {
		t.Errorf("Catalog err = %v, want boom", err)
	}
	if err := s.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("second Load err = %v, want stored failure", err)
	}
	if len(s.Products()) != 0 || len(s.AllTags()) != 0 {
		t.Error("failed store should expose empty lists")
	}
}

func TestStore_InvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"products":[{"id":"a","name":"A","description":"d","price":1,"category":"X","tags":[],"rating":9,"reviews":1,"lastUpdated":"2024-01-01"}],"categories":["X"]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(FileSource{Path: path}, 0)
	if err := s.Load(context.Background()); !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("Load err = %v, want ErrInvalidCatalog", err)
	}
	if !s.Failed() {
		t.Error("store should be failed")
	}
}

func TestStore_MissingFileFails(t *testing.T) {
	s := NewStore(FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}, 0)
	if err := s.Load(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load err = %v, want os.ErrNotExist", err)
	}
	if !s.Failed() {
		t.Error("store should be failed")
	}
}

func TestStore_LoadAsyncAndWait(t *testing.T) {
	s := NewStore(EmbeddedSource{}, 5*time.Millisecond)
	s.LoadAsync(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if len(s.Products()) == 0 {
		t.Error("embedded catalog is empty")
	}
	if s.LoadedAt().IsZero() {
		t.Error("LoadedAt not set")
	}
}

func TestStore_ProductsIsACopy(t *testing.T) {
	s := NewStore(StaticSource{Catalog: fixture()}, 0)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	ps := s.Products()
	ps[0].Name = "changed"
	if p, _ := s.Product("1"); p.Name != "Test Product 1" {
		t.Errorf("store mutated through Products copy: %q", p.Name)
	}
}
