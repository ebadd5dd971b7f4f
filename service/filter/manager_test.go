package filter

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"storefront.GO/model/entity"
)

func TestManager_Defaults(t *testing.T) {
	m := NewManager()
	s := m.State()
	if s.SearchQuery != "" || s.SelectedCategory != "" || s.SortBy != entity.SortNameAsc {
		t.Errorf("defaults = %+v", s)
	}
	if s.PriceRange != (entity.PriceRange{Min: 0, Max: 10000}) {
		t.Errorf("default price range = %+v", s.PriceRange)
	}
	if s.SelectedTags == nil || len(s.SelectedTags) != 0 {
		t.Errorf("default tags = %#v, want empty non-nil", s.SelectedTags)
	}
}

func TestManager_UpdateMerges(t *testing.T) {
	m := NewManager()
	m.Update(Search("notion"))
	m.Update(Category("Design"))
	s := m.Update(Tags("a", "b"))

	if s.SearchQuery != "notion" || s.SelectedCategory != "Design" {
		t.Errorf("merge lost fields: %+v", s)
	}
	if !reflect.DeepEqual(s.SelectedTags, []string{"a", "b"}) {
		t.Errorf("tags = %v", s.SelectedTags)
	}
	if s.SortBy != entity.SortNameAsc {
		t.Errorf("untouched sortBy changed to %s", s.SortBy)
	}
}

func TestManager_PriceRangeReplacesPair(t *testing.T) {
	m := NewManager()
	s := m.Update(Price(100, 200))
	if s.PriceRange != (entity.PriceRange{Min: 100, Max: 200}) {
		t.Errorf("price range = %+v", s.PriceRange)
	}
}

func TestManager_EmptyTagsClear(t *testing.T) {
	m := NewManager()
	m.Update(Tags("x"))
	s := m.Update(Tags())
	if len(s.SelectedTags) != 0 {
		t.Errorf("tags = %v, want cleared", s.SelectedTags)
	}
}

func TestManager_ResetRestoresDefaults(t *testing.T) {
	m := NewManager()
	m.Update(Merge(Search("q"), Category("Design"), Price(1, 2), SortBy(entity.SortNewest), Tags("t")))
	s := m.Reset()
	if !s.Equal(entity.DefaultFilterState()) {
		t.Errorf("after reset = %+v", s)
	}
	if !m.State().Equal(entity.DefaultFilterState()) {
		t.Errorf("State after reset = %+v", m.State())
	}
}

func TestManager_Version(t *testing.T) {
	m := NewManager()
	if m.Version() != 0 {
		t.Fatalf("initial version = %d", m.Version())
	}
	m.Update(Search("a"))
	m.Reset()
	if _, v := m.Snapshot(); v != 2 {
		t.Errorf("version = %d, want 2", v)
	}
}

func TestManager_StateIsCopy(t *testing.T) {
	m := NewManager()
	m.Update(Tags("a"))
	s := m.State()
	s.SelectedTags[0] = "mutated"
	if m.State().SelectedTags[0] != "a" {
		t.Error("State shares the tag slice")
	}

	tags := []string{"x"}
	m.Update(Patch{SelectedTags: &tags})
	tags[0] = "mutated"
	if m.State().SelectedTags[0] != "x" {
		t.Error("Update retained caller's slice")
	}
}

func TestManager_ConcurrentUpdates(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				m.Update(Price(float64(i), float64(i)))
			} else {
				_ = m.State()
			}
		}(i)
	}
	wg.Wait()
	s := m.State()
	if s.PriceRange.Min != s.PriceRange.Max {
		t.Errorf("torn price range %+v", s.PriceRange)
	}
	if m.Version() != 25 {
		t.Errorf("version = %d, want 25", m.Version())
	}
}

func TestPatch_Validate(t *testing.T) {
	bad := entity.SortOption("random")
	tests := []struct {
		name    string
		patch   Patch
		wantErr bool
	}{
		{"empty", Patch{}, false},
		{"valid sort", SortBy(entity.SortPriceDesc), false},
		{"unknown sort", Patch{SortBy: &bad}, true},
		{"equal bounds", Price(5, 5), false},
		{"inverted bounds", Price(10, 5), true},
		{"NaN min", Price(math.NaN(), 5), true},
		{"NaN max", Price(0, math.NaN()), true},
		{"infinite max", Price(0, math.Inf(1)), true},
		{"negative infinite min", Price(math.Inf(-1), 5), true},
	}
	for _, tt := range tests {
		err := tt.patch.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidPatch) {
			t.Errorf("%s: err = %v, want ErrInvalidPatch", tt.name, err)
		}
	}
}

func TestPatch_JSON(t *testing.T) {
	var p Patch
	if err := json.Unmarshal([]byte(`{"sortBy":"price-asc","selectedTags":[],"priceRange":{"min":1,"max":9}}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.SearchQuery != nil || p.SelectedCategory != nil {
		t.Error("absent fields decoded as present")
	}
	if p.SelectedTags == nil || len(*p.SelectedTags) != 0 {
		t.Error("empty selectedTags should decode as present and empty")
	}
	s := p.Apply(entity.DefaultFilterState())
	if s.SortBy != entity.SortPriceAsc || s.PriceRange.Max != 9 {
		t.Errorf("applied = %+v", s)
	}
	if p.Empty() || !(Patch{}).Empty() {
		t.Error("Empty mismatch")
	}
}
