package dogs

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/pupperworks/pupper/pkg/query"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "playful", []string{"playful"}},
		{"multiple", "playful,gentle,curious", []string{"playful", "gentle", "curious"}},
		{"spaced", " playful , gentle ", []string{"playful", "gentle"}},
		{"blank segments", "playful,,gentle,", []string{"playful", "gentle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitTags(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitTags(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestJoinTags(t *testing.T) {
	if got := joinTags(nil); got != nil {
		t.Errorf("joinTags(nil) = %v, want nil", got)
	}
	if got := joinTags([]string{"playful", "gentle"}); got == nil || *got != "playful,gentle" {
		t.Errorf("joinTags = %v, want playful,gentle", got)
	}
}

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("state", "CA")
	values.Set("color", "Yellow")
	values.Set("min_weight", "20.5")
	values.Set("max_weight", "80")
	values.Set("min_age", "2")
	values.Set("max_age", "5")

	f := FiltersFromQuery(values)

	if f.State == nil || *f.State != "CA" {
		t.Errorf("State = %v", f.State)
	}
	if f.Color == nil || *f.Color != "Yellow" {
		t.Errorf("Color = %v", f.Color)
	}
	if f.MinWeight == nil || *f.MinWeight != 20.5 {
		t.Errorf("MinWeight = %v", f.MinWeight)
	}
	if f.MaxWeight == nil || *f.MaxWeight != 80.0 {
		t.Errorf("MaxWeight = %v", f.MaxWeight)
	}
	if f.MinAge == nil || *f.MinAge != 2 {
		t.Errorf("MinAge = %v", f.MinAge)
	}
	if f.MaxAge == nil || *f.MaxAge != 5 {
		t.Errorf("MaxAge = %v", f.MaxAge)
	}
}

func TestFiltersFromQueryIgnoresBadValues(t *testing.T) {
	values := url.Values{}
	values.Set("min_weight", "heavy")
	values.Set("min_age", "puppy")

	f := FiltersFromQuery(values)

	if f.MinWeight != nil || f.MinAge != nil {
		t.Errorf("filters = %+v, want malformed numbers skipped", f)
	}
	if f.State != nil || f.Color != nil {
		t.Errorf("filters = %+v, want absent params nil", f)
	}
}

func TestFiltersApply(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	state := "ca"
	color := "Yellow"
	minWeight, maxWeight := 20.0, 80.0
	minAge, maxAge := 2, 5

	f := Filters{
		State:     &state,
		Color:     &color,
		MinWeight: &minWeight,
		MaxWeight: &maxWeight,
		MinAge:    &minAge,
		MaxAge:    &maxAge,
	}

	b := query.NewBuilder(projection)
	f.Apply(b, now)
	sql, args := b.BuildCount()

	want := "SELECT COUNT(*) FROM public.dogs d WHERE d.state = $1 AND d.color = $2" +
		" AND d.weight >= $3 AND d.weight <= $4 AND d.birthday <= $5 AND d.birthday >= $6"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}

	if len(args) != 6 {
		t.Fatalf("args = %v, want 6 values", args)
	}
	if args[0] != "CA" {
		t.Errorf("state arg = %v, want uppercased CA", args[0])
	}
	if args[4] != now.AddDate(-2, 0, 0) {
		t.Errorf("min age cutoff = %v, want %v", args[4], now.AddDate(-2, 0, 0))
	}
	if args[5] != now.AddDate(-6, 0, 0) {
		t.Errorf("max age cutoff = %v, want %v", args[5], now.AddDate(-6, 0, 0))
	}
}

func TestFiltersApplyEmpty(t *testing.T) {
	b := query.NewBuilder(projection)
	Filters{}.Apply(b, time.Now())
	sql, args := b.BuildCount()

	if sql != "SELECT COUNT(*) FROM public.dogs d" {
		t.Errorf("sql = %q, want no conditions", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}
