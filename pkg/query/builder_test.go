package query_test

import (
	"reflect"
	"testing"

	"github.com/pupperworks/pupper/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "dogs", "d").
		Project("id", "ID").
		Project("state", "State").
		Project("weight", "Weight").
		Project("created_at", "CreatedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMapFrom(t *testing.T) {
	p := testProjection()
	if got, want := p.From(), "public.dogs d"; got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	want := "d.id, d.state, d.weight, d.created_at"
	if got := p.Columns(); got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"mapped field", "State", "d.state"},
		{"mapped timestamp", "CreatedAt", "d.created_at"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "State", []query.SortField{{Field: "State"}}},
		{"single descending", "-CreatedAt", []query.SortField{{Field: "CreatedAt", Descending: true}}},
		{
			"mixed",
			"State,-Weight",
			[]query.SortField{{Field: "State"}, {Field: "Weight", Descending: true}},
		},
		{
			"spaced",
			" State , -Weight ",
			[]query.SortField{{Field: "State"}, {Field: "Weight", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).Build()
	want := "SELECT d.id, d.state, d.weight, d.created_at FROM public.dogs d"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderDefaultSort(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true}).Build()
	want := "SELECT d.id, d.state, d.weight, d.created_at FROM public.dogs d ORDER BY d.created_at DESC"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
}

func TestBuilderWhereEquals(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("State", "TX").
		Build()

	want := "SELECT d.id, d.state, d.weight, d.created_at FROM public.dogs d WHERE d.state = $1"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"TX"}) {
		t.Errorf("args = %v, want [TX]", args)
	}
}

func TestBuilderWhereEqualsNilSkipped(t *testing.T) {
	var state *string
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("State", state).
		Build()

	want := "SELECT d.id, d.state, d.weight, d.created_at FROM public.dogs d"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderRangeConditions(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereAtLeast("Weight", 20.0).
		WhereAtMost("Weight", 80.0).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.dogs d WHERE d.weight >= $1 AND d.weight <= $2"
	if sql != want {
		t.Errorf("BuildCount() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{20.0, 80.0}) {
		t.Errorf("args = %v, want [20 80]", args)
	}
}

func TestBuilderWhereSearchRenumbering(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("State", "CA").
		WhereSearch(ptr("lab"), "State", "ID").
		Build()

	want := "SELECT d.id, d.state, d.weight, d.created_at FROM public.dogs d " +
		"WHERE d.state = $1 AND (d.state ILIKE $2 OR d.id ILIKE $3)"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"CA", "%lab%", "%lab%"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuilderWhereIn(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereIn("ID", []any{"a", "b", "c"}).
		Build()

	want := "SELECT d.id, d.state, d.weight, d.created_at FROM public.dogs d " +
		"WHERE d.id IN ($1, $2, $3)"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Errorf("args = %v, want 3 values", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection(), query.SortField{Field: "State"}).
		BuildPage(3, 10)

	want := "SELECT d.id, d.state, d.weight, d.created_at FROM public.dogs d " +
		"ORDER BY d.state ASC LIMIT 10 OFFSET 20"
	if sql != want {
		t.Errorf("BuildPage() = %q, want %q", sql, want)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc")
	want := "SELECT d.id, d.state, d.weight, d.created_at FROM public.dogs d WHERE d.id = $1"
	if sql != want {
		t.Errorf("BuildSingle() = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"abc"}) {
		t.Errorf("args = %v, want [abc]", args)
	}
}

func TestBuilderOrderByOverridesDefault(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt"}).
		OrderByFields([]query.SortField{{Field: "Weight", Descending: true}}).
		Build()

	want := "SELECT d.id, d.state, d.weight, d.created_at FROM public.dogs d ORDER BY d.weight DESC"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
}
