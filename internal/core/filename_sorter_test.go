package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layerstack/internal/types"
)

func TestParseIndex(t *testing.T) {
	scheme := DefaultNamingScheme()
	tests := []struct {
		name      string
		file      string
		wantIndex int
		wantOK    bool
	}{
		{name: "prefixed", file: "lag03_buildings.qlr", wantIndex: 3, wantOK: true},
		{name: "prefix upper case", file: "LAG12_roads.qlr", wantIndex: 12, wantOK: true},
		{name: "no separator", file: "lag7roads.qlr", wantIndex: 7, wantOK: true},
		{name: "leading digits", file: "05_contours.qlr", wantIndex: 5, wantOK: true},
		{name: "directory ignored", file: "/data/lag9/lag02_water.qlr", wantIndex: 2, wantOK: true},
		{name: "no digits", file: "notes.qlr", wantOK: false},
		{name: "prefix without digits", file: "lag_roads.qlr", wantOK: false},
		{name: "digits not at start", file: "roads_01.qlr", wantOK: false},
		{name: "overflow", file: "lag99999999999999999999999_x.qlr", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ok := scheme.ParseIndex(tt.file)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIndex, index)
			}
		})
	}
}

func TestNamingSchemePattern(t *testing.T) {
	scheme, err := NewNamingScheme("", `^layer-(\d+)-`, ".qlr")
	require.NoError(t, err)

	index, ok := scheme.ParseIndex("layer-40-roads.qlr")
	require.True(t, ok)
	assert.Equal(t, 40, index)

	_, ok = scheme.ParseIndex("lag01_roads.qlr")
	assert.False(t, ok)
}

func TestNewNamingSchemeRejectsBadPatterns(t *testing.T) {
	for _, pattern := range []string{`^lag(\d+`, `^lag\d+`} {
		_, err := NewNamingScheme(DefaultPrefix, pattern, DefaultExtension)
		require.Error(t, err, pattern)
		if diff := cmp.Diff(errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err)); diff != "" {
			t.Fatalf("unexpected error code (-want +got):\n%s", diff)
		}
	}
}

func TestNamingSchemeMatches(t *testing.T) {
	scheme, err := NewNamingScheme(DefaultPrefix, "", "QLR")
	require.NoError(t, err)
	assert.True(t, scheme.Matches("lag01_roads.qlr"))
	assert.True(t, scheme.Matches("lag01_roads.QLR"))
	assert.False(t, scheme.Matches("lag01_roads.qgs"))
	assert.False(t, scheme.Matches("qlr"))

	wildcard, err := NewNamingScheme(DefaultPrefix, "", "*")
	require.NoError(t, err)
	assert.True(t, wildcard.Matches("README"))
}

func TestFilenameSorterSort(t *testing.T) {
	paths := []string{
		"src/lag01_roads.qlr",
		"src/lag03_buildings.qlr",
		"src/notes.qlr",
		"src/lag02_water.qlr",
		"src/readme.txt",
		"src/lag02_rivers.qlr",
		"src/zz.qlr",
	}
	original := append([]string(nil), paths...)

	tests := []struct {
		name      string
		direction types.SortDirection
		want      []string
	}{
		{
			name:      "descending by default",
			direction: "",
			want: []string{
				"lag03_buildings.qlr", "lag02_water.qlr", "lag02_rivers.qlr",
				"lag01_roads.qlr", "notes.qlr", "zz.qlr",
			},
		},
		{
			name:      "ascending",
			direction: types.SortAscending,
			want: []string{
				"lag01_roads.qlr", "lag02_water.qlr", "lag02_rivers.qlr",
				"lag03_buildings.qlr", "notes.qlr", "zz.qlr",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorter := NewFilenameSorter(DefaultNamingScheme(), tt.direction)
			files := sorter.Sort(t.Context(), paths)
			var names []string
			for _, file := range files {
				names = append(names, file.Name)
			}
			if diff := cmp.Diff(tt.want, names); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(original, paths); diff != "" {
				t.Fatalf("input mutated (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilenameSorterIsDeterministic(t *testing.T) {
	paths := []string{"b/lag10_a.qlr", "b/lag2_b.qlr", "b/x.qlr", "b/lag10_c.qlr"}
	sorter := NewFilenameSorter(DefaultNamingScheme(), types.SortDescending)
	first := sorter.Sort(t.Context(), paths)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, sorter.Sort(t.Context(), paths)); diff != "" {
			t.Fatalf("sort is not deterministic (-want +got):\n%s", diff)
		}
	}
	require.Len(t, first, 4)
	assert.Equal(t, 10, *first[0].Index)
	assert.Equal(t, "b/lag10_a.qlr", first[0].Path)
	assert.False(t, first[3].HasIndex())
}

func TestFilenameSorterEmpty(t *testing.T) {
	files := NewFilenameSorter(DefaultNamingScheme(), types.SortDescending).Sort(t.Context(), nil)
	assert.Empty(t, files)
}
