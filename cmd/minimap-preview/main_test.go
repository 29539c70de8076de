package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmoscout/csp-minimap/internal/bookmarks"
	"github.com/cosmoscout/csp-minimap/internal/config"
	"github.com/cosmoscout/csp-minimap/internal/database"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{name: "none", args: nil, want: options{}},
		{name: "demo", args: []string{"demo"}, want: options{demo: true}},
		{name: "case insensitive", args: []string{"DEMO", "DumpDB", "out.db"}, want: options{demo: true, dumpDB: "out.db"}},
		{name: "dumpdb without path", args: []string{"dumpdb"}, wantErr: true},
		{name: "unknown", args: []string{"nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeedBookmarks(t *testing.T) {
	m := database.NewManager(zerolog.Nop())
	require.NoError(t, m.Connect(""))
	t.Cleanup(func() { m.Close() })
	require.NoError(t, m.Setup(bookmarks.Models...))
	store := bookmarks.New(m.DB, zerolog.Nop())

	bodies := []config.BodyConfig{
		{Name: "Earth", Radii: [3]float64{6378137, 6356752.3142, 6378137}},
		{Name: "Moon", Radii: [3]float64{1737400, 1737400, 1737400}},
	}
	require.NoError(t, seedBookmarks(store, bodies))

	got := store.Bookmarks()
	require.Len(t, got, 3)
	assert.Equal(t, "Berlin", got[0].Name)
	assert.Nil(t, got[0].Color)
	assert.Equal(t, "Tranquility Base", got[2].Name)

	center, pos, ok := got[2].Position()
	require.True(t, ok)
	assert.Equal(t, "Moon", center)
	assert.InDelta(t, 1737400, pos.Len(), 1e-3)
}
