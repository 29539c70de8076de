// Package bookmarks is a SQLite-backed bookmark collection. It stands in for
// the host's bookmark store in the preview harness.
package bookmarks

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cosmoscout/csp-minimap/pkg/core"
	"github.com/cosmoscout/csp-minimap/pkg/event"
)

// ErrNotFound is returned for ids that are not in the store.
var ErrNotFound = errors.New("bookmark not found")

// record is the table row of a bookmark. Optional parts of the bookmark are
// flattened into columns guarded by a Has* flag.
type record struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Name        string
	HasLocation bool
	Center      string `gorm:"index"`
	Frame       string
	HasPosition bool
	X, Y, Z     float64
	HasColor    bool
	R, G, B     float32
}

func (record) TableName() string { return "bookmarks" }

// Models lists the tables the store needs migrated.
var Models = []any{&record{}}

// Store persists bookmarks and emits added/removed signals.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger

	added   event.Signal[core.Bookmark]
	removed event.Signal[core.Bookmark]
}

// New returns a store on db. The bookmark table must be migrated already.
func New(db *gorm.DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With().Str("component", "bookmarks").Logger(),
	}
}

func (s *Store) OnBookmarkAdded() *event.Signal[core.Bookmark]   { return &s.added }
func (s *Store) OnBookmarkRemoved() *event.Signal[core.Bookmark] { return &s.removed }

// Add stores b under a new ID, which is returned. The ID of b is ignored.
// Errors of added handlers are returned after the bookmark was stored.
func (s *Store) Add(b core.Bookmark) (uint64, error) {
	rec := toRecord(b)
	rec.ID = 0
	if err := s.db.Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("storing bookmark %q: %w", b.Name, err)
	}

	stored := fromRecord(rec)
	s.log.Debug().Uint64("id", stored.ID).Str("name", stored.Name).Msg("Bookmark added")

	if err := s.added.Emit(stored); err != nil {
		return stored.ID, fmt.Errorf("bookmark %d added: %w", stored.ID, err)
	}
	return stored.ID, nil
}

// Remove deletes a bookmark.
func (s *Store) Remove(id uint64) error {
	b, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&record{}, id).Error; err != nil {
		return fmt.Errorf("deleting bookmark %d: %w", id, err)
	}
	s.log.Debug().Uint64("id", id).Msg("Bookmark removed")

	if err := s.removed.Emit(b); err != nil {
		return fmt.Errorf("bookmark %d removed: %w", id, err)
	}
	return nil
}

// Get returns a single bookmark.
func (s *Store) Get(id uint64) (core.Bookmark, error) {
	var rec record
	err := s.db.First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Bookmark{}, fmt.Errorf("bookmark %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Bookmark{}, fmt.Errorf("loading bookmark %d: %w", id, err)
	}
	return fromRecord(rec), nil
}

// Bookmarks returns all bookmarks ordered by ID. Read errors are logged and
// yield an empty list.
func (s *Store) Bookmarks() []core.Bookmark {
	var recs []record
	if err := s.db.Order("id").Find(&recs).Error; err != nil {
		s.log.Error().Err(err).Msg("Failed to list bookmarks")
		return nil
	}

	out := make([]core.Bookmark, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromRecord(rec))
	}
	return out
}

func toRecord(b core.Bookmark) record {
	rec := record{ID: b.ID, Name: b.Name}
	if loc := b.Location; loc != nil {
		rec.HasLocation = true
		rec.Center = loc.Center
		rec.Frame = loc.Frame
		if loc.Position != nil {
			rec.HasPosition = true
			rec.X, rec.Y, rec.Z = loc.Position.Elem()
		}
	}
	if b.Color != nil {
		rec.HasColor = true
		rec.R, rec.G, rec.B = b.Color.Elem()
	}
	return rec
}

func fromRecord(rec record) core.Bookmark {
	b := core.Bookmark{ID: rec.ID, Name: rec.Name}
	if rec.HasLocation {
		b.Location = &core.Location{Center: rec.Center, Frame: rec.Frame}
		if rec.HasPosition {
			b.Location.Position = &mgl64.Vec3{rec.X, rec.Y, rec.Z}
		}
	}
	if rec.HasColor {
		b.Color = &mgl32.Vec3{rec.R, rec.G, rec.B}
	}
	return b
}
