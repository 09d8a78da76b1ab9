// Package wishlist is the persisted list of movies the user saved.
package wishlist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/artpar/marquee/internal/catalog"
	"github.com/artpar/marquee/internal/kv"
	"github.com/artpar/marquee/internal/persist"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// StorageKey is the kv key holding the wishlist.
const StorageKey = "movie-wishlist"

// Store is the wishlist collection.
type Store struct {
	*persist.Collection[catalog.Movie]
}

// New creates a wishlist backed by store. Call Load before reading.
func New(store kv.Store, logger *zap.Logger) *Store {
	return &Store{
		Collection: persist.NewCollection[catalog.Movie](store, StorageKey, logger),
	}
}

// Summary returns the wishlist size as a sentence.
func (s *Store) Summary() string {
	n := s.Len()
	if n == 1 {
		return "1 movie in your wishlist"
	}
	return fmt.Sprintf("%d movies in your wishlist", n)
}

// Export writes the wishlist to w as "json" or "yaml".
func (s *Store) Export(w io.Writer, format string) error {
	items := s.Items()
	if items == nil {
		items = []catalog.Movie{}
	}

	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("failed to encode wishlist: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}
