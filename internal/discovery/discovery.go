package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Deck file extensions recognized by Discover, in priority-free order.
var deckSuffixes = []string{".deck.yaml", ".deck.yml", ".deck.json"}

// DiscoveredDeck represents a deck file found during directory traversal.
type DiscoveredDeck struct {
	Name string // deck name derived from the file name
	Path string // absolute path to the deck file
	Dir  string // absolute path to the containing directory
}

// IsDeckFile reports whether a file name looks like a deck file.
func IsDeckFile(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range deckSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// DeckName derives a deck name from a deck file path by stripping the
// directory and the .deck.* suffix.
func DeckName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, ".deck")
}

// Discover walks the given root directory and finds all deck files
// (*.deck.yaml, *.deck.yml, *.deck.json). Hidden directories and
// dependency trees (node_modules, vendor) are skipped. Results follow
// the lexical walk order, so output is deterministic.
func Discover(root string) ([]DiscoveredDeck, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}

	// Verify root exists before walking
	if _, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("root path: %w", err)
	}

	var decks []DiscoveredDeck

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}

		// Skip hidden directories
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && path != absRoot {
			return fs.SkipDir
		}

		// Skip node_modules and similar
		if d.IsDir() && (d.Name() == "node_modules" || d.Name() == "vendor") {
			return fs.SkipDir
		}

		if !d.IsDir() && IsDeckFile(d.Name()) {
			decks = append(decks, DiscoveredDeck{
				Name: DeckName(path),
				Path: path,
				Dir:  filepath.Dir(path),
			})
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", absRoot, err)
	}

	return decks, nil
}
