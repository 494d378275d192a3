package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/josephgoksu/zettelwing/models"
	"github.com/josephgoksu/zettelwing/search"
)

// Tier names one local storage space.
type Tier string

const (
	TierProject Tier = "project"
	TierUser    Tier = "user"
)

// Sentinel errors for store operations.
var (
	ErrNotFound = errors.New("entry not found")
	ErrExists   = errors.New("entry already exists")
)

// Location identifies where a resolved entry lives.
type Location struct {
	Tier Tier
	Path string
}

// SearchQuery carries the filters for a local search.
type SearchQuery struct {
	Query     string
	Category  string
	EntryType string
	Tags      []string
	Limit     int
}

// EntryUpdate holds the mutable fields of an update. Nil pointers leave the
// stored value untouched.
type EntryUpdate struct {
	Title      *string
	Content    *string
	Tags       []string
	TagsSet    bool
	SourceType *string
	SourceURL  *string
}

// LocalStore manages the project and user knowledge tiers. Both roots are
// explicit; the store never consults the working directory or environment.
type LocalStore struct {
	fs          afero.Fs
	projectRoot string
	projectDir  string
	userDir     string
}

// NewLocalStore creates a store over the given filesystem. projectDir and
// userDir are the knowledge directories of the two tiers; projectRoot is
// used only to render project paths relative in responses.
func NewLocalStore(fs afero.Fs, projectRoot, projectDir, userDir string) *LocalStore {
	return &LocalStore{
		fs:          fs,
		projectRoot: projectRoot,
		projectDir:  projectDir,
		userDir:     userDir,
	}
}

// ProjectRoot returns the configured project root directory.
func (s *LocalStore) ProjectRoot() string { return s.projectRoot }

// UserDir returns the user-tier knowledge directory.
func (s *LocalStore) UserDir() string { return s.userDir }

func (s *LocalStore) baseDir(tier Tier) (string, error) {
	switch tier {
	case TierProject:
		return s.projectDir, nil
	case TierUser:
		return s.userDir, nil
	default:
		return "", fmt.Errorf("invalid location: %s. Use 'project' or 'user'", tier)
	}
}

// Resolve finds an entry by id, checking project space before user space.
// An empty category scans the whole tier; otherwise the category directory
// is probed first and the scan is the fallback.
func (s *LocalStore) Resolve(zettelID, category string) (*Location, error) {
	for _, tier := range []Tier{TierProject, TierUser} {
		base, _ := s.baseDir(tier)
		if p := s.findIn(base, zettelID, category); p != "" {
			return &Location{Tier: tier, Path: p}, nil
		}
	}
	return nil, ErrNotFound
}

func (s *LocalStore) findIn(baseDir, zettelID, category string) string {
	if category != "" {
		candidate := filepath.Join(baseDir, category, zettelID+".md")
		if ok, _ := afero.Exists(s.fs, candidate); ok {
			return candidate
		}
	}

	var found string
	target := zettelID + ".md"
	afero.Walk(s.fs, baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || found != "" {
			return nil
		}
		if !info.IsDir() && info.Name() == target {
			found = path
		}
		return nil
	})
	return found
}

// Read resolves and parses an entry from local storage.
func (s *LocalStore) Read(zettelID, category string) (Document, *Location, error) {
	loc, err := s.Resolve(zettelID, category)
	if err != nil {
		return Document{}, nil, err
	}
	raw, err := afero.ReadFile(s.fs, loc.Path)
	if err != nil {
		return Document{}, nil, fmt.Errorf("failed to read %s: %w", loc.Path, err)
	}
	doc := ParseDocument(raw, stem(loc.Path))
	doc.Path = loc.Path
	return doc, loc, nil
}

// Create writes a new entry to the given tier. The entry's category is
// sanitized, or derived from the entry type when empty. It fails with
// ErrExists when the target file is already present.
func (s *LocalStore) Create(entry models.Entry, tier Tier) (string, error) {
	base, err := s.baseDir(tier)
	if err != nil {
		return "", err
	}

	if entry.Category != "" {
		entry.Category = SanitizeCategory(entry.Category)
	} else {
		entry.Category = CategoryForType(string(entry.EntryType))
	}

	target := filepath.Join(base, entry.Category, entry.ZettelID+".md")
	if ok, _ := afero.Exists(s.fs, target); ok {
		return "", fmt.Errorf("%w at %s", ErrExists, target)
	}
	if err := s.writeDocument(target, Document{Entry: entry}); err != nil {
		return "", err
	}
	return target, nil
}

// Write stores an entry at its canonical path in the given tier,
// overwriting any existing copy. Used when downloading registry entries.
func (s *LocalStore) Write(entry models.Entry, tier Tier) (string, error) {
	base, err := s.baseDir(tier)
	if err != nil {
		return "", err
	}
	category := entry.Category
	if category == "" {
		category = CategoryForType(string(entry.EntryType))
		entry.Category = category
	}
	target := filepath.Join(base, category, entry.ZettelID+".md")
	if err := s.writeDocument(target, Document{Entry: entry}); err != nil {
		return "", err
	}
	return target, nil
}

func (s *LocalStore) writeDocument(path string, doc Document) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := SerializeDocument(doc)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Update applies a partial update to an existing entry in place. The entry
// keeps its tier, path and untouched fields.
func (s *LocalStore) Update(zettelID string, upd EntryUpdate) (*Location, error) {
	doc, loc, err := s.Read(zettelID, "")
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		doc.Entry.Title = *upd.Title
	}
	if upd.Content != nil {
		doc.Entry.Content = *upd.Content
	}
	if upd.TagsSet {
		doc.Entry.Tags = upd.Tags
	}
	if upd.SourceType != nil {
		doc.Entry.SourceType = *upd.SourceType
	}
	if upd.SourceURL != nil {
		doc.Entry.SourceURL = *upd.SourceURL
	}

	if err := s.writeDocument(loc.Path, doc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Delete removes an entry from one tier. It reports whether a copy was
// found and removed; a missing copy is not an error.
func (s *LocalStore) Delete(zettelID string, tier Tier) (bool, error) {
	base, err := s.baseDir(tier)
	if err != nil {
		return false, err
	}
	path := s.findIn(base, zettelID, "")
	if path == "" {
		return false, nil
	}
	if err := s.fs.Remove(path); err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return true, nil
}

// Search scans both local tiers and returns ranked results. Project copies
// suppress user copies with the same id. Every query term must appear in an
// entry's title or content for it to rank at all.
func (s *LocalStore) Search(q SearchQuery) ([]models.SearchResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	results := s.searchTier(TierProject, q)
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		seen[r.ZettelID] = true
	}
	for _, r := range s.searchTier(TierUser, q) {
		if !seen[r.ZettelID] {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *LocalStore) searchTier(tier Tier, q SearchQuery) []models.SearchResult {
	base, _ := s.baseDir(tier)
	terms := search.Tokenize(q.Query)
	if len(terms) == 0 {
		return nil
	}

	scope := base
	if q.Category != "" {
		scope = filepath.Join(base, q.Category)
	}
	if ok, _ := afero.DirExists(s.fs, scope); !ok {
		return nil
	}

	var results []models.SearchResult
	afero.Walk(s.fs, scope, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(info.Name(), ".md") {
			return nil
		}
		raw, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return nil
		}
		doc := ParseDocument(raw, stem(path))
		entry := doc.Entry

		if q.EntryType != "" && string(entry.EntryType) != q.EntryType {
			return nil
		}
		if len(q.Tags) > 0 && !anyTagMatch(q.Tags, entry.Tags) {
			return nil
		}
		if !search.MatchesAll(terms, entry.Title, entry.Content) {
			return nil
		}

		// The directory the file sits in is the authoritative category,
		// regardless of frontmatter.
		categoryPath, _ := filepath.Rel(base, filepath.Dir(path))
		categoryPath = filepath.ToSlash(categoryPath)
		if categoryPath == "." {
			categoryPath = ""
		}

		score := search.Score(terms, entry.Title, entry.Content, entry.Category, entry.Tags)
		if score <= 0 {
			return nil
		}

		results = append(results, models.SearchResult{
			ZettelID:       entry.ZettelID,
			Title:          entry.Title,
			EntryType:      entry.EntryType,
			Category:       categoryPath,
			Tags:           entry.Tags,
			SourceLocation: string(tier),
			RelevanceScore: score / 100.0,
			Snippet:        search.Snippet(entry.Content, terms),
		})
		return nil
	})
	return results
}

// DiscoverCategories lists every category directory in a tier, as
// slash-separated relative paths. Hidden directories are skipped.
func (s *LocalStore) DiscoverCategories(tier Tier) ([]string, error) {
	base, err := s.baseDir(tier)
	if err != nil {
		return nil, err
	}
	if ok, _ := afero.DirExists(s.fs, base); !ok {
		return nil, nil
	}

	var categories []string
	afero.Walk(s.fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() || path == base {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		rel, relErr := filepath.Rel(base, path)
		if relErr != nil {
			return nil
		}
		categories = append(categories, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(categories)
	return categories, nil
}

func anyTagMatch(want, have []string) bool {
	for _, w := range want {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}

func stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}
