package pdf

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Scan limits
const (
	DefaultScanDepth     = 8
	DefaultScanFileLimit = 500
	DefaultFormCacheTTL  = 5 * time.Minute
	DefaultFormCacheSize = 1024
)

// formCache remembers whether a file has a form. Entries are invalidated by
// size or modification time changes and expire after ttl.
type formCache struct {
	ttl     time.Duration
	entries *lruCache[formCacheEntry]
}

type formCacheEntry struct {
	size    int64
	modTime time.Time
	hasForm bool
	checked time.Time
}

func newFormCache(ttl time.Duration, capacity int) *formCache {
	return &formCache{ttl: ttl, entries: newLRUCache[formCacheEntry](capacity)}
}

func (c *formCache) get(path string, info fs.FileInfo) (hasForm, ok bool) {
	e, found := c.entries.Get(path)
	if !found {
		return false, false
	}
	if e.size != info.Size() || !e.modTime.Equal(info.ModTime()) || time.Since(e.checked) > c.ttl {
		c.entries.Remove(path)
		return false, false
	}
	return e.hasForm, true
}

func (c *formCache) set(path string, info fs.FileInfo, hasForm bool) {
	c.entries.Put(path, formCacheEntry{
		size:    info.Size(),
		modTime: info.ModTime(),
		hasForm: hasForm,
		checked: time.Now(),
	})
}

func (c *formCache) len() int {
	return c.entries.Len()
}

// Search discovers PDF files under a directory and, on request, keeps only
// those with an interactive form.
type Search struct {
	validator *Validator
	reader    *FormReader
	cache     *formCache
	maxDepth  int
	fileLimit int
}

// NewSearch creates a search handler using validator for file checks and
// reader for form detection.
func NewSearch(validator *Validator, reader *FormReader) *Search {
	return &Search{
		validator: validator,
		reader:    reader,
		cache:     newFormCache(DefaultFormCacheTTL, DefaultFormCacheSize),
		maxDepth:  DefaultScanDepth,
		fileLimit: DefaultScanFileLimit,
	}
}

// SearchDirectory walks req.Directory and returns matching PDF files in walk
// order. The caller is responsible for confining req.Directory.
func (s *Search) SearchDirectory(ctx context.Context, req PDFSearchDirectoryRequest) (*PDFSearchDirectoryResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	files, truncated, err := s.scan(ctx, req.Directory, s.fileLimit, func(path string, info fs.FileInfo) (FileInfo, bool) {
		if query != "" && !s.matchesQuery(info.Name(), query) {
			return FileInfo{}, false
		}
		fi := newFileInfo(path, info)
		if req.FormsOnly {
			hasForm := s.hasForm(path, info)
			if !hasForm {
				return FileInfo{}, false
			}
			fi.HasForm = &hasForm
		}
		return fi, true
	})
	if err != nil {
		return nil, err
	}

	return &PDFSearchDirectoryResult{
		Files:       files,
		TotalCount:  len(files),
		Directory:   req.Directory,
		SearchQuery: req.Query,
		FormsOnly:   req.FormsOnly,
		Truncated:   truncated,
	}, nil
}

// CacheStats reports the form detection cache statistics.
func (s *Search) CacheStats() CacheStats {
	return s.cache.entries.Stats()
}

// FindPDFsLimited lists up to limit PDF files without opening them.
func (s *Search) FindPDFsLimited(ctx context.Context, directory string, limit int) ([]FileInfo, bool, error) {
	return s.scan(ctx, directory, limit, func(path string, info fs.FileInfo) (FileInfo, bool) {
		return newFileInfo(path, info), true
	})
}

// scan walks root up to maxDepth, skipping hidden entries and symlinks, and
// collects what keep accepts. truncated reports a hit file limit or a
// cancelled context.
func (s *Search) scan(ctx context.Context, root string, limit int,
	keep func(path string, info fs.FileInfo) (FileInfo, bool),
) (files []FileInfo, truncated bool, err error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, false, fmt.Errorf("directory does not exist: %s", root)
	}
	if err != nil {
		return nil, false, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, false, fmt.Errorf("path is not a directory: %s", root)
	}

	files = make([]FileInfo, 0)
	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			truncated = true
			return filepath.SkipAll
		}
		if err != nil {
			// Unreadable entries are skipped
			return nil
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if d.IsDir() {
			if s.maxDepth > 0 && strings.Count(path, string(filepath.Separator))-rootDepth >= s.maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !isPDFName(d.Name()) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		if err := s.validator.ValidateFileInfo(path, fi); err != nil {
			return nil
		}

		entry, ok := keep(path, fi)
		if !ok {
			return nil
		}
		files = append(files, entry)
		if limit > 0 && len(files) >= limit {
			truncated = true
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("error walking directory: %w", err)
	}

	return files, truncated, nil
}

func (s *Search) hasForm(path string, info fs.FileInfo) bool {
	if hasForm, ok := s.cache.get(path, info); ok {
		return hasForm
	}
	hasForm, err := s.reader.HasForm(path)
	if err != nil {
		// Unreadable files are never reported as forms
		hasForm = false
	}
	s.cache.set(path, info, hasForm)
	return hasForm
}

func newFileInfo(path string, info fs.FileInfo) FileInfo {
	return FileInfo{
		Path:         path,
		Name:         info.Name(),
		Size:         info.Size(),
		ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
	}
}

// matchesQuery performs fuzzy matching on the filename
func (s *Search) matchesQuery(filename, query string) bool {
	if query == "" {
		return true
	}

	fileName := strings.ToLower(filename)
	if strings.Contains(fileName, query) {
		return true
	}

	nameWithoutExt := strings.TrimSuffix(fileName, ".pdf")

	// Every query word must appear in some filename word
	words := splitIntoWords(nameWithoutExt)
	for _, queryWord := range splitIntoWords(query) {
		found := false
		for _, word := range words {
			if strings.Contains(word, queryWord) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// splitIntoWords splits a string into lower-case words using common separators
func splitIntoWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch r {
		case ' ', '_', '-', '.', '(', ')', '[', ']':
			return true
		}
		return false
	})
}
