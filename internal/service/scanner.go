package service

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// DiscoveredFile is one candidate corpus file found during a scan
type DiscoveredFile struct {
	SourcePath  string
	DisplayName string
	Type        domain.ContentType
}

// textExtensions lists the file extensions treated as text-bearing corpus
// content. Everything else is ignored during discovery.
var textExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".vtt":      true,
	".srt":      true,
}

// keywordTypes maps filename tokens to content types, checked in order.
// The first matching token wins.
var keywordTypes = []struct {
	token string
	t     domain.ContentType
}{
	{"transcript", domain.ContentTypeTranscript},
	{"interview", domain.ContentTypeTranscript},
	{"style", domain.ContentTypeStyleGuide},
	{"styleguide", domain.ContentTypeStyleGuide},
	{"voice", domain.ContentTypeStyleGuide},
	{"framework", domain.ContentTypeFramework},
	{"playbook", domain.ContentTypeFramework},
	{"sop", domain.ContentTypeSOP},
	{"checklist", domain.ContentTypeSOP},
	{"course", domain.ContentTypeCourse},
	{"lesson", domain.ContentTypeCourse},
	{"blog", domain.ContentTypeBlogPost},
	{"article", domain.ContentTypeBlogPost},
	{"newsletter", domain.ContentTypeBlogPost},
	{"tweet", domain.ContentTypeSocialMedia},
	{"thread", domain.ContentTypeSocialMedia},
	{"social", domain.ContentTypeSocialMedia},
	{"post", domain.ContentTypeSocialMedia},
}

// extensionTypes is the last inference step before falling back to other
var extensionTypes = map[string]domain.ContentType{
	".vtt": domain.ContentTypeTranscript,
	".srt": domain.ContentTypeTranscript,
	".md":  domain.ContentTypeBlogPost,
}

// Scanner walks the configured corpus roots and classifies what it finds.
// Scanning is pure discovery: it reads directory structure and names only,
// never file contents, and touches no persistent state.
type Scanner struct {
	roots []config.Root
}

// NewScanner creates a new Scanner over the declared corpus roots
func NewScanner(roots []config.Root) *Scanner {
	return &Scanner{roots: roots}
}

// Scan walks every root in declaration order. Unreadable roots are reported
// as warnings and skipped; a scan never aborts. Files reachable through more
// than one root are deduplicated by absolute path, first root wins. Results
// are sorted by source path so a scan is deterministic.
func (s *Scanner) Scan(ctx context.Context) ([]DiscoveredFile, []domain.ItemError) {
	seen := make(map[string]bool)
	var files []DiscoveredFile
	var warnings []domain.ItemError

	for _, root := range s.roots {
		if ctx.Err() != nil {
			break
		}

		rootPath, err := filepath.Abs(root.Path)
		if err != nil {
			warnings = append(warnings, domain.NewItemError(root.Path,
				domain.ErrCorpusRootUnreadable.WithCause(err)))
			continue
		}

		rootType := domain.ContentType(root.Type)

		walkErr := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Report the unreadable entry and keep walking siblings. A
				// declared root that is gone entirely gets its own code.
				werr := domain.ErrCorpusRootUnreadable.WithCause(err)
				if path == rootPath && errors.Is(err, fs.ErrNotExist) {
					werr = domain.ErrRootNotFound.WithCause(err)
				}
				warnings = append(warnings, domain.NewItemError(path, werr))
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != rootPath && strings.HasPrefix(d.Name(), ".") {
					return fs.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return nil
			}
			if !textExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
				return nil
			}
			if seen[path] {
				return nil
			}
			seen[path] = true

			files = append(files, DiscoveredFile{
				SourcePath:  path,
				DisplayName: d.Name(),
				Type:        inferType(rootType, d.Name()),
			})
			return nil
		})
		if walkErr != nil {
			warnings = append(warnings, domain.NewItemError(root.Path,
				domain.ErrCorpusRootUnreadable.WithCause(walkErr)))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].SourcePath < files[j].SourcePath
	})

	return files, warnings
}

// inferType resolves a file's content type. Precedence: the root's explicit
// tag, then filename keyword tokens, then the extension heuristic, then other.
func inferType(rootType domain.ContentType, name string) domain.ContentType {
	if rootType != "" {
		return rootType
	}

	tokens := tokenizeName(name)
	for _, kt := range keywordTypes {
		if tokens[kt.token] {
			return kt.t
		}
	}

	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}

	return domain.ContentTypeOther
}

// tokenizeName splits a filename (without extension) into lowercase tokens
func tokenizeName(name string) map[string]bool {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	tokens := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(strings.ToLower(base), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		tokens[tok] = true
	}
	return tokens
}
