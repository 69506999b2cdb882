package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

func writeCorpusFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScannerScan(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit root tag wins over filename and extension", func(t *testing.T) {
		dir := t.TempDir()
		writeCorpusFile(t, dir, "blog-announcement.md", "hello")

		scanner := NewScanner([]config.Root{{Path: dir, Type: string(domain.ContentTypeTranscript)}})
		files, warnings := scanner.Scan(ctx)

		require.Empty(t, warnings)
		require.Len(t, files, 1)
		assert.Equal(t, domain.ContentTypeTranscript, files[0].Type)
	})

	t.Run("filename keyword beats extension heuristic", func(t *testing.T) {
		dir := t.TempDir()
		writeCorpusFile(t, dir, "sales-call-transcript.md", "hello")

		scanner := NewScanner([]config.Root{{Path: dir}})
		files, _ := scanner.Scan(ctx)

		require.Len(t, files, 1)
		assert.Equal(t, domain.ContentTypeTranscript, files[0].Type)
	})

	t.Run("extension heuristic applies without keywords", func(t *testing.T) {
		dir := t.TempDir()
		writeCorpusFile(t, dir, "episode-12.vtt", "WEBVTT")
		writeCorpusFile(t, dir, "untitled.md", "hello")
		writeCorpusFile(t, dir, "notes.txt", "hello")

		scanner := NewScanner([]config.Root{{Path: dir}})
		files, _ := scanner.Scan(ctx)

		require.Len(t, files, 3)
		byName := map[string]domain.ContentType{}
		for _, f := range files {
			byName[f.DisplayName] = f.Type
		}
		assert.Equal(t, domain.ContentTypeTranscript, byName["episode-12.vtt"])
		assert.Equal(t, domain.ContentTypeBlogPost, byName["untitled.md"])
		assert.Equal(t, domain.ContentTypeOther, byName["notes.txt"])
	})

	t.Run("keyword matching is token based", func(t *testing.T) {
		dir := t.TempDir()
		writeCorpusFile(t, dir, "lifestyle-tips.txt", "hello")
		writeCorpusFile(t, dir, "brand-style-guide.txt", "hello")

		scanner := NewScanner([]config.Root{{Path: dir}})
		files, _ := scanner.Scan(ctx)

		byName := map[string]domain.ContentType{}
		for _, f := range files {
			byName[f.DisplayName] = f.Type
		}
		assert.Equal(t, domain.ContentTypeOther, byName["lifestyle-tips.txt"])
		assert.Equal(t, domain.ContentTypeStyleGuide, byName["brand-style-guide.txt"])
	})

	t.Run("ignores unsupported extensions and hidden files", func(t *testing.T) {
		dir := t.TempDir()
		writeCorpusFile(t, dir, "image.png", "binary")
		writeCorpusFile(t, dir, ".draft.md", "hidden")
		writeCorpusFile(t, filepath.Join(dir, ".git"), "config.md", "hidden dir")
		writeCorpusFile(t, dir, "kept.md", "hello")

		scanner := NewScanner([]config.Root{{Path: dir}})
		files, _ := scanner.Scan(ctx)

		require.Len(t, files, 1)
		assert.Equal(t, "kept.md", files[0].DisplayName)
	})

	t.Run("deduplicates overlapping roots with first root winning", func(t *testing.T) {
		dir := t.TempDir()
		writeCorpusFile(t, dir, "shared.md", "hello")

		scanner := NewScanner([]config.Root{
			{Path: dir, Type: string(domain.ContentTypeStyleGuide)},
			{Path: dir, Type: string(domain.ContentTypeBlogPost)},
		})
		files, _ := scanner.Scan(ctx)

		require.Len(t, files, 1)
		assert.Equal(t, domain.ContentTypeStyleGuide, files[0].Type)
	})

	t.Run("missing root warns but does not abort", func(t *testing.T) {
		good := t.TempDir()
		writeCorpusFile(t, good, "kept.md", "hello")

		scanner := NewScanner([]config.Root{
			{Path: filepath.Join(good, "does-not-exist")},
			{Path: good},
		})
		files, warnings := scanner.Scan(ctx)

		require.Len(t, files, 1)
		require.NotEmpty(t, warnings)
		assert.Equal(t, domain.ErrCodeNotFound, warnings[0].Code)
	})

	t.Run("results are sorted by source path", func(t *testing.T) {
		dir := t.TempDir()
		writeCorpusFile(t, dir, "b.md", "hello")
		writeCorpusFile(t, dir, "a.md", "hello")
		writeCorpusFile(t, dir, "c.md", "hello")

		scanner := NewScanner([]config.Root{{Path: dir}})
		files, _ := scanner.Scan(ctx)

		require.Len(t, files, 3)
		assert.True(t, files[0].SourcePath < files[1].SourcePath)
		assert.True(t, files[1].SourcePath < files[2].SourcePath)
	})

	t.Run("scan never reads file contents", func(t *testing.T) {
		dir := t.TempDir()
		path := writeCorpusFile(t, dir, "locked.md", "hello")
		require.NoError(t, os.Chmod(path, 0o000))
		t.Cleanup(func() { _ = os.Chmod(path, 0o644) })

		scanner := NewScanner([]config.Root{{Path: dir}})
		files, warnings := scanner.Scan(ctx)

		require.Empty(t, warnings)
		require.Len(t, files, 1)
	})
}
