package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID          string
	ProcessedAt time.Time
}

func testRecords() []testRecord {
	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	// Most recently processed first, like the index
	return []testRecord{
		{ID: "e", ProcessedAt: base.Add(4 * time.Hour)},
		{ID: "d", ProcessedAt: base.Add(3 * time.Hour)},
		{ID: "c", ProcessedAt: base.Add(2 * time.Hour)},
		{ID: "b", ProcessedAt: base.Add(1 * time.Hour)},
		{ID: "a", ProcessedAt: base},
	}
}

func pageIDs(page PageResult[testRecord]) []string {
	ids := make([]string, 0, len(page.Items))
	for _, rec := range page.Items {
		ids = append(ids, rec.ID)
	}
	return ids
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC)

	encoded := EncodeCursor("abc123", at)
	require.NotEmpty(t, encoded)

	decoded, err := DecodeCursor(encoded)
	require.NoError(t, err)
	assert.Equal(t, "abc123", decoded.LastID)
	assert.True(t, decoded.ProcessedAt.Equal(at))
}

func TestDecodeCursor(t *testing.T) {
	t.Run("empty cursor means first page", func(t *testing.T) {
		decoded, err := DecodeCursor("")
		require.NoError(t, err)
		assert.Nil(t, decoded)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := DecodeCursor("not-base64!!")
		assert.ErrorIs(t, err, ErrInvalidCursor)
	})

	t.Run("missing separator is rejected", func(t *testing.T) {
		_, err := DecodeCursor(base64.StdEncoding.EncodeToString([]byte("justanid")))
		assert.ErrorIs(t, err, ErrInvalidCursor)
	})

	t.Run("bad timestamp is rejected", func(t *testing.T) {
		_, err := DecodeCursor(base64.StdEncoding.EncodeToString([]byte("id|yesterday")))
		assert.ErrorIs(t, err, ErrInvalidCursor)
	})
}

func TestPage(t *testing.T) {
	getID := func(r testRecord) string { return r.ID }
	getAt := func(r testRecord) time.Time { return r.ProcessedAt }

	t.Run("walks all pages in order", func(t *testing.T) {
		records := testRecords()

		first := Page(records, nil, 2, getID, getAt)
		assert.Equal(t, []string{"e", "d"}, pageIDs(first))
		require.True(t, first.HasMore)
		require.NotEmpty(t, first.Cursor)

		cursor, err := DecodeCursor(first.Cursor)
		require.NoError(t, err)
		second := Page(records, cursor, 2, getID, getAt)
		assert.Equal(t, []string{"c", "b"}, pageIDs(second))
		require.True(t, second.HasMore)

		cursor, err = DecodeCursor(second.Cursor)
		require.NoError(t, err)
		third := Page(records, cursor, 2, getID, getAt)
		assert.Equal(t, []string{"a"}, pageIDs(third))
		assert.False(t, third.HasMore)
		assert.Empty(t, third.Cursor)
	})

	t.Run("zero limit returns everything", func(t *testing.T) {
		page := Page(testRecords(), nil, 0, getID, getAt)
		assert.Len(t, page.Items, 5)
		assert.False(t, page.HasMore)
	})

	t.Run("vanished cursor record resumes by timestamp", func(t *testing.T) {
		records := testRecords()
		// Cursor points at "d", which has since been pruned
		cursor := &Cursor{LastID: "d", ProcessedAt: records[1].ProcessedAt}
		remaining := append([]testRecord{records[0]}, records[2:]...)

		page := Page(remaining, cursor, 2, getID, getAt)

		assert.Equal(t, []string{"c", "b"}, pageIDs(page))
	})

	t.Run("cursor past the end yields an empty page", func(t *testing.T) {
		records := testRecords()
		cursor := &Cursor{LastID: "a", ProcessedAt: records[4].ProcessedAt}

		page := Page(records, cursor, 2, getID, getAt)

		assert.Empty(t, page.Items)
		assert.False(t, page.HasMore)
	})
}
