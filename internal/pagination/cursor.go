// Package pagination implements opaque cursors for index listings. A cursor
// names the last record of the previous page by ID and processed-at
// timestamp; the timestamp keeps the cursor usable when the record itself is
// re-ingested or pruned between pages.
package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"
)

// Cursor represents a decoded pagination cursor
type Cursor struct {
	LastID      string
	ProcessedAt time.Time
}

// PageResult represents a paginated result set
type PageResult[T any] struct {
	Items   []T    `json:"items"`
	Cursor  string `json:"cursor,omitempty"`
	HasMore bool   `json:"has_more"`
}

var (
	ErrInvalidCursor = errors.New("invalid cursor format")
)

// EncodeCursor creates a base64-encoded cursor from the last item ID and its
// processed-at timestamp
func EncodeCursor(lastID string, processedAt time.Time) string {
	if lastID == "" {
		return ""
	}
	raw := lastID + "|" + processedAt.UTC().Format(time.RFC3339Nano)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor decodes a base64-encoded cursor. An empty cursor decodes to
// nil, meaning "first page".
func DecodeCursor(cursor string) (*Cursor, error) {
	if cursor == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidCursor
	}

	processedAt, err := time.Parse(time.RFC3339Nano, parts[1])
	if err != nil {
		return nil, ErrInvalidCursor
	}

	return &Cursor{
		LastID:      parts[0],
		ProcessedAt: processedAt,
	}, nil
}

// Page slices one page out of records ordered most-recently-processed first.
// The cursor's record is located by ID; if it vanished since the last page,
// the page resumes at the first record processed strictly before the
// cursor's timestamp.
func Page[T any](records []T, cursor *Cursor, limit int, getID func(T) string, getProcessedAt func(T) time.Time) PageResult[T] {
	start := 0
	if cursor != nil {
		start = len(records)
		for i, rec := range records {
			if getID(rec) == cursor.LastID {
				start = i + 1
				break
			}
			if getProcessedAt(rec).Before(cursor.ProcessedAt) {
				start = i
				break
			}
		}
	}

	end := start + limit
	if limit <= 0 || end > len(records) {
		end = len(records)
	}

	page := PageResult[T]{
		Items:   records[start:end],
		HasMore: end < len(records),
	}
	if page.HasMore && len(page.Items) > 0 {
		last := page.Items[len(page.Items)-1]
		page.Cursor = EncodeCursor(getID(last), getProcessedAt(last))
	}

	return page
}
