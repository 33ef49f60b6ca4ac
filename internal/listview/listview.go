// Package listview implements the in-memory list management used by every
// management screen: free-text search, fixed-size pagination, single-row
// inline editing and deletion over a collection fetched once from the API.
// Text search and page changes never trigger a re-fetch.
package listview

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Default page sizes used by the management screens.
const (
	DefaultPageSize = 10
	SmallPageSize   = 5
)

// ErrEditInProgress is returned when a second row is put into edit mode
// while another edit is still open.
var ErrEditInProgress = errors.New("another row is already being edited")

// ErrNotEditing is returned by draft operations when no edit is open.
var ErrNotEditing = errors.New("no row is being edited")

// ErrNotFound is returned when a row id does not exist in the collection.
var ErrNotFound = errors.New("row not found in collection")

// Config parameterizes a Session for one entity type.
type Config[T any] struct {
	// PageSize is the fixed page size for this screen. Zero means
	// DefaultPageSize.
	PageSize int

	// ID returns the entity's identifier.
	ID func(T) int64

	// SearchFields returns the string fields matched by free-text search.
	SearchFields func(T) []string

	// Update is the update collaborator. It receives the current entity
	// and the draft change set, and returns the server-authoritative
	// entity.
	Update func(ctx context.Context, item T, draft map[string]string) (T, error)

	// Delete is the delete collaborator.
	Delete func(ctx context.Context, id int64) error
}

// Session holds one screen's collection and its view state. It is not safe
// for concurrent use; like the screens it models, it is driven by a single
// event loop.
type Session[T any] struct {
	cfg      Config[T]
	items    []T
	filtered []T
	query    string
	page     int

	editID  int64
	editing bool
	saving  bool
	draft   map[string]string
}

// NewSession creates a session over an already-fetched collection.
func NewSession[T any](cfg Config[T], items []T) *Session[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	s := &Session[T]{cfg: cfg}
	s.SetCollection(items)
	return s
}

// SetCollection replaces the collection, as after a re-fetch with changed
// server-side filters. The search query is kept, the page resets to 1 and
// any open edit is discarded.
func (s *Session[T]) SetCollection(items []T) {
	s.items = items
	s.page = 1
	s.editing = false
	s.saving = false
	s.draft = nil
	s.refilter()
}

// Search sets the free-text query and resets to page 1. The match is a
// case-insensitive substring test across the configured fields, OR-ed.
func (s *Session[T]) Search(query string) {
	s.query = query
	s.page = 1
	s.refilter()
}

// Query returns the current search query.
func (s *Session[T]) Query() string {
	return s.query
}

// Filtered returns the filtered collection in source order.
func (s *Session[T]) Filtered() []T {
	return s.filtered
}

// Len returns the number of items matching the current query.
func (s *Session[T]) Len() int {
	return len(s.filtered)
}

// TotalPages returns ceil(len(filtered) / pageSize); 0 when the filtered
// collection is empty.
func (s *Session[T]) TotalPages() int {
	return (len(s.filtered) + s.cfg.PageSize - 1) / s.cfg.PageSize
}

// Page returns the current page number, or 0 when there are no pages.
func (s *Session[T]) Page() int {
	if s.TotalPages() == 0 {
		return 0
	}
	return s.page
}

// PageLabel renders the "page X of Y" indicator, tolerating an empty
// collection.
func (s *Session[T]) PageLabel() string {
	return fmt.Sprintf("page %d of %d", s.Page(), s.TotalPages())
}

// PageItems returns the current page's slice of the filtered collection.
func (s *Session[T]) PageItems() []T {
	total := s.TotalPages()
	if total == 0 {
		return nil
	}
	start := (s.page - 1) * s.cfg.PageSize
	if start >= len(s.filtered) {
		return nil
	}
	end := start + s.cfg.PageSize
	if end > len(s.filtered) {
		end = len(s.filtered)
	}
	return s.filtered[start:end]
}

// NextPage advances one page, clamped to the last page.
func (s *Session[T]) NextPage() {
	s.GoToPage(s.page + 1)
}

// PrevPage goes back one page, clamped to page 1.
func (s *Session[T]) PrevPage() {
	s.GoToPage(s.page - 1)
}

// GoToPage jumps to page n, clamped to [1, TotalPages]. An empty
// collection pins the page at 1 so a later refill starts from the top.
func (s *Session[T]) GoToPage(n int) {
	total := s.TotalPages()
	if total == 0 {
		s.page = 1
		return
	}
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	s.page = n
}

// StartEdit snapshots row id into a draft and enters edit mode. Only one
// row may be edited at a time.
func (s *Session[T]) StartEdit(id int64) error {
	if s.editing {
		return ErrEditInProgress
	}
	if _, ok := s.find(id); !ok {
		return ErrNotFound
	}
	s.editID = id
	s.editing = true
	s.draft = make(map[string]string)
	return nil
}

// Editing reports whether a row is in edit mode and, if so, which.
func (s *Session[T]) Editing() (int64, bool) {
	if !s.editing {
		return 0, false
	}
	return s.editID, true
}

// Saving reports whether a save is in flight.
func (s *Session[T]) Saving() bool {
	return s.saving
}

// SetField records a field change on the draft. The source collection is
// never touched by field edits.
func (s *Session[T]) SetField(name, value string) error {
	if !s.editing {
		return ErrNotEditing
	}
	s.draft[name] = value
	return nil
}

// Draft returns the draft change set of the open edit.
func (s *Session[T]) Draft() map[string]string {
	return s.draft
}

// CancelEdit discards the draft and returns the row to view mode.
func (s *Session[T]) CancelEdit() {
	s.editing = false
	s.saving = false
	s.draft = nil
}

// SaveEdit sends the draft to the update collaborator. On success the
// collection's entity is replaced by the returned server-authoritative
// entity and edit mode ends. On failure the row stays in edit mode with
// the draft intact and the collection is unchanged.
func (s *Session[T]) SaveEdit(ctx context.Context) error {
	if !s.editing {
		return ErrNotEditing
	}
	idx, ok := s.find(s.editID)
	if !ok {
		return ErrNotFound
	}

	s.saving = true
	updated, err := s.cfg.Update(ctx, s.items[idx], s.draft)
	s.saving = false
	if err != nil {
		return err
	}

	s.items[idx] = updated
	s.editing = false
	s.draft = nil
	s.refilter()
	return nil
}

// Delete calls the delete collaborator and, on success, removes exactly
// the matching entity from the collection. On failure the collection is
// unchanged. Deleting an id absent from the collection is still sent to
// the collaborator; the API owns existence.
func (s *Session[T]) Delete(ctx context.Context, id int64) error {
	if err := s.cfg.Delete(ctx, id); err != nil {
		return err
	}

	for i, item := range s.items {
		if s.cfg.ID(item) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.refilter()
	s.GoToPage(s.page) // reclamp after shrink
	return nil
}

// Item returns the collection's current copy of row id.
func (s *Session[T]) Item(id int64) (T, bool) {
	var zero T
	idx, ok := s.find(id)
	if !ok {
		return zero, false
	}
	return s.items[idx], true
}

func (s *Session[T]) find(id int64) (int, bool) {
	for i, item := range s.items {
		if s.cfg.ID(item) == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Session[T]) refilter() {
	q := strings.ToLower(strings.TrimSpace(s.query))
	if q == "" {
		s.filtered = s.items
		return
	}

	filtered := make([]T, 0, len(s.items))
	for _, item := range s.items {
		for _, field := range s.cfg.SearchFields(item) {
			if strings.Contains(strings.ToLower(field), q) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	s.filtered = filtered
}
