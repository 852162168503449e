package source

import (
	"context"
	"strings"

	"github.com/beltran/gohive"
)

// hiveRows adapts a gohive cursor. Hive reports columns as
// "table.column" pairs with "_TYPE"-suffixed type names; only the bare
// column name matters for the CSV header.
type hiveRows struct {
	cursor  *gohive.Cursor
	ctx     context.Context
	names   []string
	current []any
	ptrs    []any
}

// FromHiveCursor creates a Rows over a Hive query cursor. The context
// bounds every fetch issued against the cursor.
func FromHiveCursor(ctx context.Context, cursor *gohive.Cursor) Rows {
	return &hiveRows{cursor: cursor, ctx: ctx}
}

func (h *hiveRows) Next() bool {
	return h.cursor.HasMore(h.ctx)
}

func (h *hiveRows) ScanRow() ([]any, error) {
	if h.names == nil {
		if _, err := h.Columns(); err != nil {
			return nil, err
		}
	}
	if h.current == nil {
		h.current = make([]any, len(h.names))
		h.ptrs = make([]any, len(h.names))
	}
	for i := range h.current {
		h.ptrs[i] = &h.current[i]
	}
	h.cursor.FetchOne(h.ctx, h.ptrs...)
	if h.cursor.Err != nil {
		return nil, h.cursor.Err
	}
	return h.current, nil
}

func (h *hiveRows) Columns() ([]string, error) {
	if h.names != nil {
		return h.names, nil
	}
	for _, desc := range h.cursor.Description() {
		if len(desc) == 0 {
			continue
		}
		name := desc[0]
		if _, bare, ok := strings.Cut(name, "."); ok {
			name = bare
		}
		h.names = append(h.names, name)
	}
	return h.names, nil
}

func (h *hiveRows) Err() error {
	return h.cursor.Error()
}
