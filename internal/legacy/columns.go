package legacy

import (
	"context"
	"fmt"

	"github.com/osse101/inventory-migrator/internal/domain"
)

// tableColumns returns the set of columns table has in this file
func (s *Store) tableColumns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToInspect, table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToInspect, table, err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToInspect, table, err)
	}
	return columns, nil
}

// requestLayout inspects the requests table once per store. Missing return
// columns are selected as NULL so older files scan into the same row shape.
func (s *Store) requestLayout(ctx context.Context) (selects []string, present map[string]bool, err error) {
	if s.requestPresent == nil {
		cols, err := s.tableColumns(ctx, domain.TableRequests)
		if err != nil {
			return nil, nil, err
		}
		s.requestPresent = cols
	}

	selects = make([]string, 0, len(requestColumns))
	for _, col := range requestColumns {
		if returnColumns[col] && !s.requestPresent[col] {
			selects = append(selects, "NULL AS "+col)
			continue
		}
		selects = append(selects, col)
	}
	return selects, s.requestPresent, nil
}
