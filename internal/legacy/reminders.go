package legacy

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/osse101/inventory-migrator/internal/domain"
)

// DueReturns lists requests whose equipment must come back on or before
// cutoff (YYYY-MM-DD) and has not been returned yet. Files without return
// tracking have nothing due.
func (s *Store) DueReturns(ctx context.Context, cutoff string) ([]domain.Request, error) {
	columns, present, err := s.requestLayout(ctx)
	if err != nil {
		return nil, err
	}

	requests := []domain.Request{}
	if !present["return_required"] || !present["return_due_date"] {
		return requests, nil
	}

	builder := s.psql.Select(columns...).
		From(domain.TableRequests).
		Where(sq.Eq{"return_required": 1}).
		Where(sq.NotEq{"return_due_date": nil}).
		Where(sq.Expr("date(return_due_date) <= date(?)", cutoff)).
		OrderBy("return_due_date", "id")
	if present["return_completed"] {
		builder = builder.Where(sq.Eq{"return_completed": 0})
	}

	err = s.scanAll(ctx, builder, domain.TableRequests, func(rows *sql.Rows) error {
		var row requestRow
		if err := rows.Scan(row.dest()...); err != nil {
			return err
		}
		req, err := row.toDomain()
		if err != nil {
			return err
		}
		requests = append(requests, req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// PendingExits lists incomplete employee exits dated on or before cutoff.
func (s *Store) PendingExits(ctx context.Context, cutoff string) ([]domain.EmployeeExit, error) {
	builder := s.psql.Select(employeeExitColumns...).
		From(domain.TableEmployeeExits).
		Where(sq.Eq{"is_completed": 0}).
		Where(sq.Expr("date(exit_date) <= date(?)", cutoff)).
		OrderBy("exit_date", "id")

	exits := []domain.EmployeeExit{}
	err := s.scanAll(ctx, builder, domain.TableEmployeeExits, func(rows *sql.Rows) error {
		var row employeeExitRow
		if err := rows.Scan(row.dest()...); err != nil {
			return err
		}
		exit, err := row.toDomain()
		if err != nil {
			return err
		}
		exits = append(exits, exit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exits, nil
}
