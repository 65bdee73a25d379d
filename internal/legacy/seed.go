package legacy

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"

	"github.com/osse101/inventory-migrator/internal/domain"
)

// StoredFile describes an attachment row as the desktop application wrote it:
// the file itself lives in the legacy attachment directory under StoredName.
type StoredFile struct {
	OriginalName string
	MimeType     null.String
	StoredName   string
}

// InsertRequest writes a request and its equipment items in one transaction.
// IDs on the input are ignored; the new request id is returned.
func (s *Store) InsertRequest(ctx context.Context, r domain.Request) (int64, error) {
	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		columns := []string{"employee_name", "login", "sd_number", "is_issued", "issued_at", "notes",
			"return_required", "return_due_date", "return_equipment", "return_completed",
			"return_completed_at", "return_scheduled_at"}
		values := []interface{}{r.EmployeeName, r.Login, r.SDNumber, boolToInt(r.IsIssued), r.IssuedAt, r.Notes,
			boolToInt(r.ReturnRequired), r.ReturnDueDate, r.ReturnEquipment, boolToInt(r.ReturnCompleted),
			r.ReturnCompletedAt, r.ReturnScheduledAt}
		if r.CreatedAt != "" {
			columns = append(columns, "created_at")
			values = append(values, r.CreatedAt)
		}
		insert := s.psql.Insert(domain.TableRequests).Columns(columns...).Values(values...)

		var err error
		id, err = execInsert(ctx, tx, insert)
		if err != nil {
			return err
		}

		for _, item := range r.EquipmentItems {
			_, err := execInsert(ctx, tx, s.psql.Insert(domain.TableEquipmentItems).
				Columns("request_id", "equipment_name", "serial_number", "quantity", "status").
				Values(id, item.EquipmentName, item.SerialNumber, item.Quantity, item.Status))
			if err != nil {
				return err
			}
		}
		return nil
	})
	return id, err
}

// InsertEmployeeExit writes one employee exit row
func (s *Store) InsertEmployeeExit(ctx context.Context, e domain.EmployeeExit) (int64, error) {
	insert := s.psql.Insert(domain.TableEmployeeExits).
		Columns("employee_name", "login", "sd_number", "exit_date", "equipment_list", "is_completed").
		Values(e.EmployeeName, e.Login, e.SDNumber, e.ExitDate, e.EquipmentList, boolToInt(e.IsCompleted))
	return execInsert(ctx, s.db, insert)
}

// InsertTemplate writes a template and its file rows
func (s *Store) InsertTemplate(ctx context.Context, t domain.Template, files []StoredFile) (int64, error) {
	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = execInsert(ctx, tx, s.psql.Insert(domain.TableTemplates).
			Columns("title", "content", "sort_order").
			Values(t.Title, t.Content, t.SortOrder))
		if err != nil {
			return err
		}
		return s.insertFiles(ctx, tx, domain.TableTemplateFiles, "template_id", id, files)
	})
	return id, err
}

// InsertInstruction writes an instruction with its raw tags column and attachments
func (s *Store) InsertInstruction(ctx context.Context, i domain.Instruction, rawTags null.String, files []StoredFile) (int64, error) {
	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = execInsert(ctx, tx, s.psql.Insert(domain.TableInstructions).
			Columns("parent_id", "title", "content", "is_folder", "is_favorite", "tags", "sort_order").
			Values(i.ParentID, i.Title, i.Content, boolToInt(i.IsFolder), boolToInt(i.IsFavorite), rawTags, i.SortOrder))
		if err != nil {
			return err
		}
		return s.insertFiles(ctx, tx, domain.TableInstructionAttachments, "instruction_id", id, files)
	})
	return id, err
}

// DeleteAll removes every parent row in one transaction. Child rows go with
// them through ON DELETE CASCADE, which requires a writable store.
func (s *Store) DeleteAll(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{domain.TableRequests, domain.TableEmployeeExits, domain.TableTemplates, domain.TableInstructions} {
			query, args, err := s.psql.Delete(table).ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func (s *Store) insertFiles(ctx context.Context, tx *sql.Tx, table, ownerColumn string, ownerID int64, files []StoredFile) error {
	for _, f := range files {
		_, err := execInsert(ctx, tx, s.psql.Insert(table).
			Columns(ownerColumn, "original_name", "mime_type", "stored_name").
			Values(ownerID, f.OriginalName, f.MimeType, f.StoredName))
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func execInsert(ctx context.Context, db execer, insert sq.InsertBuilder) (int64, error) {
	query, args, err := insert.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert failed: %w", err)
	}
	return res.LastInsertId()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
