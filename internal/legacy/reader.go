package legacy

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/logger"
)

// FileEncoder loads an attachment from disk and returns its base64 form.
// ok is false when the file cannot be read; such attachments are dropped.
type FileEncoder interface {
	Encode(kind, storedName string) (data string, ok bool)
}

// ReadSnapshot assembles the full nested content of the legacy store in a
// single pass. It either returns a complete snapshot or an error.
func (s *Store) ReadSnapshot(ctx context.Context, encoder FileEncoder) (*domain.Snapshot, error) {
	snapshot := domain.NewSnapshot()

	requests, err := s.readRequests(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.Requests = requests

	exits, err := s.readEmployeeExits(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.EmployeeExits = exits

	templates, err := s.readTemplates(ctx, encoder)
	if err != nil {
		return nil, err
	}
	snapshot.Templates = templates

	instructions, err := s.readInstructions(ctx, encoder)
	if err != nil {
		return nil, err
	}
	snapshot.Instructions = instructions

	logger.FromContext(ctx).Info(LogMsgSnapshotRead,
		"requests", len(snapshot.Requests),
		"employee_exits", len(snapshot.EmployeeExits),
		"templates", len(snapshot.Templates),
		"template_files", snapshot.TemplateFileCount(),
		"instructions", len(snapshot.Instructions),
		"instruction_attachments", snapshot.InstructionAttachmentCount())

	return snapshot, nil
}

func (s *Store) readRequests(ctx context.Context) ([]domain.Request, error) {
	columns, _, err := s.requestLayout(ctx)
	if err != nil {
		return nil, err
	}
	builder := s.psql.Select(columns...).From(domain.TableRequests).OrderBy("id")

	requests := []domain.Request{}
	index := make(map[int64]int)
	err = s.scanAll(ctx, builder, domain.TableRequests, func(rows *sql.Rows) error {
		var row requestRow
		if err := rows.Scan(row.dest()...); err != nil {
			return err
		}
		req, err := row.toDomain()
		if err != nil {
			return err
		}
		index[req.ID] = len(requests)
		requests = append(requests, req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	items := s.psql.Select(equipmentItemColumns...).From(domain.TableEquipmentItems).OrderBy("request_id", "id")
	err = s.scanAll(ctx, items, domain.TableEquipmentItems, func(rows *sql.Rows) error {
		var row equipmentItemRow
		if err := rows.Scan(row.dest()...); err != nil {
			return err
		}
		item, err := row.toDomain()
		if err != nil {
			return err
		}
		pos, ok := index[item.RequestID]
		if !ok {
			logger.FromContext(ctx).Warn(LogMsgOrphanRowSkipped,
				"table", domain.TableEquipmentItems, "id", item.ID, "request_id", item.RequestID)
			return nil
		}
		requests[pos].EquipmentItems = append(requests[pos].EquipmentItems, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (s *Store) readEmployeeExits(ctx context.Context) ([]domain.EmployeeExit, error) {
	builder := s.psql.Select(employeeExitColumns...).From(domain.TableEmployeeExits).OrderBy("id")

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

func (s *Store) readTemplates(ctx context.Context, encoder FileEncoder) ([]domain.Template, error) {
	builder := s.psql.Select(templateColumns...).From(domain.TableTemplates).OrderBy("sort_order", "id")

	templates := []domain.Template{}
	index := make(map[int64]int)
	err := s.scanAll(ctx, builder, domain.TableTemplates, func(rows *sql.Rows) error {
		var row templateRow
		if err := rows.Scan(row.dest()...); err != nil {
			return err
		}
		tmpl, err := row.toDomain()
		if err != nil {
			return err
		}
		index[tmpl.ID] = len(templates)
		templates = append(templates, tmpl)
		return nil
	})
	if err != nil {
		return nil, err
	}

	files := s.attachmentQuery(domain.TableTemplateFiles, "template_id", domain.TableTemplates)
	err = s.scanAll(ctx, files, domain.TableTemplateFiles, func(rows *sql.Rows) error {
		var row attachmentRow
		if err := rows.Scan(row.dest()...); err != nil {
			return err
		}
		pos, ok := index[row.OwnerID]
		if !ok {
			return nil
		}
		data, ok := s.encode(ctx, encoder, domain.AttachmentKindTemplate, domain.TableTemplateFiles, row)
		if !ok {
			return nil
		}
		templates[pos].Files = append(templates[pos].Files, domain.TemplateFile{
			ID:           row.ID,
			TemplateID:   row.OwnerID,
			OriginalName: row.name(),
			MimeType:     optional(row.MimeType),
			Base64Data:   data,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return templates, nil
}

func (s *Store) readInstructions(ctx context.Context, encoder FileEncoder) ([]domain.Instruction, error) {
	// Flat read: parent linkage stays a foreign key value.
	builder := s.psql.Select(instructionColumns...).From(domain.TableInstructions).OrderBy("sort_order", "id")

	instructions := []domain.Instruction{}
	index := make(map[int64]int)
	err := s.scanAll(ctx, builder, domain.TableInstructions, func(rows *sql.Rows) error {
		var row instructionRow
		if err := rows.Scan(row.dest()...); err != nil {
			return err
		}
		inst, err := row.toDomain()
		if err != nil {
			return err
		}
		index[inst.ID] = len(instructions)
		instructions = append(instructions, inst)
		return nil
	})
	if err != nil {
		return nil, err
	}

	attachments := s.attachmentQuery(domain.TableInstructionAttachments, "instruction_id", domain.TableInstructions)
	err = s.scanAll(ctx, attachments, domain.TableInstructionAttachments, func(rows *sql.Rows) error {
		var row attachmentRow
		if err := rows.Scan(row.dest()...); err != nil {
			return err
		}
		pos, ok := index[row.OwnerID]
		if !ok {
			return nil
		}
		data, ok := s.encode(ctx, encoder, domain.AttachmentKindInstruction, domain.TableInstructionAttachments, row)
		if !ok {
			return nil
		}
		instructions[pos].Files = append(instructions[pos].Files, domain.InstructionAttachment{
			ID:            row.ID,
			InstructionID: row.OwnerID,
			OriginalName:  row.name(),
			MimeType:      optional(row.MimeType),
			Base64Data:    data,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return instructions, nil
}

// attachmentQuery selects attachment rows ordered by their owner's sort order
func (s *Store) attachmentQuery(table, ownerColumn, ownerTable string) sq.SelectBuilder {
	return s.psql.Select(attachmentColumns(ownerColumn)...).
		From(table + " AS f").
		Join(fmt.Sprintf("%s AS o ON o.id = f.%s", ownerTable, ownerColumn)).
		OrderBy("o.sort_order", "o.id", "f.id")
}

func (s *Store) encode(ctx context.Context, encoder FileEncoder, kind, table string, row attachmentRow) (string, bool) {
	if encoder == nil || !row.StoredName.Valid {
		return "", false
	}
	data, ok := encoder.Encode(kind, row.StoredName.String)
	if !ok || data == "" {
		logger.FromContext(ctx).Debug(LogMsgAttachmentExcluded,
			"table", table, "id", row.ID, "stored_name", row.StoredName.String)
		return "", false
	}
	return data, true
}

// scanAll runs the query and hands each row to fn
func (s *Store) scanAll(ctx context.Context, builder sq.SelectBuilder, table string, fn func(*sql.Rows) error) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToQuery, table, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToQuery, table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return fmt.Errorf("%s %s: %w", ErrMsgFailedToScan, table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToQuery, table, err)
	}
	return nil
}
