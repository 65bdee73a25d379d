package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aarondl/null/v8"

	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/legacy"
)

type SeedCommand struct {
	app *app
}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Create a sample local database for manual testing"
}

func (c *SeedCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	reset := fs.Bool("reset", false, "delete existing rows first (children cascade)")
	withFiles := fs.Bool("files", true, "write attachment files next to the database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := c.app.cfg
	ctx := c.app.ctx
	out := c.app.out

	store, err := legacy.OpenWritable(ctx, cfg.LegacyDBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if *reset {
		if err := store.DeleteAll(ctx); err != nil {
			return err
		}
		out.Info("Cleared existing rows")
	}

	if *withFiles {
		if err := writeSampleFiles(cfg.TemplateFilesDir, cfg.InstructionFilesDir); err != nil {
			return err
		}
	}

	today := time.Now()
	day := func(offset int) string { return today.AddDate(0, 0, offset).Format(domain.LegacyDateLayout) }

	requests := []domain.Request{
		{
			EmployeeName: "Anna Smirnova", Login: "asmirnova", SDNumber: null.StringFrom("SD-1041"),
			IsIssued: true, IssuedAt: null.StringFrom(day(-20)),
			ReturnRequired: true, ReturnDueDate: null.StringFrom(day(-1)), ReturnEquipment: null.StringFrom("Laptop, charger"),
			EquipmentItems: []domain.EquipmentItem{
				{EquipmentName: "Laptop", SerialNumber: null.StringFrom("LT-55821"), Quantity: 1, Status: null.StringFrom("issued")},
				{EquipmentName: "Charger", Quantity: 1},
			},
		},
		{
			EmployeeName: "Boris Orlov", Login: "borlov", Notes: null.StringFrom("temporary contract"),
			ReturnRequired: true, ReturnDueDate: null.StringFrom(day(1)),
			EquipmentItems: []domain.EquipmentItem{{EquipmentName: "Headset", Quantity: 2}},
		},
		{EmployeeName: "Vera Lis", Login: "vlis"},
	}
	for _, r := range requests {
		if _, err := store.InsertRequest(ctx, r); err != nil {
			return err
		}
	}

	exits := []domain.EmployeeExit{
		{EmployeeName: "Gleb Noskov", Login: "gnoskov", ExitDate: day(0), EquipmentList: null.StringFrom("Laptop\nBadge")},
		{EmployeeName: "Daria Kim", Login: "dkim", ExitDate: day(-30), IsCompleted: true},
	}
	for _, e := range exits {
		if _, err := store.InsertEmployeeExit(ctx, e); err != nil {
			return err
		}
	}

	_, err = store.InsertTemplate(ctx, domain.Template{Title: "New hire checklist", Content: "Account, laptop, badge.", SortOrder: 1},
		[]legacy.StoredFile{
			{OriginalName: "checklist.txt", MimeType: null.StringFrom("text/plain"), StoredName: sampleTemplateFile},
			{OriginalName: "missing.pdf", MimeType: null.StringFrom("application/pdf"), StoredName: "does-not-exist.pdf"},
		})
	if err != nil {
		return err
	}

	folderID, err := store.InsertInstruction(ctx, domain.Instruction{Title: "Network", IsFolder: true}, null.String{}, nil)
	if err != nil {
		return err
	}
	_, err = store.InsertInstruction(ctx,
		domain.Instruction{ParentID: null.Int64From(folderID), Title: "VPN setup", Content: null.StringFrom("Install the client."), IsFavorite: true},
		null.StringFrom(`["vpn","remote"]`),
		[]legacy.StoredFile{{OriginalName: "vpn.conf", StoredName: sampleInstructionFile}})
	if err != nil {
		return err
	}
	// tags written by an older build as plain text; read back as no tags
	_, err = store.InsertInstruction(ctx,
		domain.Instruction{ParentID: null.Int64From(folderID), Title: "Wi-Fi", Content: null.StringFrom("SSID: office")},
		null.StringFrom("wifi, office"), nil)
	if err != nil {
		return err
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		return err
	}
	out.Success("Seeded %s: %d requests, %d employee exits, %d templates, %d instructions",
		cfg.LegacyDBPath(), counts.Requests, counts.EmployeeExits, counts.Templates, counts.Instructions)
	return nil
}

const (
	sampleTemplateFile    = "seed-checklist.txt"
	sampleInstructionFile = "seed-vpn.conf"
)

func writeSampleFiles(templateDir, instructionDir string) error {
	files := map[string]string{
		filepath.Join(templateDir, sampleTemplateFile):       "1. Account\n2. Laptop\n3. Badge\n",
		filepath.Join(instructionDir, sampleInstructionFile): "remote vpn.example.com 1194\n",
	}
	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
