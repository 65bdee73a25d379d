package main

import (
	"flag"
	"io"
)

type StatusCommand struct {
	app *app
}

func (c *StatusCommand) Name() string {
	return "status"
}

func (c *StatusCommand) Description() string {
	return "Report whether local data still needs migrating"
}

func (c *StatusCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	asJSON := fs.Bool("json", false, "print the raw status object")
	if err := fs.Parse(args); err != nil {
		return err
	}

	status := c.app.services.Migration.Status(c.app.ctx)
	if *asJSON {
		return c.app.out.JSON(status)
	}

	out := c.app.out
	switch {
	case status.Done:
		out.Success("Migration already completed (marker %s)", c.app.cfg.MarkerPath())
	case !status.DBExists:
		out.Info("No local database at %s, nothing to migrate", c.app.cfg.LegacyDBPath())
	case !status.Needed:
		out.Warning("Local database could not be read, see the log for details")
	default:
		out.Info("Migration needed: %d requests, %d employee exits, %d templates, %d instructions",
			status.Counts.Requests, status.Counts.EmployeeExits, status.Counts.Templates, status.Counts.Instructions)
	}
	return nil
}
