package main

import (
	"flag"
	"io"
)

type RemindCommand struct {
	app *app
}

func (c *RemindCommand) Name() string {
	return "remind"
}

func (c *RemindCommand) Description() string {
	return "Run one reminder check for due returns and pending exits"
}

func (c *RemindCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	asJSON := fs.Bool("json", false, "print the raw check result")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := c.app.services.Reminders.Trigger(c.app.ctx)
	if err != nil {
		return err
	}
	if *asJSON {
		return c.app.out.JSON(result)
	}

	out := c.app.out
	if result.Idle {
		out.Info("Nothing to check, the local database is gone or already migrated")
		return nil
	}
	for _, r := range result.Sent {
		if r.Overdue {
			out.Warning("%s #%d %s (%s) overdue since %s", r.Kind, r.RecordID, r.EmployeeName, r.Login, r.DueDate)
			continue
		}
		out.Info("%s #%d %s (%s) due %s", r.Kind, r.RecordID, r.EmployeeName, r.Login, r.DueDate)
	}
	out.Success("%d reminders sent, %d already sent today", len(result.Sent), result.Suppressed)
	return nil
}
