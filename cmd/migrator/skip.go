package main

import "errors"

type SkipCommand struct {
	app *app
}

func (c *SkipCommand) Name() string {
	return "skip"
}

func (c *SkipCommand) Description() string {
	return "Mark the migration as done without sending anything"
}

func (c *SkipCommand) Run(args []string) error {
	result := c.app.services.Migration.Skip(c.app.ctx)
	if !result.Success {
		return errors.New(result.Error)
	}
	c.app.out.Success("Migration skipped, marker written to %s", c.app.cfg.MarkerPath())
	return nil
}
