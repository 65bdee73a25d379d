package main

import (
	"errors"
	"flag"
	"io"

	"github.com/osse101/inventory-migrator/internal/domain"
)

type RunCommand struct {
	app *app
}

func (c *RunCommand) Name() string {
	return "run"
}

func (c *RunCommand) Description() string {
	return "Send the local data to the inventory API once"
}

func (c *RunCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	baseURL := fs.String("api-base-url", c.app.cfg.APIBaseURL, "inventory API base URL (default $API_BASE_URL)")
	token := fs.String("access-token", c.app.cfg.APIAccessToken, "bearer token (default $API_ACCESS_TOKEN)")
	asJSON := fs.Bool("json", false, "print the raw result object")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result := c.app.services.Migration.Run(c.app.ctx, domain.RunRequest{
		APIBaseURL:  *baseURL,
		AccessToken: *token,
	})
	if *asJSON {
		if err := c.app.out.JSON(result); err != nil {
			return err
		}
	}
	if !result.Success {
		return errors.New(result.Error)
	}
	if *asJSON {
		return nil
	}

	out := c.app.out
	if result.Imported == nil {
		out.Info("%s", result.Message)
		return nil
	}
	out.Success("Imported %d requests, %d employee exits, %d templates (%d files), %d instructions (%d attachments)",
		result.Imported.Requests, result.Imported.EmployeeExits,
		result.Imported.Templates, result.Imported.TemplateFiles,
		result.Imported.Instructions, result.Imported.InstructionAttachments)
	if result.Message != "" {
		out.Warning("%s", result.Message)
	}
	return nil
}
