package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formgrid/pkg/model"
	"github.com/goliatone/go-formgrid/pkg/orchestrator"
	"github.com/goliatone/go-formgrid/pkg/schema"
)

func cmdLint() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Check a form schema file for malformed fields",
		ArgsUsage: "<schema-file>",
		Flags:     schemaFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			path := strings.TrimSpace(c.Args().First())
			if path == "" {
				return errSchemaRequired
			}

			gen, err := newOrchestrator(c, nil)
			if err != nil {
				return err
			}
			form, err := gen.Form(ctx, orchestrator.Request{
				Source:    schema.SourceFromFile(path),
				Component: c.String("component"),
			})
			if err != nil {
				return goerr.Wrap(err, "failed to load schema", goerr.V("path", path))
			}

			issues := lintForm(form)
			w := output(c)
			for _, issue := range issues {
				if _, err := fmt.Fprintf(w, "%s: %s\n", path, issue); err != nil {
					return err
				}
			}
			if len(issues) > 0 {
				return goerr.Wrap(errLintIssues, "lint failed", goerr.V("path", path), goerr.V("count", len(issues)))
			}
			_, err = fmt.Fprintf(w, "%s: ok (%d fields)\n", path, len(form.Fields))
			return err
		},
	}
}

func lintForm(form model.FormModel) []model.Issue {
	return model.Lint(form.Fields)
}
