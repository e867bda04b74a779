package cli

import (
	"context"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgrid"
	"github.com/goliatone/go-formgrid/internal/logging"
	"github.com/goliatone/go-formgrid/pkg/orchestrator"
	"github.com/goliatone/go-formgrid/pkg/render"
	"github.com/goliatone/go-formgrid/pkg/renderers/tui"
	"github.com/goliatone/go-formgrid/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgrid/pkg/schema"
)

var (
	errSchemaRequired = goerr.New("schema file argument is required")
	errLintIssues     = goerr.New("schema has lint issues")
)

func schemaFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "component",
			Usage: "Treat the file as an OpenAPI document and render this component schema",
		},
		&cli.StringFlag{
			Name:  "preset",
			Usage: "YAML or JSON file with label, hint and title overrides",
		},
	}
}

func cmdRender() *cli.Command {
	flags := append(schemaFlags(),
		&cli.StringFlag{
			Name:  "renderer",
			Usage: "Renderer name",
			Value: "vanilla",
		},
		&cli.StringFlag{
			Name:  "layout",
			Usage: "Field layout (grid, stack)",
			Value: string(render.LayoutGrid),
		},
		&cli.StringFlag{
			Name:  "errors",
			Usage: "YAML or JSON file mapping field names or paths to error messages",
		},
		&cli.StringFlag{
			Name:  "templates",
			Usage: "Directory overriding the embedded form templates",
		},
		&cli.StringFlag{
			Name:  "submit-label",
			Usage: "Submit button label",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to a file instead of stdout",
		},
	)

	return &cli.Command{
		Name:      "render",
		Usage:     "Render a form schema file to HTML",
		ArgsUsage: "<schema-file>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			registry, err := newRegistry(c.String("templates"))
			if err != nil {
				return err
			}
			errs, err := loadErrors(c.String("errors"))
			if err != nil {
				return err
			}
			result, err := runSchema(ctx, c, registry, orchestrator.Request{
				Renderer: c.String("renderer"),
				Errors:   errs,
				RenderOptions: render.RenderOptions{
					Layout:      render.ParseLayout(c.String("layout")),
					SubmitLabel: c.String("submit-label"),
				},
			})
			if err != nil {
				return err
			}

			if path := c.String("output"); path != "" {
				if err := os.WriteFile(path, result.Output, 0o644); err != nil {
					return goerr.Wrap(err, "failed to write output", goerr.V("path", path))
				}
				logging.Default().Info("Form written", "path", path, "content_type", result.ContentType)
				return nil
			}
			_, err = output(c).Write(result.Output)
			return err
		},
	}
}

func cmdFill() *cli.Command {
	flags := append(schemaFlags(),
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format (json, form, pretty)",
			Value: string(tui.OutputFormatJSON),
		},
	)

	return &cli.Command{
		Name:      "fill",
		Usage:     "Fill a form schema interactively in the terminal",
		ArgsUsage: "<schema-file>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			renderer, err := tui.NewWithOutput(os.Stderr, tui.WithOutputFormat(tui.ParseOutputFormat(c.String("format"))))
			if err != nil {
				return goerr.Wrap(err, "failed to build terminal renderer")
			}
			registry := render.NewRegistry()
			if err := registry.Register(renderer); err != nil {
				return goerr.Wrap(err, "failed to register terminal renderer")
			}

			result, err := runSchema(ctx, c, registry, orchestrator.Request{Renderer: renderer.Name()})
			if err != nil {
				return err
			}
			_, err = output(c).Write(append(result.Output, '\n'))
			return err
		},
	}
}

func newRegistry(templatesDir string) (*render.Registry, error) {
	registry := render.NewRegistry()
	html, err := vanilla.New(vanilla.WithTemplatesDir(templatesDir))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build html renderer")
	}
	registry.MustRegister(html)

	terminal, err := tui.NewWithOutput(os.Stderr)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build terminal renderer")
	}
	registry.MustRegister(terminal)
	return registry, nil
}

// runSchema fills the source and component of req from the command line and
// runs it.
func runSchema(ctx context.Context, c *cli.Command, registry *render.Registry, req orchestrator.Request) (orchestrator.Result, error) {
	path := strings.TrimSpace(c.Args().First())
	if path == "" {
		return orchestrator.Result{}, errSchemaRequired
	}

	gen, err := newOrchestrator(c, registry)
	if err != nil {
		return orchestrator.Result{}, err
	}

	req.Source = schema.SourceFromFile(path)
	req.Component = c.String("component")
	result, err := gen.Run(ctx, req)
	if err != nil {
		return orchestrator.Result{}, goerr.Wrap(err, "failed to render schema", goerr.V("path", path))
	}
	if issues := len(lintForm(result.Form)); issues > 0 {
		logging.Default().Warn("Schema has lint issues", "path", path, "count", issues)
	}
	return result, nil
}

// newOrchestrator applies the --preset flag. A nil registry falls back to the
// orchestrator default.
func newOrchestrator(c *cli.Command, registry *render.Registry) (*orchestrator.Orchestrator, error) {
	var options []orchestrator.Option
	if registry != nil {
		options = append(options, orchestrator.WithRegistry(registry))
	}
	if preset := c.String("preset"); preset != "" {
		transformer, err := orchestrator.NewPresetTransformerFromFile(preset)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load preset", goerr.V("path", preset))
		}
		options = append(options, orchestrator.WithSchemaTransformer(transformer))
	}
	return formgrid.NewOrchestrator(options...), nil
}

func loadErrors(path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read errors file", goerr.V("path", path))
	}
	var errs map[string][]string
	if err := yaml.Unmarshal(data, &errs); err != nil {
		return nil, goerr.Wrap(err, "failed to decode errors file", goerr.V("path", path))
	}
	return errs, nil
}
