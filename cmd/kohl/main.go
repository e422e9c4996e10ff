package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/voss/kohl/internal"
	"github.com/voss/kohl/internal/mcpserver"
	"github.com/voss/kohl/internal/stats"
	"github.com/voss/kohl/internal/template"
	pkgconfig "github.com/voss/kohl/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *internal.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	n, err := internal.ImportOnce(ctx, cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	fmt.Printf("imported %d book(s)\n", n)
	return nil
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("template")
	if path == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path = cfg.Template.Path
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	result := template.Validate(string(src))
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	if !result.IsValid {
		return cli.Exit("template is invalid", 1)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	var statsProvider stats.Provider
	if cfg.Stats.Enabled() {
		db, err := stats.Open(cfg.Stats.Path)
		if err != nil {
			newLogger(cfg).Warn("statistics database unavailable",
				slog.String("error", err.Error()))
		} else {
			statsProvider = db
			defer db.Close()
		}
	}
	return mcpserver.New(statsProvider).ServeStdio()
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("KOHL_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:  "kohl",
		Usage: "Import reading highlights from a mounted e-reader into a Markdown vault",
		Flags: []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Run a single import of all exported highlights",
				Action: runImport,
			},
			{
				Name:   "serve",
				Usage:  "Watch the device for exports and serve the template preview API",
				Action: runServe,
			},
			{
				Name:  "validate",
				Usage: "Validate a highlight template and print the findings",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "template",
						Aliases: []string{"t"},
						Usage:   "Template file to validate (defaults to the configured one)",
					},
				},
				Action: runValidate,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the template tooling over MCP on stdin/stdout",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
