package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/pistlar/internal"
	"github.com/starford/pistlar/internal/fetch"
	pkgconfig "github.com/starford/pistlar/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.RunMCP(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("mcp run error: %w", err)
	}

	return nil
}

func runFetch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client := fetch.New(cmd.String("token"), slog.Default())
	n, err := client.Sync(ctx, cmd.String("repo"), cmd.String("dir"), cmd.String("ref"), cfg.Content.PostsDir)
	if err != nil {
		return fmt.Errorf("fetch error: %w", err)
	}

	slog.Info("fetch complete", slog.Int("files", n), slog.String("dest", cfg.Content.PostsDir))
	return nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "pistlar",
		Usage:  "File-backed blog engine serving Markdown posts with an admin API and MCP tools",
		Action: run,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve the post tools over MCP stdio transport",
				Action: runMCP,
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:   "fetch",
				Usage:  "Download Markdown posts from a GitHub repository into the posts directory",
				Action: runFetch,
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:     "repo",
						Usage:    "GitHub repository (owner/name)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Directory inside the repository to fetch",
						Value: "_posts",
					},
					&cli.StringFlag{
						Name:  "ref",
						Usage: "Branch or tag to fetch from (falls back from master to main)",
						Value: "master",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "GitHub token for private repositories",
						Sources: cli.EnvVars("GITHUB_TOKEN"),
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
