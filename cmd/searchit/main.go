// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/searchit"
	"github.com/poiesic/searchit/ai"
	"github.com/poiesic/searchit/analyze"
	"github.com/poiesic/searchit/core"
	"github.com/poiesic/searchit/expand"
	"github.com/poiesic/searchit/expand/datamuse"
	"github.com/poiesic/searchit/indexer"
	"github.com/poiesic/searchit/search"
	"github.com/urfave/cli/v2"
)

func main() {
	// A missing .env file is fine; explicit flags and env vars still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "searchit",
		Usage: "Hybrid semantic and keyword search over JSONL datasets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Report line health and field coverage of a JSONL dataset",
				ArgsUsage: "<file>",
				Action:    analyzeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "content-field",
						Usage: "Record field holding document content",
						Value: "content",
					},
				},
			},
			{
				Name:      "index",
				Usage:     "Build a persisted index from a JSONL dataset",
				ArgsUsage: "<file>",
				Action:    indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "index-dir",
						Usage: "Directory holding the persisted index",
						Value: "./index",
					},
					&cli.StringFlag{
						Name:  "content-field",
						Usage: "Record field holding document content",
						Value: "content",
					},
					&cli.StringFlag{
						Name:  "title-field",
						Usage: "Record field holding document titles",
						Value: "title",
					},
					&cli.BoolFlag{
						Name:  "title-boost",
						Usage: "Embed titles and boost their keyword weight",
						Value: true,
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Logical embedding model name",
						Value: ai.DefaultModel,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "Embedding provider API key",
						EnvVars: []string{"SEARCHIT_API_KEY"},
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Query a persisted index",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "index-dir",
						Usage: "Directory holding the persisted index",
						Value: "./index",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Logical embedding model name",
						Value: ai.DefaultModel,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "Embedding provider API key",
						EnvVars: []string{"SEARCHIT_API_KEY"},
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum aggregate score for a result",
						Value: 0.0,
					},
					&cli.Float64Flag{
						Name:  "semantic-weight",
						Usage: "Semantic versus keyword weighting",
						Value: 0.7,
					},
					&cli.Float64Flag{
						Name:  "title-weight",
						Usage: "Additional weight for title relevance",
						Value: 0.3,
					},
					&cli.BoolFlag{
						Name:  "expand",
						Usage: "Expand the query with synonyms and related words",
						Value: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

func analyzeCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("analyze: a dataset file is required", 1)
	}

	file, err := os.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("analyze: cannot open %s: %v", path, err), 1)
	}
	defer file.Close()

	report, err := analyze.Analyze(file, c.String("content-field"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("analyze: %v", err), 1)
	}
	if err := report.Render(os.Stdout); err != nil {
		return err
	}
	return nil
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	path := c.Args().First()
	if path == "" {
		return cli.Exit("index: a dataset file is required", 1)
	}

	file, err := os.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("index: cannot open %s: %v", path, err), 1)
	}
	defer file.Close()

	engine, err := searchit.Open(c.String("index-dir"),
		searchit.WithAIConfig(ai.NewConfig(
			ai.WithHost(c.String("embedding-host")),
			ai.WithModel(c.String("model")),
			ai.WithAPIKey(c.String("api-key")),
		)))
	if err != nil {
		if errors.Is(err, core.ErrModelInit) {
			return cli.Exit(fmt.Sprintf("index: unknown embedding model %q", c.String("model")), 1)
		}
		return cli.Exit(fmt.Sprintf("index: %v", err), 1)
	}
	defer engine.Close()

	builder, err := engine.NewBuilder(
		indexer.WithContentField(c.String("content-field")),
		indexer.WithTitleField(c.String("title-field")),
		indexer.WithTitleBoost(c.Bool("title-boost")),
	)
	if err != nil {
		return cli.Exit(fmt.Sprintf("index: %v", err), 1)
	}

	stats, err := builder.Build(ctx, file, path, engine.Model())
	if err != nil {
		return cli.Exit(fmt.Sprintf("index: build failed: %v", err), 1)
	}

	fmt.Printf("indexed %d documents (%d malformed, %d without content skipped)\n",
		stats.Indexed, stats.SkippedMalformed, stats.SkippedMissingContent)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return cli.Exit("search: a query is required", 1)
	}

	engineOpts := []searchit.EngineOption{
		searchit.WithAIConfig(ai.NewConfig(
			ai.WithHost(c.String("embedding-host")),
			ai.WithModel(c.String("model")),
			ai.WithAPIKey(c.String("api-key")),
		)),
	}
	if c.Bool("expand") {
		client := datamuse.NewClient()
		expander, err := expand.NewExpander(client, client)
		if err != nil {
			return cli.Exit(fmt.Sprintf("search: %v", err), 1)
		}
		engineOpts = append(engineOpts, searchit.WithQueryExpander(expander))
	}

	engine, err := searchit.Open(c.String("index-dir"), engineOpts...)
	if err != nil {
		if errors.Is(err, core.ErrModelInit) {
			return cli.Exit(fmt.Sprintf("search: unknown embedding model %q", c.String("model")), 1)
		}
		return cli.Exit(fmt.Sprintf("search: %v", err), 1)
	}
	defer engine.Close()

	searcher, err := engine.NewSearcher(ctx)
	if err != nil {
		if errors.Is(err, core.ErrIndexNotFound) {
			return cli.Exit(fmt.Sprintf("search: no index found in %s, run `searchit index` first", c.String("index-dir")), 1)
		}
		return cli.Exit(fmt.Sprintf("search: %v", err), 1)
	}

	results, err := searcher.Search(ctx, query, search.Options{
		SemanticWeight: c.Float64("semantic-weight"),
		TitleWeight:    c.Float64("title-weight"),
		Threshold:      c.Float64("threshold"),
		Limit:          c.Int("limit"),
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("search: %v", err), 1)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		title := hit.Document.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%d: %s (%d)[%0.3f] semantic=%0.3f keyword=%0.3f title=%0.3f\n",
			i+1, title, hit.Document.ID, hit.Score, hit.Semantic, hit.Keyword, hit.Title)
	}
	return nil
}
