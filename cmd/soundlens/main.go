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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/soundlens"
	"github.com/poiesic/soundlens/ai"
	"github.com/poiesic/soundlens/core"
	"github.com/poiesic/soundlens/discovery"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "soundlens",
		Usage: "Multi-source music discovery over a local catalog",
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
				Name:      "research",
				Usage:     "Run a discovery query against the catalog",
				ArgsUsage: "<query>",
				Action:    researchCommand,
				Flags:     append(engineFlags(), contextFlags()...),
			},
			{
				Name:      "clarify",
				Usage:     "Answer a clarification round and run the refined query",
				ArgsUsage: "<original query> -- <clarification>",
				Action:    clarifyCommand,
				Flags: append(append(engineFlags(), contextFlags()...),
					&cli.StringFlag{
						Name:     "answer",
						Aliases:  []string{"a"},
						Usage:    "Answer to the clarifying questions",
						Required: true,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the catalog database directory",
			Value:   "./catalog_db",
		},
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "AI service host URL for embeddings and planning",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
		&cli.StringFlag{
			Name:  "planner-model",
			Usage: "Planning model name",
		},
		&cli.BoolFlag{
			Name:  "no-planner",
			Usage: "Skip the LLM planner and use heuristic capability selection",
		},
	}
}

func contextFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "identity",
			Usage: "Listener identity for personalised results",
		},
		&cli.StringFlag{
			Name:  "mood",
			Usage: "Declared listening mood",
		},
		&cli.StringSliceFlag{
			Name:  "genre",
			Usage: "Preferred genre (repeatable)",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Per-capability result cap",
		},
	}
}

func openEngine(c *cli.Context) (*soundlens.Engine, error) {
	var configOpts []ai.ConfigOption
	if host := c.String("ai-host"); host != "" {
		configOpts = append(configOpts, ai.WithHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		configOpts = append(configOpts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("planner-model"); model != "" {
		configOpts = append(configOpts, ai.WithPlannerModel(model))
	}

	opts := []soundlens.EngineOption{
		soundlens.WithAIConfig(ai.NewConfig(configOpts...)),
	}
	if c.Bool("no-planner") {
		opts = append(opts, soundlens.WithHeuristicPlanner())
	}

	return soundlens.NewEngine(c.String("db"), opts...)
}

func searchContext(c *cli.Context) *core.SearchContext {
	sc := &core.SearchContext{
		Identity:         c.String("identity"),
		Mood:             c.String("mood"),
		GenrePreferences: c.StringSlice("genre"),
		Limit:            c.Int("limit"),
	}
	if sc.Identity == "" && sc.Mood == "" && len(sc.GenrePreferences) == 0 && sc.Limit == 0 {
		return nil
	}
	return sc
}

func researchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	resp, err := engine.Research(context.Background(), query, searchContext(c))
	if err != nil {
		return err
	}

	printResponse(resp)
	return nil
}

func clarifyCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("original query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	resp, err := engine.Clarify(context.Background(), query, c.String("answer"), searchContext(c))
	if err != nil {
		return err
	}

	printResponse(resp)
	return nil
}

func printResponse(resp *discovery.Response) {
	if resp.NeedsClarification {
		fmt.Println("Need a little more to go on:")
		for _, q := range resp.ClarifyingQuestions {
			fmt.Printf("  - %s\n", q)
		}
		return
	}

	fmt.Printf("Found %d results (confidence %.2f, %s)\n", len(resp.Items), resp.Confidence, resp.Elapsed.Round(time.Millisecond))
	for i, item := range resp.Items {
		kind := "track"
		if item.Track.Kind == core.KindStation {
			kind = "station"
		}
		sources := make([]string, len(item.Sources))
		for j, s := range item.Sources {
			sources[j] = string(s)
		}
		fmt.Printf("%2d. [%s] %s - %s (%.3f via %s)\n",
			i+1, kind, item.Track.Title, item.Track.Artist, item.Score, strings.Join(sources, "+"))
	}

	fmt.Println()
	fmt.Println(resp.Reasoning)
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
