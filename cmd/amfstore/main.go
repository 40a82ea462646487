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
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/subratsf/amfstore"
	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "amfstore",
		Usage: "Query AMF API graphs registered in a local store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				EnvVars: []string{"AMFSTORE_DB"},
				Value:   "amfstore.db",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "load",
				Usage:     "Register graph files, or every *.json file in a directory",
				ArgsUsage: "<file|dir>...",
				Action:    loadCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of files decoded concurrently",
						Value: 4,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List registered stores",
				Action: listCommand,
			},
			{
				Name:      "read",
				Usage:     "Run a read command against a store and print the result as JSON",
				ArgsUsage: "<id> <command> [args...]",
				Description: "Arguments that parse as JSON objects or null are passed decoded, the search\n" +
					"limit as an integer, anything else as a string. Commands: " + commandNames(),
				Action: readCommand,
			},
			{
				Name:      "delete",
				Usage:     "Delete a store",
				ArgsUsage: "<id>",
				Action:    deleteCommand,
			},
			{
				Name:   "clear",
				Usage:  "Delete every store",
				Action: clearCommand,
			},
		},
	}
}

func commandNames() string {
	var names []string
	for _, c := range amfstore.Commands() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

func openRegistry(c *cli.Context) (*amfstore.Registry, error) {
	return amfstore.Open(c.String("db"), amfstore.WithLogger(slog.Default()))
}

func loadCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("at least one file or directory is required")
	}

	registry, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer registry.Close()

	pipeline, err := ingestion.NewPipeline(registry,
		ingestion.WithPoolSize(c.Int("workers")),
		ingestion.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	defer pipeline.Release()

	var results []ingestion.Result
	var files []string
	for _, path := range c.Args().Slice() {
		info, err := os.Stat(path)
		if err != nil {
			results = append(results, ingestion.Result{Path: path, Err: err})
			continue
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		dirResults, err := pipeline.LoadDir(c.Context, path)
		if err != nil {
			results = append(results, ingestion.Result{Path: path, Err: err})
			continue
		}
		results = append(results, dirResults...)
	}
	results = append(results, pipeline.LoadFiles(c.Context, files...)...)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", r.ID, r.Path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to load", failed, len(results))
	}
	return nil
}

func listCommand(c *cli.Context) error {
	registry, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer registry.Close()

	for _, id := range registry.IDs() {
		info, err := registry.Info(c.Context, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\t%s\n", info.ID, info.APIName, info.APIVersion, info.Digest[:12])
	}
	return nil
}

func readCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("store id and command are required")
	}
	id := core.StoreID(c.Args().Get(0))
	command := amfstore.Command(c.Args().Get(1))

	args := make([]any, 0, c.NArg()-2)
	for i, arg := range c.Args().Slice()[2:] {
		args = append(args, decodeArg(command, i, arg))
	}

	registry, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer registry.Close()

	result, err := registry.Read(c.Context, id, command, args...)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(c.App.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// decodeArg converts the i-th command line argument of command. The search
// limit becomes an int; JSON objects and null are decoded. Everything else,
// numbers included, stays a string so that ids like "1" keep their meaning.
func decodeArg(command amfstore.Command, i int, arg string) any {
	if command == amfstore.CommandSearch && i == 1 {
		if n, err := strconv.Atoi(arg); err == nil {
			return n
		}
		return arg
	}
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}
	switch v.(type) {
	case map[string]any, nil:
		return v
	}
	return arg
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("exactly one store id is required")
	}

	registry, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer registry.Close()

	return registry.Delete(c.Context, core.StoreID(c.Args().First()))
}

func clearCommand(c *cli.Context) error {
	registry, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer registry.Close()

	if err := registry.Clear(c.Context); err != nil {
		return err
	}
	slog.Info("registry cleared")
	return nil
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
