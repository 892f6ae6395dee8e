// chessvariant is a command-line front end for the variant rules engine.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"
)

// Command-line flags
var (
	flagVariant = flag.String("variant", "standard", "Variant name (built-in or user file)")
	flagFile    = flag.String("file", "", "Load the variant from this TOML file")
	flagFEN     = flag.String("fen", "", "Position text (default: the variant's starting position)")
	flagDepth   = flag.Int("depth", 3, "Depth for perft and divide")
	flagWorkers = flag.Int("workers", 0, "Perft workers (0: one per logical core)")
	flagJSON    = flag.Bool("json", false, "Write JSON output")
	flagVerbose = flag.Bool("v", false, "Verbose logging")
)

const usage = `usage: chessvariant [flags] <command> [args]

commands:
  moves              list the legal moves
  perft              count move-tree leaf nodes to -depth
  divide             perft broken down by root move
  play <move>...     play moves in coordinate notation and print the result
  fen                print the normalized position text
  variants           list the known variants

flags:
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, NewApp(), flag.Arg(0), flag.Args()[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "chessvariant: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, app *App, command string, args []string, out io.Writer) error {
	if command == "variants" {
		return printVariants(app, out)
	}

	cfg, err := app.Variant(*flagVariant, *flagFile)
	if err != nil {
		return err
	}

	var moves []string
	if command == "play" {
		moves = args
	} else if len(args) > 0 {
		return fmt.Errorf("%s takes no arguments", command)
	}
	s, err := app.Open(cfg, *flagFEN, moves)
	if err != nil {
		return err
	}

	switch command {
	case "fen":
		fmt.Fprintln(out, s.FEN())
		return nil

	case "play":
		if *flagJSON {
			return writeJSON(out, map[string]any{
				"fen":      s.FEN(),
				"position": s.PositionCommand(),
				"check":    s.InCheck(),
			})
		}
		fmt.Fprintln(out, s.FEN())
		fmt.Fprintln(out, s.PositionCommand())
		if s.InCheck() {
			fmt.Fprintln(out, "check")
		}
		return nil

	case "moves":
		infos, err := app.LegalMoves(s)
		if err != nil {
			return err
		}
		if *flagJSON {
			return writeJSON(out, infos)
		}
		for _, m := range infos {
			line := m.Move
			if m.Castle != "" {
				line += " castle " + m.Castle
			}
			if m.Check {
				line += " +"
			}
			fmt.Fprintln(out, line)
		}
		fmt.Fprintf(out, "%d moves\n", len(infos))
		return nil

	case "perft", "divide":
		res, err := app.Perft(ctx, s, *flagDepth, *flagWorkers, command == "divide")
		if err != nil {
			return err
		}
		if *flagJSON {
			return writeJSON(out, res)
		}
		for _, e := range res.Divide {
			fmt.Fprintf(out, "%s: %d\n", e.Move, e.Nodes)
		}
		fmt.Fprintf(out, "depth %d: %d nodes in %v (%d nps)\n", res.Depth, res.Nodes, res.Elapsed.Round(time.Millisecond), res.NPS())
		return nil
	}

	return errors.New("unknown command " + command)
}

func printVariants(app *App, out io.Writer) error {
	infos := app.ListVariants()
	if *flagJSON {
		return writeJSON(out, infos)
	}
	for _, v := range infos {
		desc := v.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(out, "%-12s %dx%-3d %-8s %s\n", v.Name, v.Width, v.Height, v.Source, strings.TrimSpace(desc))
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
