// Package main is the entry point for the mathcore demo shell.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmillard/mathcore/internal/config"
	"github.com/dmillard/mathcore/internal/engine/field"
	"github.com/dmillard/mathcore/internal/engine/history"
	"github.com/dmillard/mathcore/internal/notify"
	"github.com/dmillard/mathcore/internal/plugin/hook"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	var hooks history.Hooks
	if cfg.Hooks.Manifest != "" {
		m, err := hook.LoadManifest(cfg.Hooks.Manifest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		sh, err := hook.Load(m, filepath.Dir(cfg.Hooks.Manifest))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer sh.Close()
		hooks = sh
	}

	notifier := notify.New()
	defer notifier.Close()
	if opts.verbose {
		notifier.Subscribe(func(c notify.Change) {
			fmt.Fprintf(os.Stderr, "-- %s %s -> %s\n", c.Type, c.Old, c.New)
		})
	}

	f := field.New(
		field.WithNotifier(notifier),
		field.WithSmartFence(cfg.Field.SmartFence),
	)
	mgr := history.NewManager(f, cfg.History.MaxDepth)
	mgr.StartRecording()
	mgr.Snapshot(hooks)

	return repl(f, mgr, hooks, cfg)
}

func repl(f *field.Field, mgr *history.Manager, hooks history.Hooks, cfg config.Config) int {
	var saved *history.Snapshot

	fmt.Println("mathcore shell. Type to insert; :help for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", f.Serialize())
		if !scanner.Scan() {
			return 0
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":q":
			return 0
		case line == ":help":
			printHelp()
		case line == ":undo":
			if err := mgr.Undo(hooks); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		case line == ":redo":
			if err := mgr.Redo(hooks); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		case line == ":save":
			snap := mgr.Save()
			saved = &snap
			fmt.Println("state saved")
		case line == ":restore":
			if err := mgr.Restore(saved, history.RestoreOptions{}); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		case line == ":reset":
			mgr.Reset()
			fmt.Println("history cleared")
		case line == ":status":
			fmt.Printf("depth=%d cursor=%d undo=%v redo=%v\n",
				mgr.Depth(), mgr.Cursor(), mgr.CanUndo(), mgr.CanRedo())
		case line == ":back":
			f.DeleteBackward()
			mgr.Snapshot(hooks)
		case strings.HasPrefix(line, ":"):
			fmt.Fprintf(os.Stderr, "unknown command %s\n", line)
		default:
			if err := f.Insert(line); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			// Single characters coalesce like continuous typing.
			if cfg.History.CoalesceBursts && len(line) == 1 {
				mgr.SnapshotAndCoalesce(hooks)
			} else {
				mgr.Snapshot(hooks)
			}
		}

		reportHookErrors(hooks)
	}
}

func reportHookErrors(hooks history.Hooks) {
	sh, ok := hooks.(*hook.ScriptHooks)
	if !ok {
		return
	}
	for _, err := range sh.Errs() {
		fmt.Fprintf(os.Stderr, "hook error: %v\n", err)
	}
}

func printHelp() {
	fmt.Println(`Commands:
  <text>    insert text at the cursor (single chars coalesce)
  :back     delete before the cursor
  :undo     step backward through history
  :redo     step forward through history
  :save     save the current state
  :restore  restore the saved state (empty document if none)
  :reset    clear history
  :status   show history state
  :quit     exit`)
}

type options struct {
	configPath string
	verbose    bool
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.verbose, "verbose", false, "Print change notifications")
	flag.BoolVar(&opts.verbose, "v", false, "Print change notifications (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mathcore - math expression editor core demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mathcore [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("mathcore %s\n", version)
		os.Exit(0)
	}

	return opts
}
