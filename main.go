package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmLog "github.com/charmbracelet/log"

	"trysel/internal/config"
	"trysel/internal/selector"
	"trysel/internal/shell"
	"trysel/internal/term"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("trysel", flag.ContinueOnError)
	fs.Usage = func() { printHelp(fs.Output()) }

	var (
		basePath = fs.String("path", "", "directory holding the tries (default ~/.tries)")
		debug    = fs.Bool("debug", false, "write debug logs to trysel.log")
		andExit  = fs.Bool("and-exit", false, "render one frame and exit (testing)")
		andKeys  = fs.String("and-keys", "", "inject a key script instead of reading the terminal (testing)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := charmLog.New(io.Discard)
	if *debug || os.Getenv("TRYSEL_DEBUG") != "" {
		logFile, err := os.OpenFile("trysel.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open log file: %v\n", err)
		} else {
			defer logFile.Close()
			logger = charmLog.NewWithOptions(logFile, charmLog.Options{
				Level:           charmLog.DebugLevel,
				Prefix:          "trysel",
				ReportTimestamp: true,
				Formatter:       charmLog.LogfmtFormatter,
			})
		}
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if *basePath != "" {
		cfg.BasePath = *basePath
	}
	if cfg.BasePath == "" {
		fmt.Fprintln(os.Stderr, "error: could not determine tries path; set HOME or use --path")
		return 1
	}
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: could not create tries directory %s: %v\n", cfg.BasePath, err)
		return 1
	}

	cmd := "cd"
	rest := fs.Args()
	if len(rest) > 0 {
		cmd = rest[0]
		rest = rest[1:]
	}

	switch cmd {
	case "init":
		return cmdInit()
	case "clone":
		return cmdClone(rest, cfg, logger)
	case "worktree":
		fmt.Fprintln(os.Stderr, "worktree is not implemented yet")
		return 1
	case "cd":
		return cmdCd(rest, cfg, logger, *andExit, *andKeys)
	default:
		// Unknown commands are a query shorthand for cd.
		return cmdCd(fs.Args(), cfg, logger, *andExit, *andKeys)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `Usage: trysel [command] [args]
Commands:
  init             Print the shell integration function
  clone <url>      Clone a repo into a new try
  worktree         Create a worktree (not implemented)
  cd [query]       Interactive selector, optionally pre-filtered
  [query]          Shorthand for cd [query]
`)
}

func cmdInit() int {
	bin, err := os.Executable()
	if err != nil {
		bin = "trysel"
	}
	fmt.Print(shell.InitScript(bin))
	return 0
}

// cmdClone emits the script that clones url into a fresh dated directory
// and changes into it.
func cmdClone(args []string, cfg *config.Config, logger *charmLog.Logger) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: trysel clone <url> [name]")
		return 1
	}
	url := args[0]

	name := ""
	if len(args) > 1 {
		name = args[1]
	} else {
		name = filepath.Base(url)
		name = strings.TrimSuffix(name, ".git")
	}
	dir := filepath.Join(cfg.BasePath, time.Now().Format("2006-01-02")+"-"+name)
	logger.Debug("clone", "url", url, "dir", dir)

	var s shell.Script
	s.Echo("Cloning into new try...").
		Mkdir(dir).
		Clone(url, dir).
		Touch(dir).
		Cd(dir)
	fmt.Print(s.String())
	return 0
}

// cmdCd runs the selector and prints the script for whatever the user chose.
// Stdout carries only the script; the UI lives on stderr.
func cmdCd(args []string, cfg *config.Config, logger *charmLog.Logger, renderOnce bool, keyScript string) int {
	opts := selector.Options{
		BasePath:       cfg.BasePath,
		InitialFilter:  strings.Join(args, " "),
		Colors:         !cfg.NoColors,
		MetaMargin:     cfg.MetaMargin,
		MetaMinOverlap: cfg.MetaMinOverlap,
		RenderOnce:     renderOnce,
		Logger:         logger,
	}
	if keyScript != "" {
		keys, err := term.ParseScript(keyScript)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: bad key script: %v\n", err)
			return 1
		}
		opts.Keys = keys
	}

	res, err := selector.New(term.New(), opts).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	logger.Debug("selector result", "action", res.Action, "path", res.Path)

	var s shell.Script
	switch res.Action {
	case selector.ActionCd:
		s.Touch(res.Path).Cd(res.Path)
	case selector.ActionCreate:
		s.Mkdir(res.Path).Cd(res.Path)
	case selector.ActionDelete:
		s.Echo("Deleting marked tries...")
		for _, p := range res.Deleted {
			s.RemoveDir(p)
		}
	case selector.ActionCancel:
		// The sourcing shell still needs a script that succeeds.
	}
	fmt.Print(s.String())
	return 0
}
