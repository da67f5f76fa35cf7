package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/stanza-tools/stanza/internal/config"
	"github.com/stanza-tools/stanza/internal/dispatchers"
	"github.com/stanza-tools/stanza/internal/history"
	"github.com/stanza-tools/stanza/internal/log"
	"github.com/stanza-tools/stanza/internal/shell"
	"github.com/stanza-tools/stanza/internal/style"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfgPath := os.Getenv("STANZA_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	if err := log.Init(cfg.LogPath, log.ParseLevel(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer func() { _ = log.Close() }()

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	style.Init(interactive && cfg.Color)

	d := shell.BuildTree()
	env := &shell.Env{
		User:  userName(),
		Users: []string{"alice", "bob", "carol"},
		Admin: os.Getenv("STANZA_ADMIN") != "",
		Out:   os.Stdout,
	}

	// With arguments, dispatch the joined line once and exit.
	if len(args) > 0 {
		return dispatch(d, env, strings.Join(args, " "))
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		log.Warn("main: history unavailable: %v", err)
		store = nil
	} else {
		defer func() { _ = store.Close() }()
	}

	if !interactive {
		return runPiped(d, env, store)
	}

	if err := shell.Run(d, env, store); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func dispatch(d *dispatchers.Dispatcher, env *shell.Env, line string) int {
	result, err := d.ExecuteString(line, env)
	if err != nil {
		fmt.Fprintln(os.Stderr, style.Error(err.Error()))
		return 1
	}
	log.Debug("main: %q returned %d", line, result)
	return 0
}

// runPiped reads command lines from stdin, one per line, for use in
// scripts and pipelines. A failing line aborts with a non-zero exit.
func runPiped(d *dispatchers.Dispatcher, env *shell.Env, store *history.Store) int {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result, err := d.ExecuteString(line, env)
		if store != nil {
			entry := history.Entry{Input: line, Succeeded: err == nil, Result: result}
			if err != nil {
				entry.Error = err.Error()
			}
			if _, herr := store.Append(entry); herr != nil {
				log.Warn("main: record history: %v", herr)
			}
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func userName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "you"
}
