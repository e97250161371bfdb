package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"chatlog/internal/chat"
	"chatlog/internal/config"
	"chatlog/internal/logger"
	"chatlog/internal/tui"
)

var log = logger.Named("cli")

type cliArgs struct {
	cfgPath   string
	overrides stringSlice
	storeRaw  bool
	title     string
}

func newFlagSet(name string, output io.Writer) (*flag.FlagSet, *cliArgs) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	args := &cliArgs{}
	fs.StringVar(&args.cfgPath, "config", "", "Path to config file (default ~/.chatlog/config.toml)")
	fs.Var(&args.overrides, "c", "Override config value key=value (repeatable)")
	fs.BoolVar(&args.storeRaw, "raw", false, "Store submitted lines without trimming surrounding whitespace")
	fs.StringVar(&args.title, "title", "", "Window title")
	return fs, args
}

func main() {
	logger.Configure()

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "init-config" {
		if err := initConfigMain(args[1:], os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	fs, cli := newFlagSet("chatlog", os.Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if logFile, _, err := logger.SetupFile(cfg.LogPath); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Warnf("invalid log level %q: %v", cfg.LogLevel, err)
	}

	var opts []chat.Option
	if cfg.StoreRaw {
		opts = append(opts, chat.WithRawText())
	}
	sess := chat.NewSession(opts...)
	log.WithField("session_id", sess.ID()).Info("session started")

	result, err := tui.Run(tui.Options{
		Session:        sess,
		Title:          cfg.Title,
		Placeholder:    cfg.Placeholder,
		CopyableOutput: cfg.CopyableOutput,
	})
	if err != nil {
		log.Errorf("program exit: %v", err)
		return
	}
	log.WithField("session_id", result.SessionID).WithField("entries", len(result.Entries)).Info("session ended")
	printExitSummary(os.Stdout, result)
}

// loadConfig 依次应用配置文件、-c 覆盖与专用 flag。
func loadConfig(cli *cliArgs) (config.Config, error) {
	cfg, err := config.Load(cli.cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", cfg.Source, err)
	}
	cfg = config.ApplyKVOverrides(cfg, []string(cli.overrides))
	if cli.storeRaw {
		cfg.StoreRaw = true
	}
	if cli.title != "" {
		cfg.Title = cli.title
	}
	return cfg, nil
}

func printExitSummary(w io.Writer, result tui.Result) {
	if len(result.Entries) == 0 {
		return
	}
	fmt.Fprintf(w, "Submitted %d lines in session %s\n", len(result.Entries), result.SessionID)
}
