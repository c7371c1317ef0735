package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/go-git/go-billy/v6/osfs"
	log "github.com/sirupsen/logrus"

	sqlcli "github.com/rudrasatani13/Sqlite-cli-tool"
	"github.com/rudrasatani13/Sqlite-cli-tool/config"
	"github.com/rudrasatani13/Sqlite-cli-tool/export"
	"github.com/rudrasatani13/Sqlite-cli-tool/render"
)

// pagerPrompt replaces the shell prompt while paging through results.
const pagerPrompt = "Press Enter for next page, 'q' to quit viewing: "

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	configPath := flag.String("config", "sqlcli.yaml", "Path to a YAML configuration file")
	database := flag.String("db", "", "Database file to connect to on startup")
	script := flag.String("script", "", "SQL script to run after connecting")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("sqlcli v%s\n", Version)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	initLogging(cfg.Logging, *debug)

	if err := run(cfg, *database, *script); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initLogging configures the global logger from config, with -debug
// overriding the configured level.
func initLogging(cfg config.LoggingConfig, debug bool) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if debug {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Warnf("Failed to open log file %s: %v", cfg.File, err)
			return
		}
		log.SetOutput(file)
	}
}

func run(cfg *config.Config, database, script string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: color.CyanString(cfg.Shell.Prompt),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	shell := sqlcli.New(sqlcli.Options{
		Out:          os.Stdout,
		PageSize:     cfg.Shell.PageSize,
		Dialect:      cfg.Engine.Dialect,
		ExportFormat: cfg.Export.Format,
		Filesystem:   osfs.New("."),
		S3: export.S3Config{
			Region:    cfg.Export.S3.Region,
			Endpoint:  cfg.Export.S3.Endpoint,
			AccessKey: cfg.Export.S3.AccessKey,
			SecretKey: cfg.Export.S3.SecretKey,
		},
		Pager: pagerFunc(rl, cfg.Shell.Prompt),
	})
	defer shell.Close()

	printBanner()

	if database != "" {
		if shell.Dispatch("connect " + database) {
			return nil
		}
		if script != "" {
			if shell.Dispatch("run " + script) {
				return nil
			}
		}
	} else if script != "" {
		return errors.New("-script requires -db")
	}

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			fmt.Println()
			shell.Quit()
			return nil
		}
		if err != nil {
			return err
		}

		if shell.Dispatch(line) {
			return nil
		}
	}
}

// pagerFunc builds a render.Pager that prompts on the line editor and
// restores the shell prompt afterwards.
func pagerFunc(rl *readline.Instance, prompt string) render.Pager {
	return func(shown, total int) bool {
		rl.SetPrompt(pagerPrompt)
		defer rl.SetPrompt(color.CyanString(prompt))

		line, err := rl.Readline()
		if err != nil {
			return false
		}
		return !strings.EqualFold(strings.TrimSpace(line), "q")
	}
}

func printBanner() {
	fmt.Println()
	bannerWidth := 39 // inner width of the banner box
	versionLine := fmt.Sprintf("sqlcli v%s", Version)
	padding := bannerWidth - len(versionLine) - 2 // -2 for "  " margins
	if padding < 0 {
		padding = 0
	}
	leftPad := padding / 2
	rightPad := padding - leftPad

	banner := color.New(color.FgCyan, color.Bold)
	banner.Println("╔═══════════════════════════════════════╗")
	banner.Printf("║ %*s%s%*s ║\n", leftPad, "", versionLine, rightPad, "")
	banner.Println("║   Interactive SQL Database Shell      ║")
	banner.Println("╚═══════════════════════════════════════╝")
	fmt.Println()
	fmt.Println("Type 'help' for commands, 'exit' to leave")
	fmt.Println()
}
