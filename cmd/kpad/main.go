// cmd/kpad/main.go
package main

import (
	"flag"
	"fmt"
	stlog "log" // for fatal errors before the logger is ready
	"os"

	"golang.org/x/term"

	"github.com/kgilper/kpad/internal/app"
	"github.com/kgilper/kpad/internal/config"
	"github.com/kgilper/kpad/internal/logger"
)

func main() {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file]\n", config.AppName)
		flag.PrintDefaults()
	}
	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return
	}
	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	if !*flags.Force && !term.IsTerminal(int(os.Stdin.Fd())) {
		stlog.Fatalf("%s: stdin is not a terminal (use -force to start anyway)", config.AppName)
	}

	// --- Configuration ---
	cfg, undecoded, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)

	// --- Logger Initialization ---
	logFilePath := cfg.Logger.LogFilePath
	if logFilePath == "" {
		logFilePath = config.DefaultLogFileName
	}
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", logFilePath, err)
	}
	defer logFile.Close()
	logger.Init(cfg.Logger, logFile)

	logger.Infof("Starting %s %s", config.AppName, config.Version)
	if cfgErr != nil {
		logger.Errorf("config: %v (using defaults)", cfgErr)
	}
	for _, key := range undecoded {
		logger.Warnf("config: unknown key %q", key)
	}
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	// --- Create and Run App ---
	editorApp, err := app.NewApp(cfg, filePath, nil)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	if err := editorApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
