package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"quick-launch/internal/app"
	"quick-launch/internal/config"
	"quick-launch/internal/logger"
)

type cliOptions struct {
	path     string
	profile  string
	columns  int
	logLevel string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	appLogger := newLogger(determineLogLevel(opts.logLevel))
	appConfig := config.DefaultAppConfig()

	prefs, err := config.Load(appConfig.PreferencesPath, appConfig)
	if err != nil {
		appLogger.Warning("Main", "using default preferences", map[string]interface{}{
			"path":  appConfig.PreferencesPath,
			"error": err.Error(),
		})
	}

	if err := applyOptions(prefs, opts); err != nil {
		log.Fatalf("quick-launch: %v", err)
	}
	if err := prefs.Save(appConfig.PreferencesPath); err != nil {
		appLogger.Error("Main", err, map[string]interface{}{"path": appConfig.PreferencesPath})
	}

	application, err := app.NewApplication(app.Options{
		App:    appConfig,
		Prefs:  prefs,
		Logger: appLogger,
	})
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application execution failed: %v", err)
	}
}

func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("quick-launch", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVarP(&opts.path, "path", "p", "", "directory to scan for executables")
	fs.StringVar(&opts.profile, "profile", "", "profile to load settings from (created if missing)")
	fs.IntVarP(&opts.columns, "columns", "c", 0, "number of grid columns")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (default from LOG_LEVEL)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(output, err)
		return opts, err
	}
	if opts.path != "" {
		if err := checkDir(opts.path); err != nil {
			fmt.Fprintln(output, err)
			return opts, err
		}
	}
	if opts.columns < 0 {
		err := fmt.Errorf("columns must be positive, got %d", opts.columns)
		fmt.Fprintln(output, err)
		return opts, err
	}
	return opts, nil
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("cannot use %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}

// applyOptions folds command line choices into the preferences so they are
// remembered for the next start.
func applyOptions(prefs *config.Preferences, opts cliOptions) error {
	if opts.profile != "" {
		if _, err := prefs.Profile(opts.profile); errors.Is(err, config.ErrProfileNotFound) {
			if err := prefs.AddProfile(config.Profile{Name: opts.profile}); err != nil {
				return err
			}
		}
		if err := prefs.Use(opts.profile); err != nil {
			return err
		}
	}
	if opts.path != "" {
		abs, err := filepath.Abs(opts.path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", opts.path, err)
		}
		prefs.SetScriptDir(abs)
	}
	if opts.columns > 0 {
		prefs.SetColumns(opts.columns)
	}
	return nil
}

// determineLogLevel prefers the flag, then LOG_LEVEL, then DEBUG=1.
func determineLogLevel(flagValue string) zerolog.Level {
	if flagValue != "" {
		return logger.ParseLevel(flagValue)
	}
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		return logger.ParseLevel(env)
	}
	if os.Getenv("DEBUG") == "1" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func newLogger(level zerolog.Level) logger.Logger {
	if os.Getenv("QUICK_LAUNCH_JSON_LOGS") == "true" {
		return logger.NewJSONLogger(level)
	}
	return logger.NewConsoleLogger(level)
}
