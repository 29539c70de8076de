// Command minimap-preview runs the minimap plugin against in-process stand-ins
// for the host: a settings file, a SQLite bookmark store, a static solar
// system and a GUI recorder. It prints the script the plugin sends to the
// web view.
//
// Usage:
//
//	minimap-preview [demo] [dumpdb <path>]
//
// "demo" seeds a few bookmarks before the bodies are visited. "dumpdb"
// writes the bookmark database to path afterwards.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/cosmoscout/csp-minimap/internal/bookmarks"
	"github.com/cosmoscout/csp-minimap/internal/config"
	"github.com/cosmoscout/csp-minimap/internal/database"
	"github.com/cosmoscout/csp-minimap/internal/gui"
	"github.com/cosmoscout/csp-minimap/internal/logging"
	"github.com/cosmoscout/csp-minimap/internal/minimap"
	intOtel "github.com/cosmoscout/csp-minimap/internal/otel"
	"github.com/cosmoscout/csp-minimap/internal/settingsfile"
	"github.com/cosmoscout/csp-minimap/pkg/core"
	"github.com/cosmoscout/csp-minimap/pkg/host"
)

var (
	SessionStartTime = time.Now()

	SlogManager  *logging.SlogManager
	Logger       *slog.Logger
	OTelProvider *intOtel.Provider

	LogFilePath string
	LogFile     *os.File
)

type options struct {
	demo   bool
	dumpDB string
}

func parseArgs(args []string) (options, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "demo":
			opts.demo = true
		case "dumpdb":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("dumpdb needs a path")
			}
			i++
			opts.dumpDB = args[i]
		default:
			return opts, fmt.Errorf("unknown argument %q", args[i])
		}
	}
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "usage: minimap-preview [demo] [dumpdb <path>]")
		os.Exit(2)
	}

	setupLogging()
	defer shutdown()

	if err := run(opts); err != nil {
		Logger.Error("Preview failed", "error", err)
		shutdown()
		os.Exit(1)
	}
}

func setupLogging() {
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, viper.GetString("logLevel"), nil)
	Logger = SlogManager.Logger()

	configDir := os.Getenv("MINIMAP_CONFIG_DIR")
	if configDir == "" {
		configDir = "."
	}
	if err := config.Load(configDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config")
	}

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		Logger.Error("Failed to create logs directory", "error", err, "path", logsDir)
		return
	}

	LogFilePath = logging.SessionLogPath(logsDir, SessionStartTime)
	var err error
	LogFile, err = os.OpenFile(LogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", LogFilePath)
		return
	}

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    LogFile,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			Logger.Info("OTel provider initialized", "file", LogFilePath, "endpoint", otelCfg.Endpoint)
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	SlogManager.Setup(LogFile, config.GetString("logLevel"), otelLogProvider)
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", LogFilePath)
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := SlogManager.Flush(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to flush logs: %v\n", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to shut down OTel: %v\n", err)
		}
		OTelProvider = nil
	}
	if LogFile != nil {
		LogFile.Close()
		LogFile = nil
	}
}

// newZerolog returns the logger of the database layer, writing to the log
// file when there is one.
func newZerolog() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString("logLevel")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if LogFile != nil {
		return zerolog.New(LogFile).Level(level).With().Timestamp().Logger()
	}
	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func run(opts options) error {
	preview, err := config.GetPreviewConfig()
	if err != nil {
		return err
	}

	bodies := make([]core.Body, 0, len(preview.Bodies))
	for _, b := range preview.Bodies {
		bodies = append(bodies, &core.StaticBody{Name: b.Name, Semiaxes: mgl64.Vec3(b.Radii)})
	}
	solar := host.NewStaticSolarSystem(bodies...)

	logger := SlogManager.WithBody(func() string {
		if b := solar.ActiveBody().Get(); b != nil {
			return b.CenterName()
		}
		return ""
	})

	settingsFile, err := settingsfile.Open(preview.SettingsFile, logger)
	if err != nil {
		return err
	}

	zlog := newZerolog()
	db := database.NewManager(zlog.With().Str("component", "database").Logger())
	if err := db.Connect(preview.BookmarksDB); err != nil {
		return err
	}
	defer db.Close()
	if err := db.Setup(bookmarks.Models...); err != nil {
		return err
	}
	store := bookmarks.New(db.DB, zlog)

	recorder, err := gui.NewRecorder(logger)
	if err != nil {
		return err
	}

	factory := minimap.Factory(logger, config.GetResourceConfig(), config.GetSettingsKey())
	plugin, err := factory(host.Services{
		Settings:    settingsFile,
		Gui:         recorder,
		Bookmarks:   store,
		SolarSystem: solar,
	})
	if err != nil {
		return err
	}

	initErr := plugin.Init()
	if initErr == nil {
		initErr = exercise(opts, solar, store, recorder, preview.Bodies)
		if initErr == nil {
			initErr = settingsFile.Save()
		}
	}
	plugin.DeInit()

	for _, c := range recorder.Calls() {
		fmt.Println(c.Script())
	}
	if initErr != nil {
		return initErr
	}

	if opts.dumpDB != "" {
		if err := db.DumpMemoryToDisk(opts.dumpDB); err != nil {
			return err
		}
		Logger.Info("Bookmarks written", "path", opts.dumpDB)
	}
	return nil
}

// exercise drives the plugin the way a user session would: visit every body
// with the minimap shown, then leave to free space.
func exercise(opts options, solar *host.StaticSolarSystem, store *bookmarks.Store, recorder *gui.Recorder, bodies []config.BodyConfig) error {
	if opts.demo {
		if err := seedBookmarks(store, bodies); err != nil {
			return err
		}
	}

	if err := recorder.Press(minimap.TimelineButtonLabel); err != nil {
		return err
	}
	for _, b := range bodies {
		if err := solar.Activate(b.Name); err != nil {
			return err
		}
	}
	return solar.Activate("")
}
