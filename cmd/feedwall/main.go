package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/bnema/feedwall/internal/bootstrap"
	"github.com/bnema/feedwall/internal/cli/cmd"
	"github.com/bnema/feedwall/internal/domain/build"
	"github.com/bnema/feedwall/internal/infrastructure/config"
	"github.com/bnema/feedwall/internal/infrastructure/lock"
	"github.com/bnema/feedwall/internal/infrastructure/webkit"
	"github.com/bnema/feedwall/internal/logging"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	enableCrashForensics()

	if len(os.Args) == 1 || os.Args[1] == "run" {
		os.Exit(runGUI())
	}

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.Execute()
}

func runGUI() int {
	runtime.LockOSThread()
	timer := bootstrap.NewStartupTimer()

	cfg, cfgErr := initConfig()
	timer.Mark("config")

	ctx := initStartupContext(cfg)
	log := logging.FromContext(ctx)
	timer.Mark("logger")
	if cfgErr != nil {
		log.Error().Err(cfgErr).Msg("invalid configuration, run 'feedwall config validate'")
		return 1
	}

	if err := webkit.PreflightScripts(); err != nil {
		log.Error().Err(err).Msg("injected scripts failed to compile")
		return 1
	}
	timer.Mark("scripts")

	instance, err := acquireInstanceLock()
	if err != nil {
		log.Error().Err(err).Msg("cannot start")
		return 1
	}
	defer func() {
		if err := instance.Release(); err != nil {
			log.Warn().Err(err).Msg("failed to release instance lock")
		}
	}()

	stack, err := bootstrap.NewStack(ctx, bootstrap.StackOptions{Config: cfg, Post: webkit.PostToMain})
	if err != nil {
		log.Error().Err(err).Msg("failed to build application")
		return 1
	}
	defer func() {
		if err := stack.Close(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("failed to flush settings")
		}
	}()

	restored, err := stack.RestoreSession(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to restore session")
		return 1
	}
	log.Info().
		Strs("layout", restored.Arrangement.Strings()).
		Bool("layout_restored", restored.LayoutRestored).
		Bool("pinned", restored.Controls.Pinned).
		Msg("session restored")
	timer.Mark("restore")

	dataDir, cacheDir := webDirs(log)
	host, err := webkit.NewHost(stack.HostOptions(dataDir, cacheDir), stack.HostDeps())
	if err != nil {
		log.Error().Err(err).Msg("failed to create window")
		return 1
	}
	timer.Mark("host")

	watchConfig(log)
	timer.Log(ctx, zerolog.DebugLevel)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return host.Run(runCtx)
}

func initConfig() (*config.Config, error) {
	if err := config.Init(); err != nil {
		return config.DefaultConfig(), err
	}
	return config.Get(), nil
}

// initStartupContext builds the process logger: console on stderr plus a
// rotated JSON file when enabled, tagged with a per-run session id.
func initStartupContext(cfg *config.Config) context.Context {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	if cfg.Logging.Format != "" {
		logCfg.Format = cfg.Logging.Format
	}
	logCfg.TimeFormat = "15:04:05"
	if cfg.Logging.EnableFileLog {
		logCfg.FileDir = cfg.Logging.LogDir
		logCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
		logCfg.MaxBackups = cfg.Logging.MaxBackups
		logCfg.MaxAgeDays = cfg.Logging.MaxAgeDays
	}

	logger := logging.New(logCfg)
	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Msg("starting feedwall")

	ctx := logging.WithContext(context.Background(), logger)
	return logging.WithSession(ctx, logging.GenerateSessionID())
}

func acquireInstanceLock() (*lock.InstanceLock, error) {
	path, err := config.GetLockFile()
	if err != nil {
		return nil, err
	}
	return lock.Acquire(path)
}

func webDirs(log *zerolog.Logger) (string, string) {
	dataDir, err := config.GetDataDir()
	if err != nil {
		log.Warn().Err(err).Msg("no data directory, web storage is ephemeral")
	}
	cacheDir, err := config.GetCacheDir()
	if err != nil {
		log.Warn().Err(err).Msg("no cache directory, web cache is ephemeral")
	}
	return dataDir, cacheDir
}

// watchConfig logs edits to the config file. Sites, layout and viewports are
// read once, so edits apply on the next start.
func watchConfig(log *zerolog.Logger) {
	if err := config.Watch(); err != nil {
		log.Debug().Err(err).Msg("config watcher unavailable")
		return
	}
	config.OnConfigChange(func(c config.Change) {
		log.Info().Strs("sections", c.Sections).Msg("config file changed, restart feedwall to apply it")
	})
}
