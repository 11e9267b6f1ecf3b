// Command memoryd is the long-running host process for a memory-mcp
// coordinator. It loads configuration, constructs the coordinator,
// installs signal handlers for graceful shutdown, and wires a recovered
// panic handler into the crash journal. The JSON-RPC stdio transport
// itself is out of this module's scope (see SPEC_FULL.md §5.3); memoryd
// exposes the operation surface as plain exported methods on
// *coordinator.Coordinator for a transport to dispatch into via
// internal/hostio.Dispatch.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/untoldecay/memory-mcp/internal/config"
	"github.com/untoldecay/memory-mcp/internal/coordinator"
	"github.com/untoldecay/memory-mcp/internal/crashjournal"
)

func main() {
	os.Exit(run())
}

func run() int {
	startedAt := time.Now()

	logger := newLogger()
	slog.SetDefault(logger)

	defer func() {
		if r := recover(); r != nil {
			writeCrash(fmt.Errorf("panic: %v", r), crashjournal.TypeUncaughtException, startedAt)
			panic(r)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		writeCrash(err, crashjournal.TypeStartupFailure, startedAt)
		return 1
	}

	c := coordinator.New(cfg, logger)
	if err := c.Init(); err != nil {
		writeCrash(err, crashjournal.TypeStartupFailure, startedAt)
		return 1
	}
	logger.Info("coordinator initialized", "state", c.State(), "lobes", c.LobeNames())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reloadTicker := time.NewTicker(5 * time.Second)
	defer reloadTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down gracefully")
			return 0
		case <-reloadTicker.C:
			if err := c.MaybeReload(); err != nil {
				logger.Warn("config reload check failed", "error", err)
			}
		}
	}
}

func newLogger() *slog.Logger {
	home, err := os.UserHomeDir()
	logPath := "memoryd.log"
	if err == nil {
		logPath = home + "/.memory-mcp/memoryd.log"
	}
	sink := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	return slog.New(slog.NewJSONHandler(sink, nil))
}

func writeCrash(err error, typ crashjournal.Type, startedAt time.Time) {
	j, jErr := crashjournal.Default()
	if jErr != nil {
		fmt.Fprintln(os.Stderr, "crash journal unavailable:", jErr)
		return
	}
	report := crashjournal.BuildReport(err, typ, crashjournal.Context{Phase: "startup"}, time.Since(startedAt))
	if writeErr := j.WriteReportSync(report); writeErr != nil {
		fmt.Fprintln(os.Stderr, "failed to write crash report:", writeErr)
	}
	slog.Error("memoryd crashed", "crash_id", report.ID, "error", err)
}
