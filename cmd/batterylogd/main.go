package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/cptspacemanspiff/batterylogd/internal/config"
	"github.com/cptspacemanspiff/batterylogd/internal/device"
	"github.com/cptspacemanspiff/batterylogd/internal/record"
	"github.com/cptspacemanspiff/batterylogd/internal/sampler"
	"github.com/cptspacemanspiff/batterylogd/internal/sleepmon"
)

const version = "0.2.0"

// topicHandler wraps an slog.Handler and filters records by a "topic" attribute.
// Records without a topic attribute always pass through (startup messages, errors).
// Records with a topic only pass if that topic is enabled.
type topicHandler struct {
	inner  slog.Handler
	topics map[string]bool
	topic  string // set when WithAttrs includes a "topic" key
}

func (h *topicHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.inner.Enabled(context.Background(), level)
}

func (h *topicHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.topics["all"] {
		return h.inner.Handle(ctx, r)
	}
	topic := h.topic
	if topic == "" {
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == "topic" {
				topic = a.Value.String()
				return false
			}
			return true
		})
	}
	if topic != "" && !h.topics[topic] {
		return nil
	}
	return h.inner.Handle(ctx, r)
}

func (h *topicHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	topic := h.topic
	for _, a := range attrs {
		if a.Key == "topic" {
			topic = a.Value.String()
		}
	}
	return &topicHandler{inner: h.inner.WithAttrs(attrs), topics: h.topics, topic: topic}
}

func (h *topicHandler) WithGroup(name string) slog.Handler {
	return &topicHandler{inner: h.inner.WithGroup(name), topics: h.topics, topic: h.topic}
}

func main() {
	showVersion := pflag.BoolP("version", "v", false, "print version information and exit")
	interval := pflag.IntP("interval", "i", 0, "sampling interval in seconds (default 60)")
	batteries := pflag.StringArrayP("battery", "b", nil, "path to a battery in sysfs, repeatable; disables auto-detection")
	backlights := pflag.StringArrayP("backlight", "L", nil, "path to a backlight in sysfs, repeatable; disables auto-detection")
	logPath := pflag.StringP("log", "l", "", "path to log file (default $HOME/batterylogd.log)")
	configPath := pflag.StringP("config", "c", "", "path to TOML config file")
	topicsFlag := pflag.String("topics", "", "comma-separated debug log topics: battery,backlight,sleep (or 'all')")
	verbose := pflag.Bool("verbose", false, "enable all debug logging (equivalent to --topics all)")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("batterylogd version %s\n", version)
		return
	}

	topics := make(map[string]bool)
	if *verbose {
		topics["all"] = true
	}
	if *topicsFlag != "" {
		for _, t := range strings.Split(*topicsFlag, ",") {
			topics[strings.TrimSpace(t)] = true
		}
	}

	handler := &topicHandler{
		inner:  slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		topics: topics,
	}
	logger := slog.New(handler)

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("load config", "path", *configPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override config file values.
	if pflag.CommandLine.Changed("interval") {
		cfg.Collection.IntervalSeconds = *interval
	}
	if len(*batteries) > 0 {
		cfg.Devices.Batteries = *batteries
	}
	if len(*backlights) > 0 {
		cfg.Devices.Backlights = *backlights
	}
	if *logPath != "" {
		cfg.Log.Path = *logPath
	}

	if err := config.Validate(cfg); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	devices := collectDevices(device.Battery, cfg.Devices.Batteries, logger)
	if len(devices) == 0 {
		logger.Error("no batteries found, provide -b with an explicit path")
		os.Exit(1)
	}
	bl := collectDevices(device.Backlight, cfg.Devices.Backlights, logger)
	if len(bl) == 0 {
		logger.Info("no backlight devices, backlight logging disabled")
	}
	devices = append(devices, bl...)

	path, err := cfg.LogPath()
	if err != nil {
		logger.Error("resolve log path", "err", err)
		os.Exit(1)
	}
	writer, err := record.Open(path, record.TimestampMode(cfg.Collection.TimestampMode))
	if err != nil {
		logger.Error("open log file", "path", path, "err", err)
		os.Exit(1)
	}
	defer writer.Close()
	logger.Info("logging samples", "path", path, "interval_secs", cfg.Collection.IntervalSeconds)

	var wake <-chan struct{}
	if mon, err := sleepmon.New(logger); err != nil {
		logger.Warn("sleep monitor unavailable", "err", err)
	} else {
		wake = mon.Wake()
		defer mon.Close()
	}

	loop := sampler.New(devices, writer, time.Duration(cfg.Collection.IntervalSeconds)*time.Second, wake, logger)

	// Termination signals only set the bridge's flag; the bridge's poller
	// performs the actual cancellation of the loop's wait.
	bridge := sampler.NewShutdownBridge(time.Second)
	bridge.Watch(loop.Timer())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		bridge.Notify()
	}()

	if err := loop.Run(); err != nil {
		logger.Error("sampling loop failed", "err", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
}

// collectDevices builds the device set for one category: explicit paths
// when configured, auto-detection otherwise.
func collectDevices(cat device.Category, paths []string, logger *slog.Logger) []*device.Device {
	if len(paths) > 0 {
		return cat.FromPaths(paths, logger)
	}
	return cat.Discover(cat.BaseDir, logger)
}
