package device

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Category describes how one kind of device is discovered: where to look,
// which probe file classifies a candidate directory, and how to construct
// the device. The same enumerate-probe-construct algorithm serves both
// batteries and backlights.
type Category struct {
	Type    string
	BaseDir string
	Probe   string
	Want    string
	New     func(path string) *Device
}

// Battery discovers batteries under /sys/class/power_supply. Power supply
// directories also contain AC adapters and USB ports; only those whose
// type file reads Battery qualify.
var Battery = Category{
	Type:    TypeBattery,
	BaseDir: "/sys/class/power_supply",
	Probe:   "type",
	Want:    "Battery",
	New:     NewBattery,
}

// Backlight discovers raw backlight interfaces under /sys/class/backlight.
var Backlight = Category{
	Type:    TypeBacklight,
	BaseDir: "/sys/class/backlight",
	Probe:   "type",
	Want:    "raw",
	New:     NewBacklight,
}

// Discover enumerates baseDir and constructs a device for every entry
// whose probe file matches. Entries without the probe file or with
// non-matching content are silently skipped.
func (c Category) Discover(baseDir string, logger *slog.Logger) []*Device {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil
	}

	var devices []*Device
	for _, e := range entries {
		path := filepath.Join(baseDir, e.Name())
		if err := checkProbe(path, c.Probe, c.Want); err != nil {
			continue
		}
		d := c.New(path)
		if err := d.Init(); err != nil {
			logger.Debug("skipping candidate", "path", path, "err", err)
			continue
		}
		devices = append(devices, d)
		logger.Info("added device", "type", d.Type, "name", d.Name)
	}
	return devices
}

// FromPaths constructs one device per explicitly configured path, keeping
// only those that initialize. Auto-detection is bypassed entirely.
func (c Category) FromPaths(paths []string, logger *slog.Logger) []*Device {
	var devices []*Device
	for _, path := range paths {
		d := c.New(path)
		if err := d.Init(); err != nil {
			logger.Warn("skipping configured device", "path", path, "err", err)
			continue
		}
		devices = append(devices, d)
		logger.Info("added device", "type", d.Type, "name", d.Name)
	}
	return devices
}
