package device

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Device type tags, used as the first field of every log record.
const (
	TypeBattery   = "battery"
	TypeBacklight = "backlight"
)

// batterySchema lists the sysfs attribute files sampled for a battery.
// The order is fixed and determines the column order of battery records.
var batterySchema = []string{
	"capacity",
	"cycle_count",
	"energy_full",
	"energy_full_design",
	"energy_now",
	"power_now",
	"present",
	"status",
	"voltage_min_design",
	"voltage_now",
}

// backlightSchema lists the sysfs attribute files sampled for a backlight.
var backlightSchema = []string{
	"brightness",
	"max_brightness",
}

// Attribute is a single sysfs value file. Sample keeps the last
// successfully read value, so a file that becomes unreadable between
// ticks yields its previous value instead of an error.
type Attribute struct {
	path  string
	value string
}

// Init verifies the attribute file can be opened.
func (a *Attribute) Init() error {
	f, err := os.Open(a.path)
	if err != nil {
		return err
	}
	return f.Close()
}

// Sample re-reads the first line of the attribute file. Read failures
// are silent: the stored value stays whatever it was before.
func (a *Attribute) Sample() {
	f, err := os.Open(a.path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		a.value = scanner.Text()
	}
}

// Value returns the most recently read value. Empty until the first
// successful Sample.
func (a *Attribute) Value() string {
	return a.value
}

// Device is one monitored sysfs directory with a fixed attribute schema.
// Its structure never changes after Init; only attribute values do.
type Device struct {
	Path string
	Name string
	Type string

	attrs []*Attribute
}

func newDevice(path, devType string, schema []string) *Device {
	path = normalizePath(path)
	d := &Device{
		Path: path,
		Name: filepath.Base(path),
		Type: devType,
	}
	for _, name := range schema {
		d.attrs = append(d.attrs, &Attribute{path: filepath.Join(path, name)})
	}
	return d
}

// NewBattery creates a battery device rooted at the given sysfs path.
func NewBattery(path string) *Device {
	return newDevice(path, TypeBattery, batterySchema)
}

// NewBacklight creates a backlight device rooted at the given sysfs path.
func NewBacklight(path string) *Device {
	return newDevice(path, TypeBacklight, backlightSchema)
}

// Init validates the device and opens its attributes. For batteries this
// includes the identification check against the sibling type file; a
// backlight's identity is established by the discovery probe. A failed
// Init means the device is discarded and never sampled.
func (d *Device) Init() error {
	if d.Type == TypeBattery {
		if err := checkProbe(d.Path, "type", "Battery"); err != nil {
			return fmt.Errorf("identify %s: %w", d.Name, err)
		}
	}
	for _, a := range d.attrs {
		if err := a.Init(); err != nil {
			return fmt.Errorf("open attribute: %w", err)
		}
	}
	return nil
}

// SampleAll reads every attribute in schema order. A slow or failed read
// never aborts the tick; failures keep the attribute's prior value.
func (d *Device) SampleAll() {
	for _, a := range d.attrs {
		a.Sample()
	}
}

// Values returns the current attribute values in schema order.
func (d *Device) Values() []string {
	vals := make([]string, len(d.attrs))
	for i, a := range d.attrs {
		vals[i] = a.Value()
	}
	return vals
}

// checkProbe reads the first line of dir/name and compares it against want.
func checkProbe(dir, name, want string) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return fmt.Errorf("empty %s file", name)
	}
	if got := scanner.Text(); got != want {
		return fmt.Errorf("%s is %q, want %q", name, got, want)
	}
	return nil
}

// normalizePath strips trailing separators so the device name derives
// cleanly from the final path segment.
func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, string(filepath.Separator))
	}
	return filepath.Clean(path)
}
