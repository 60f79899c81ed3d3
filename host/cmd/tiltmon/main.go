// tiltmon watches the tilt firmware's telemetry uplink and prints one line
// per status report.
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tiltstep/host/monitor"
	"tiltstep/host/serial"
)

var (
	device     = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud       = flag.Int("baud", 115200, "Baud rate")
	configPath = flag.String("config", "", "YAML config file (flags override)")
	showRaw    = flag.Bool("raw", false, "Also print raw frame payloads")
)

// fileConfig mirrors the YAML config file.
type fileConfig struct {
	Device  string `yaml:"device"`
	Baud    int    `yaml:"baud"`
	ShowRaw bool   `yaml:"show_raw"`
}

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	raw := *showRaw

	if *configPath != "" {
		fc, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if fc.Device != "" {
			cfg.Device = fc.Device
		}
		if fc.Baud != 0 {
			cfg.Baud = fc.Baud
		}
		raw = raw || fc.ShowRaw

		// Explicit flags win over the file.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "device":
				cfg.Device = *device
			case "baud":
				cfg.Baud = *baud
			case "raw":
				raw = *showRaw
			}
		})
	}

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("Listening on %s at %d baud\n", cfg.Device, cfg.Baud)

	m := monitor.New(port, os.Stdout)
	m.ShowRaw = raw
	if err := m.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Stream ended: %d reports, %d skipped\n", m.Frames(), m.Skipped())
}

func loadConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}
