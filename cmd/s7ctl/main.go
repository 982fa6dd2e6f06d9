// Command s7ctl is a diagnostic CLI for S7 PLCs: read and write data
// areas, query device info and control the run state over ISO-on-TCP.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thinkgos/gos7"
)

// deviceConfig mirrors the persistent flags; a YAML file given with
// --config supplies defaults that explicit flags override.
type deviceConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Rack      int    `yaml:"rack"`
	Slot      int    `yaml:"slot"`
	Type      string `yaml:"type"` // pg, op or basic
	TimeoutMs int    `yaml:"timeoutMs"`
}

type rootFlags struct {
	configFile string
	device     deviceConfig
	verbose    bool
}

var flags = &rootFlags{
	device: deviceConfig{
		Port:      s7.IsoTCPPort,
		Rack:      0,
		Slot:      2,
		Type:      "pg",
		TimeoutMs: 2000,
	},
}

func main() {
	root := &cobra.Command{
		Use:           "s7ctl",
		Short:         "Talk to S7 PLCs over ISO-on-TCP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "YAML device config file")
	pf.StringVar(&flags.device.Host, "host", "", "PLC host or IP (required unless in config)")
	pf.IntVar(&flags.device.Port, "port", s7.IsoTCPPort, "ISO-TCP port")
	pf.IntVar(&flags.device.Rack, "rack", 0, "CPU rack")
	pf.IntVar(&flags.device.Slot, "slot", 2, "CPU slot")
	pf.StringVar(&flags.device.Type, "type", "pg", "connection type: pg, op or basic")
	pf.IntVar(&flags.device.TimeoutMs, "timeout-ms", 2000, "receive timeout in milliseconds")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log frames to stderr")

	root.AddCommand(
		newReadCmd(),
		newWriteCmd(),
		newStatusCmd(),
		newStartCmd(),
		newStopCmd(),
		newClockCmd(),
		newPasswordCmd(),
		newInfoCmd(),
		newSzlCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "s7ctl:", err)
		os.Exit(1)
	}
}

// dial loads the config file if given, applies the flags and connects.
func dial(cmd *cobra.Command) (*s7.Client, error) {
	dev := flags.device
	if flags.configFile != "" {
		raw, err := os.ReadFile(flags.configFile)
		if err != nil {
			return nil, err
		}
		fileDev := flags.device
		if err := yaml.Unmarshal(raw, &fileDev); err != nil {
			return nil, fmt.Errorf("parse %s: %w", flags.configFile, err)
		}
		// explicit flags win over the file
		dev = fileDev
		if cmd.Flags().Changed("host") {
			dev.Host = flags.device.Host
		}
		if cmd.Flags().Changed("rack") {
			dev.Rack = flags.device.Rack
		}
		if cmd.Flags().Changed("slot") {
			dev.Slot = flags.device.Slot
		}
		if cmd.Flags().Changed("port") {
			dev.Port = flags.device.Port
		}
		if cmd.Flags().Changed("type") {
			dev.Type = flags.device.Type
		}
		if cmd.Flags().Changed("timeout-ms") {
			dev.TimeoutMs = flags.device.TimeoutMs
		}
	}
	if dev.Host == "" {
		return nil, fmt.Errorf("no host given, use --host or --config")
	}
	connType, err := connTypeFromString(dev.Type)
	if err != nil {
		return nil, err
	}
	opts := []s7.Option{
		s7.WithPort(dev.Port),
		s7.WithRackSlot(dev.Rack, dev.Slot),
		s7.WithConnectionType(connType),
		s7.WithRecvTimeout(time.Duration(dev.TimeoutMs) * time.Millisecond),
	}
	if flags.verbose {
		opts = append(opts, s7.WithEnableLogger())
	}
	client := s7.NewClient(dev.Host, opts...)
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", dev.Host, err)
	}
	return client, nil
}

func connTypeFromString(s string) (s7.ConnectionType, error) {
	switch s {
	case "pg", "":
		return s7.ConnTypePG, nil
	case "op":
		return s7.ConnTypeOP, nil
	case "basic":
		return s7.ConnTypeBasic, nil
	default:
		return 0, fmt.Errorf("unknown connection type %q", s)
	}
}

func areaFromString(s string) (s7.AreaType, error) {
	switch s {
	case "db":
		return s7.AreaDB, nil
	case "mk", "m":
		return s7.AreaMK, nil
	case "input", "i":
		return s7.AreaPE, nil
	case "output", "q":
		return s7.AreaPA, nil
	case "counter", "c":
		return s7.AreaCT, nil
	case "timer", "t":
		return s7.AreaTM, nil
	default:
		return 0, fmt.Errorf("unknown area %q", s)
	}
}

func typeFromString(s string) (s7.DataType, error) {
	switch s {
	case "bit":
		return s7.WLBit, nil
	case "byte", "":
		return s7.WLByte, nil
	case "char":
		return s7.WLChar, nil
	case "word":
		return s7.WLWord, nil
	case "int":
		return s7.WLInt, nil
	case "dword":
		return s7.WLDWord, nil
	case "dint":
		return s7.WLDInt, nil
	case "real":
		return s7.WLReal, nil
	case "counter":
		return s7.WLCounter, nil
	case "timer":
		return s7.WLTimer, nil
	default:
		return 0, fmt.Errorf("unknown data type %q", s)
	}
}
