package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/mosiko1234/heimdal/connectivity/internal/config"
	"github.com/mosiko1234/heimdal/connectivity/internal/connectivity"
	"github.com/mosiko1234/heimdal/connectivity/internal/errors"
	"github.com/mosiko1234/heimdal/connectivity/internal/logger"
	"github.com/mosiko1234/heimdal/connectivity/internal/platform"
	"github.com/mosiko1234/heimdal/connectivity/internal/platform/fixture"
	"github.com/mosiko1234/heimdal/connectivity/internal/platform/pcapdev"
	"github.com/mosiko1234/heimdal/connectivity/internal/platform/sysfs"
	"github.com/mosiko1234/heimdal/connectivity/internal/platform/wireless"
)

const (
	defaultConfigPath = "/etc/netstate/config.toml"
	version           = "1.0.0"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	// Set up panic recovery
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC: %v", r)
			log.Printf("Stack trace:\n%s", debug.Stack())
			os.Exit(exitFailure)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the command line and returns the exit code
func run(args []string, stdout io.Writer) int {
	flags := flag.NewFlagSet("netstate", flag.ContinueOnError)
	configPath := flags.String("config", defaultConfigPath, "Path to configuration file (.json or .toml)")
	providerKind := flags.String("provider", "", "Connectivity provider: sysfs, pcap, or fixture")
	forceLegacy := flags.Bool("legacy", false, "Use the legacy type/subtype query only")
	format := flags.String("format", "", "Output format: text or json")
	showVersion := flags.Bool("version", false, "Show version information")
	showHelp := flags.Bool("help", false, "Show help information")

	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	if *showVersion {
		fmt.Fprintf(stdout, "netstate v%s\n", version)
		return exitOK
	}

	if *showHelp {
		printHelp(stdout, flags)
		return exitOK
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return exitFailure
	}

	// Command-line flags override the file
	if *providerKind != "" {
		cfg.Provider.Kind = *providerKind
	}
	if *forceLegacy {
		cfg.Provider.ForceLegacy = true
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("Invalid configuration: %v", err)
		return exitUsage
	}

	if err := logger.Initialize(cfg.Logging.File, cfg.Logging.Level); err != nil {
		log.Printf("Failed to initialize logging: %v", err)
		return exitFailure
	}
	defer logger.Close()

	logger.Debug("netstate v%s, provider %s", version, cfg.Provider.Kind)

	provider, err := newProvider(cfg)
	if err != nil {
		var compErr *errors.ComponentError
		if errors.As(err, &compErr) {
			logger.Error("Provider %s unavailable (%s): %v", compErr.Component, compErr.Operation, compErr.Err)
		}
		return exitFailure
	}

	reporter := connectivity.NewReporter(provider, connectivity.Options{
		ForceLegacy: cfg.Provider.ForceLegacy,
	})

	ctx := context.Background()
	methods := flags.Args()
	if len(methods) == 0 {
		return printStatus(ctx, stdout, reporter, cfg.Output.Format)
	}
	return printMethods(ctx, stdout, reporter, cfg.Output.Format, methods)
}

// loadConfig reads the configuration file. A missing file at the default
// location falls back to the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return config.DefaultConfig(), nil
		}
	}
	return config.LoadConfig(path)
}

// newProvider builds the provider selected by the configuration. Component
// errors are left to the caller; other failures are logged here.
func newProvider(cfg *config.Config) (platform.ConnectivityProvider, error) {
	querier := wireless.NewQuerier(cfg.Wireless.IwPath, time.Duration(cfg.Wireless.TimeoutMS)*time.Millisecond)

	switch cfg.Provider.Kind {
	case config.ProviderSysfs:
		return sysfs.NewProvider(cfg.Sysfs.NetRoot, cfg.Sysfs.RouteFile, querier), nil
	case config.ProviderPcap:
		if !pcapdev.IsAvailable() {
			return nil, errors.NewComponentError("pcap", "enumerate devices", fmt.Errorf("libpcap is not available"))
		}
		return pcapdev.NewProvider(cfg.Pcap.PreferInterface, querier), nil
	case config.ProviderFixture:
		p, err := fixture.Load(cfg.Fixture.Path)
		if err != nil {
			return nil, errors.WrapWithLog(err, "failed to load fixture")
		}
		return p, nil
	default:
		return nil, errors.WrapWithLog(fmt.Errorf("unknown provider: %s", cfg.Provider.Kind), "failed to create provider")
	}
}

func printStatus(ctx context.Context, w io.Writer, reporter *connectivity.Reporter, format string) int {
	status := reporter.Status(ctx)

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			logger.Error("Failed to encode status: %v", err)
			return exitFailure
		}
		return exitOK
	}

	fmt.Fprintf(w, "type: %s\n", status.Type)
	if status.Subtype != nil {
		fmt.Fprintf(w, "subtype: %s (%s)\n", *status.Subtype, status.Subtype.Generation())
	}
	if status.WifiName != nil {
		fmt.Fprintf(w, "wifi name: %s\n", *status.WifiName)
	}
	if status.WifiBSSID != nil {
		fmt.Fprintf(w, "wifi bssid: %s\n", *status.WifiBSSID)
	}
	if status.WifiIP != nil {
		fmt.Fprintf(w, "wifi ip: %s\n", *status.WifiIP)
	}
	return exitOK
}

func printMethods(ctx context.Context, w io.Writer, reporter *connectivity.Reporter, format string, methods []string) int {
	values := make(map[string]*string, len(methods))
	code := exitOK

	for _, method := range methods {
		value, ok, err := reporter.Dispatch(ctx, method)
		if err != nil {
			if errors.Is(err, errors.ErrNotImplemented) {
				fmt.Fprintf(os.Stderr, "netstate: %v\n", err)
				code = exitUsage
				continue
			}
			logger.Error("Query %s failed: %v", method, err)
			return exitFailure
		}

		if !ok {
			values[method] = nil
		} else {
			v := value
			values[method] = &v
		}

		if format != "json" {
			if ok {
				fmt.Fprintf(w, "%s: %s\n", method, value)
			} else {
				fmt.Fprintf(w, "%s: null\n", method)
			}
		}
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(values); err != nil {
			logger.Error("Failed to encode results: %v", err)
			return exitFailure
		}
	}
	return code
}

// printHelp displays usage information
func printHelp(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprintf(w, "netstate v%s\n\n", version)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  netstate [options] [method...]\n\n")
	fmt.Fprintln(w, "Options:")
	flags.SetOutput(w)
	flags.PrintDefaults()
	fmt.Fprintln(w, "\nMethods:")
	for _, m := range connectivity.Methods {
		fmt.Fprintf(w, "  %s\n", m)
	}
	fmt.Fprintln(w, "\nDescription:")
	fmt.Fprintln(w, "  Reports the primary network type (wifi, mobile or none), the mobile")
	fmt.Fprintln(w, "  subtype and the wifi adapter's name, BSSID and IPv4 address.")
	fmt.Fprintln(w, "  Without methods the full status is printed.")
	fmt.Fprintln(w, "\nExamples:")
	fmt.Fprintln(w, "  netstate")
	fmt.Fprintln(w, "  netstate --format json check subtype")
	fmt.Fprintln(w, "  netstate --provider fixture --config /path/to/config.toml")
	fmt.Fprintln(w, "  netstate --version")
}
