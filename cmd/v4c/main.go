// Package main provides the v4c command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	initConfig()

	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("v4c version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "extract":
		return runExtract(args[1:])
	case "convert":
		return runConvert(args[1:])
	case "resolutions":
		return runResolutions(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

// initConfig loads ~/.v4c.yaml and sets defaults. A missing config file is
// not an error.
func initConfig() {
	viper.SetConfigName(".v4c")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}

	viper.SetDefault("promoters.dir", "genome")
	viper.SetDefault("extract.flank", 50000)
	viper.SetDefault("extract.norm", "minmax")

	_ = viper.ReadInConfig()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `v4c - Virtual 4C contact-frequency extraction

Usage:
  v4c [options] <command> [arguments]

Commands:
  extract      Extract Virtual 4C profiles from .mcool contact stores
  convert      Convert a .hic file to .mcool via hic2cool
  resolutions  List the resolution layers of a contact store
  config       Manage v4c configuration
  help         Show this help message

Global Options:
  --version    Show version information

Examples:
  # Extract profiles around a coordinate midpoint
  v4c extract --mcool sample.mcool --res 5000 --coords chr17:45878152-46000000

  # Extract promoter profiles for genes
  v4c extract --mcool sample.mcool --res 5000 --genes MAPT,CRHR1 --genome hg38

  # Extract regions from a BED file, self-normalized
  v4c extract --mcool sample.mcool --res 10000 --bed regions.bed --norm self

For more information on a command, use:
  v4c <command> --help
`)
}
