package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Default resolution ladder written into converted .mcool files.
var defaultResolutions = []int{1000, 5000, 10000, 25000, 50000, 100000}

func runConvert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)

	var (
		hicFile     string
		outputDir   string
		resolutions string
	)

	fs.StringVar(&hicFile, "hic", "", "Input .hic file (required)")
	fs.StringVar(&outputDir, "output", "output", "Output directory")
	fs.StringVar(&resolutions, "resolutions", "", "Comma-separated resolutions to extract (default: 1000,5000,10000,25000,50000,100000)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Convert a .hic file to .mcool using the external hic2cool tool.

Usage:
  v4c convert --hic input.hic [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  v4c convert --hic sample.hic
  v4c convert --hic sample.hic --output data --resolutions 5000,10000
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if hicFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --hic is required\n\n")
		fs.Usage()
		return ExitUsage
	}

	resList := defaultResolutions
	if resolutions != "" {
		parsed, err := parseIntList(resolutions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --resolutions value: %v\n", err)
			return ExitUsage
		}
		resList = parsed
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create directory %s: %v\n", outputDir, err)
		return ExitError
	}

	base := filepath.Base(hicFile)
	mcoolFile := filepath.Join(outputDir, strings.TrimSuffix(base, ".hic")+".mcool")

	cmdArgs := []string{"convert", "--input", hicFile, "--output", mcoolFile, "--resolutions"}
	for _, res := range resList {
		cmdArgs = append(cmdArgs, strconv.Itoa(res))
	}

	cmd := exec.Command("hic2cool", cmdArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fmt.Printf("Converting %s -> %s\n", hicFile, mcoolFile)
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: hic2cool failed: %v\n", err)
		if _, lookErr := exec.LookPath("hic2cool"); lookErr != nil {
			fmt.Fprintf(os.Stderr, "Hint: install hic2cool and make sure it is on PATH\n")
		}
		return ExitError
	}

	fmt.Printf("Conversion complete: %s\n", mcoolFile)
	return ExitSuccess
}
