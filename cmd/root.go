package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "genie",
	Short: "Floating overlay placement for terminal UIs",
	Long: `genie - A quadrant-based placement engine for floating overlays in terminal UIs.

Overlays anchor to marked regions of the host view, open on the opposite vertical half, and grow toward the screen center. The calc command exposes the placement math headlessly; the demo command runs an interactive playground.`,
	// Suggestions come from closestCommand instead.
	DisableSuggestions: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if name := firstNonFlagArg(os.Args[1:]); name != "" && !hasCommand(name) {
			if suggestion := closestCommand(name); suggestion != "" {
				fmt.Fprintf(os.Stderr, "Did you mean %q?\n", suggestion)
			}
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the genie version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func initBaseDir() {
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}

// firstNonFlagArg returns the first argument that does not look like a
// flag, the likely subcommand name in a failed invocation.
func firstNonFlagArg(args []string) string {
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			continue
		}
		return a
	}
	return ""
}

func hasCommand(name string) bool {
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

// closestCommand fuzzy-matches an unknown name against registered
// subcommands. Empty when nothing comes close.
func closestCommand(name string) string {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	matches := fuzzy.Find(strings.ToLower(name), names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
