package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the ekbridge application
var rootCmd = &cobra.Command{
	Use:   "ekbridge",
	Short: "MCP server for macOS Reminders and Calendar",
	Long: `ekbridge exposes macOS Reminders and Calendar to AI assistants over the
Model Context Protocol (MCP).

All EventKit access happens through the bundled eventkit-cli helper binary,
so the macOS privacy dialogs are triggered and handled on this machine.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "ekbridge version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
