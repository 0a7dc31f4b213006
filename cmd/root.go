package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "focusboard",
	Short: "focusboard – personal productivity board backend",
	Long: `focusboard serves the task, time-tracking and notification API
for the three-column workflow board. Records live in Firestore, or in
memory when no credentials are configured.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(tokenCmd)
}
