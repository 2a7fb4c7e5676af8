package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fixdesk",
	Short: "Conversational complaint intake and tracking",
	Long: `FixDesk is a conversational complaint desk: it chats with users to
register complaints, answers common questions from a built-in knowledge
base, and tracks each complaint through its lifecycle. It runs as an
HTTP server with a REST and WebSocket API, or as a local chat REPL.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "fixdesk.yml", "config file path")
}
