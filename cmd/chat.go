package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/fixdesk/fixdesk/internal/config"
	"github.com/fixdesk/fixdesk/internal/intent"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with FixDesk from the terminal",
	Long:  `Starts a local interactive chat session against the configured database, without running the HTTP server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		app, err := buildApplication(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		fmt.Println("FixDesk assistant. Type your message, or 'exit' to leave.")

		prompt := promptui.Prompt{Label: "you"}
		sessionID := ""
		for {
			input, err := prompt.Run()
			if err != nil {
				if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
					fmt.Println("Goodbye!")
					return nil
				}
				return fmt.Errorf("reading input: %w", err)
			}
			if strings.TrimSpace(input) == "" {
				continue
			}

			reply := app.engine.Respond(cmd.Context(), sessionID, input)
			sessionID = reply.SessionID
			fmt.Printf("fixdesk> %s\n", reply.Response)

			if reply.Intent == intent.IntentClosing {
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
