// README: Terminal client; runs conversation turns against an in-process service.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts chatOptions
	root := &cobra.Command{
		Use:          "smartdrive-chat",
		Short:        "Chat with the SmartDrive car search assistant in the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.Flags().StringVar(&opts.Provider, "provider", "", "model provider: gemini, ollama or offline (default from SMARTDRIVE_MODEL_PROVIDER)")
	root.Flags().StringVar(&opts.CarsFile, "cars", "", "listings JSON file (default from SMARTDRIVE_CARS_FILE)")
	root.Flags().StringVar(&opts.SessionID, "session", "", "session id (random when empty)")
	root.Flags().IntVar(&opts.Limit, "limit", 5, "number of cars to print once every criterion is known")

	root.AddCommand(newSeedCmd())
	return root
}
