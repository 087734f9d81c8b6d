package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lessonloop/internal/app"
	"github.com/abhisek/lessonloop/internal/logger"
)

var playCmd = &cobra.Command{
	Use:   "play [username]",
	Short: "Learn in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var username string
		if len(args) == 1 {
			username = args[0]
		}
		return runPlay(cmd, username)
	},
}

func runPlay(cmd *cobra.Command, username string) error {
	ctx := cmd.Context()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	// The terminal belongs to the UI while it runs.
	svc, release, err := newService(ctx, st, logger.Nop())
	if err != nil {
		return err
	}
	defer release()

	return app.Run(ctx, svc, username)
}
