package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/gamehub/internal/model"
)

func newGamesCmd(rt *invocation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Catalog commands",
	}

	cmd.AddCommand(newGamesListCmd(rt))
	cmd.AddCommand(newGamesPlayCmd(rt))

	return cmd
}

func newGamesListCmd(rt *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the game catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := rt.store()
			store.Start(cmd.Context())

			rt.output(cmd).Print(store.Snapshot())
			return nil
		},
	}
}

// printOpener leaves the URL for the caller to print
type printOpener struct{}

func (printOpener) Open(context.Context, string) error { return nil }

func newGamesPlayCmd(rt *invocation) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "play <id>",
		Short: "Start a game session and open the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := rt.store()
			if printOnly {
				store = rt.stores.New(rt.jar, printOpener{})
			}
			store.Start(cmd.Context())

			launch, err := store.Play(cmd.Context(), model.GameID(args[0]))
			var unresolved *model.UnresolvedRedirectError
			switch {
			case errors.Is(err, model.ErrAuthRequired):
				return errors.New(`sign in first with "gamehub auth login"`)
			case errors.As(err, &unresolved):
				return fmt.Errorf("%s is not available to play yet", unresolved.Game.Title)
			case err != nil:
				return fmt.Errorf("could not start %s: %w", args[0], err)
			}

			rt.output(cmd).Print(newLaunchResult(launch, !printOnly))
			return nil
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the game URL instead of opening a browser")

	return cmd
}
