package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/authflow"
)

func newAuthCmd(rt *invocation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account commands",
	}

	cmd.AddCommand(newAuthLoginCmd(rt))
	cmd.AddCommand(newAuthSignupCmd(rt))
	cmd.AddCommand(newAuthLogoutCmd(rt))
	cmd.AddCommand(newAuthMeCmd(rt))

	return cmd
}

func submitAuth(cmd *cobra.Command, rt *invocation, mode model.AuthMode, form authflow.Form) error {
	store := rt.store()
	ctrl := store.NewAuthController(mode)
	ctrl.SetForm(form)

	user, err := ctrl.Submit(cmd.Context())
	if err != nil {
		return errors.New(authflow.Message(err))
	}

	rt.output(cmd).Print(user)
	return nil
}

func newAuthLoginCmd(rt *invocation) *cobra.Command {
	var email, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitAuth(cmd, rt, model.AuthModeLogin, authflow.Form{
				Email:    email,
				Password: pass,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthSignupCmd(rt *invocation) *cobra.Command {
	var user, email, pass, confirm string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("confirm") {
				confirm = pass
			}
			return submitAuth(cmd, rt, model.AuthModeSignup, authflow.Form{
				Username:        user,
				Email:           email,
				Password:        pass,
				ConfirmPassword: confirm,
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Password confirmation (defaults to --pass)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthLogoutCmd(rt *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt.store().Logout(cmd.Context())
			if err := rt.jar.Clear(); err != nil {
				return fmt.Errorf("failed to remove cookies: %w", err)
			}

			rt.output(cmd).PrintMessage("Signed out")
			return nil
		},
	}
}

func newAuthMeCmd(rt *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := rt.store()
			store.Start(cmd.Context())

			rt.output(cmd).Print(store.User())
			return nil
		},
	}
}
