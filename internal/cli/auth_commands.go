package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/view"
)

// promptFunc asks for the fields that were not given as flags. Tests
// replace it.
var promptFunc = func(fields ...huh.Field) error {
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func (r *RootCommand) newLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the identity locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var fields []huh.Field
			if email == "" {
				fields = append(fields, huh.NewInput().Title("Email").Value(&email))
			}
			if password == "" {
				fields = append(fields, huh.NewInput().Title("Password").
					EchoMode(huh.EchoModePassword).Value(&password))
			}
			if len(fields) > 0 {
				if err := promptFunc(fields...); err != nil {
					return err
				}
			}

			sess, err := r.env.Manager.Login(ctx, email, password)
			if err != nil {
				return handleError("sign in", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", sess.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func (r *RootCommand) newRegisterCommand() *cobra.Command {
	var in session.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var fields []huh.Field
			if in.Name == "" {
				fields = append(fields, huh.NewInput().Title("Name").Value(&in.Name))
			}
			if in.Email == "" {
				fields = append(fields, huh.NewInput().Title("Email").Value(&in.Email))
			}
			if in.Password == "" {
				fields = append(fields,
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&in.Password),
					huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&in.Confirm),
				)
			} else if !cmd.Flags().Changed("confirm") {
				in.Confirm = in.Password
			}
			if len(fields) > 0 {
				if err := promptFunc(fields...); err != nil {
					return err
				}
			}

			next, err := r.env.Manager.Register(ctx, in)
			if err != nil {
				return handleError("register", err)
			}

			out := cmd.OutOrStdout()
			if next == session.RouteLogin {
				fmt.Fprintln(out, "Account created. Please sign in.")
				return nil
			}
			fmt.Fprintf(out, "Account created. Signed in as %s\n", r.env.Manager.Current(ctx).UserID)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.Name, "name", "", "display name")
	flags.StringVar(&in.Email, "email", "", "account email")
	flags.StringVar(&in.Password, "password", "", "account password (prompted when omitted)")
	flags.StringVar(&in.Confirm, "confirm", "", "password confirmation (defaults to --password)")
	return cmd
}

func (r *RootCommand) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.env.Manager.Logout(cmd.Context()); err != nil {
				return handleError("sign out", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func (r *RootCommand) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := r.requireSession(ctx)
			if err != nil {
				return err
			}

			d := view.NewDashboard(r.env.deps())
			if err := loadView(ctx, d); err != nil {
				return handleError("load profile", err)
			}

			out := cmd.OutOrStdout()
			p := d.Profile()
			fmt.Fprintf(out, "User:  %s\n", d.DisplayName())
			if p != nil && p.Email != "" {
				fmt.Fprintf(out, "Email: %s\n", p.Email)
			}
			fmt.Fprintf(out, "ID:    %s\n", sess.UserID)
			fmt.Fprintf(out, "API:   %s\n", r.env.Client.BaseURL())
			if r.env.Config != nil && r.env.Config.Identity.Backend != model.IdentityBackendLocal {
				fmt.Fprintf(out, "Store: %s\n", r.env.Config.Identity.Backend)
			}
			return nil
		},
	}
}
