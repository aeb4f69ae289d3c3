package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studyhub/internal/bootstrap"
	sessiondto "studyhub/internal/modules/session/dto"
)

func newAuthCmd(opts *rootOptions) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Sign in, sign up and manage the session"}

	var email, password string
	signin := &cobra.Command{
		Use:   "signin --email <email>",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				p, err := readSecret(cmd, "password: ")
				if err != nil {
					return err
				}
				password = p
			}
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.SignIn(ctx, email, password)
				if err != nil {
					return err
				}
				printSession(cmd, out)
				return nil
			})
		},
	}
	signin.Flags().StringVar(&email, "email", "", "account email")
	signin.Flags().StringVar(&password, "password", "", "password (prompted when empty)")

	var firstName string
	signup := &cobra.Command{
		Use:   "signup --name <first name> --email <email>",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				p, err := readSecret(cmd, "password: ")
				if err != nil {
					return err
				}
				password = p
			}
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.SignUp(ctx, firstName, email, password)
				if err != nil {
					return err
				}
				printSession(cmd, out)
				if !out.EmailVerified {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "check your inbox to verify your email")
				}
				return nil
			})
		},
	}
	signup.Flags().StringVar(&firstName, "name", "", "first name")
	signup.Flags().StringVar(&email, "email", "", "account email")
	signup.Flags().StringVar(&password, "password", "", "password (prompted when empty)")

	guest := &cobra.Command{
		Use:   "guest",
		Short: "Continue without an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.SignInAnonymous(ctx)
				if err != nil {
					return err
				}
				printSession(cmd, out)
				return nil
			})
		},
	}

	var idToken, displayName, photoURL string
	google := &cobra.Command{
		Use:   "google --id-token <token>",
		Short: "Sign in with a Google identity token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.SignInGoogle(ctx, idToken, displayName, photoURL)
				if err != nil {
					return err
				}
				printSession(cmd, out)
				return nil
			})
		},
	}
	google.Flags().StringVar(&idToken, "id-token", "", "identity token from the Google sign-in flow")
	google.Flags().StringVar(&displayName, "name", "", "display name")
	google.Flags().StringVar(&photoURL, "photo", "", "profile photo URL")

	verify := &cobra.Command{
		Use:   "verify <token>",
		Short: "Verify an email address and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.VerifyEmail(ctx, args[0])
				if err != nil {
					return err
				}
				printSession(cmd, out)
				return nil
			})
		},
	}

	resend := &cobra.Command{
		Use:   "resend-verification --email <email>",
		Short: "Send the verification email again",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.ResendVerification(ctx, email)
				if err != nil {
					return err
				}
				if out.Dev {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "verification link written to the server log (dev mode)")
					return nil
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "verification email sent")
				return nil
			})
		},
	}
	resend.Flags().StringVar(&email, "email", "", "account email")

	forgot := &cobra.Command{
		Use:   "forgot-password --email <email>",
		Short: "Request a password reset link",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.ForgotPassword(ctx, email); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "if the account exists, a reset link is on its way")
				return nil
			})
		},
	}
	forgot.Flags().StringVar(&email, "email", "", "account email")

	reset := &cobra.Command{
		Use:   "reset-password <token>",
		Short: "Set a new password with a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := readSecret(cmd, "new password: ")
				if err != nil {
					return err
				}
				password = p
			}
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.ResetPassword(ctx, args[0], password); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "password updated, sign in again")
				return nil
			})
		},
	}
	reset.Flags().StringVar(&password, "password", "", "new password (prompted when empty)")

	signout := &cobra.Command{
		Use:   "signout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.SignOut(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			})
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Current(ctx)
				if err != nil {
					return err
				}
				printSession(cmd, out)
				return nil
			})
		},
	}

	auth.AddCommand(signin, signup, guest, google, verify, resend, forgot, reset, signout, whoami)
	return auth
}

func printSession(cmd *cobra.Command, s sessiondto.SessionOutput) {
	var flags []string
	if s.IsPremium {
		flags = append(flags, "premium")
	}
	if s.EmailVerified {
		flags = append(flags, "verified")
	}
	name := s.FirstName
	if name == "" {
		name = "guest"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s <%s> id=%d %s\n", name, s.Email, s.UserID, strings.Join(flags, ","))
}
