package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studyhub/internal/bootstrap"
)

func newNotifyCmd(opts *rootOptions) *cobra.Command {
	notify := &cobra.Command{Use: "notify", Short: "Local notification inbox"}

	notify.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				items := app.NotificationCLI.List(ctx)
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notifications")
					return nil
				}
				for _, n := range items {
					mark := " "
					if !n.Read {
						mark = "*"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\t%s\n", mark, n.ID, n.Type, n.CreatedAt.Local().Format(time.DateTime), n.Message)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", app.NotificationCLI.Unread(ctx))
				return nil
			})
		},
	})

	var kind string
	add := &cobra.Command{
		Use:   "add <message>",
		Short: "Add a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				n, err := app.NotificationCLI.Add(ctx, args[0], kind)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", n.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&kind, "type", "system", "reading|listening|writing|speaking|test|system")

	notify.AddCommand(add, &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				return app.NotificationCLI.MarkRead(ctx, args[0])
			})
		},
	}, &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification read",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				return app.NotificationCLI.MarkAllRead(ctx)
			})
		},
	}, &cobra.Command{
		Use:   "clear",
		Short: "Remove all notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				return app.NotificationCLI.Clear(ctx)
			})
		},
	})

	var push, email bool
	settings := &cobra.Command{
		Use:   "settings",
		Short: "Show or change notification preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				current := app.NotificationCLI.Settings(ctx)
				changed := false
				if cmd.Flags().Changed("push") {
					current.PushNotificationsEnabled = push
					changed = true
				}
				if cmd.Flags().Changed("email") {
					current.EmailUpdatesEnabled = email
					changed = true
				}
				if changed {
					if err := app.NotificationCLI.UpdateSettings(ctx, current.PushNotificationsEnabled, current.EmailUpdatesEnabled); err != nil {
						return err
					}
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "push notifications: %t\nemail updates: %t\n", current.PushNotificationsEnabled, current.EmailUpdatesEnabled)
				return nil
			})
		},
	}
	settings.Flags().BoolVar(&push, "push", false, "enable push notifications")
	settings.Flags().BoolVar(&email, "email", false, "enable email updates")
	notify.AddCommand(settings)
	return notify
}
