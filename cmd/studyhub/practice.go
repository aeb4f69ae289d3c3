package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"studyhub/internal/bootstrap"
	scoredomain "studyhub/internal/modules/score/domain"
	"studyhub/internal/platform/events"
)

func newListenCmd(opts *rootOptions) *cobra.Command {
	listen := &cobra.Command{Use: "listen", Short: "Listening exercises"}

	listen.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List exercises",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.ListeningCLI.List(ctx)
				if err != nil {
					return err
				}
				for _, ex := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d sections\t%d questions\n", ex.ID, ex.Title, len(ex.Sections), len(ex.Questions))
				}
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "show <exercise-id>",
		Short: "Show sections and questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				ex, err := app.ListeningCLI.Get(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s (%s)\n", ex.Title, ex.Level)
				for _, s := range ex.Sections {
					_, _ = fmt.Fprintf(out, "  [%s] %s: %s\n", s.ID, s.Title, s.Instructions)
				}
				for _, q := range ex.Questions {
					_, _ = fmt.Fprintf(out, "  %s\t%s\n", q.ID, q.Prompt)
				}
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "submit <exercise-id> <question=answer>...",
		Short: "Grade answers and record the completion",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers := make(map[string]string, len(args)-1)
			for _, arg := range args[1:] {
				q, a, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("answer %q must look like question=answer", arg)
				}
				answers[q] = a
			}
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				res, err := app.ListeningCLI.Submit(ctx, args[0], answers)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d/%d correct, band %.1f\n", res.Correct, res.Total, res.Band)
				return nil
			})
		},
	})
	return listen
}

func newSpeakCmd(opts *rootOptions) *cobra.Command {
	var discard bool
	record := &cobra.Command{
		Use:   "record",
		Short: "Record an answer until Enter is pressed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				if _, err := app.SpeakingCLI.Record(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "recording… press Enter to stop")
				if _, err := readLine(cmd.InOrStdin()); err != nil {
					app.Logger.Debug("stdin closed while recording", "error", err)
				}
				out, err := app.SpeakingCLI.Stop(ctx)
				if err != nil {
					return err
				}
				if discard {
					if _, err := app.SpeakingCLI.Discard(); err != nil {
						return err
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "recording discarded")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s, %d bytes)\n", out.AssetPath, out.MIMEType, out.Size)
				return nil
			})
		},
	}
	record.Flags().BoolVar(&discard, "discard", false, "delete the recording after stopping")

	speak := &cobra.Command{Use: "speak", Short: "Speaking practice recorder"}
	speak.AddCommand(record)
	return speak
}

func newTimerCmd(opts *rootOptions) *cobra.Command {
	var minutes int
	run := &cobra.Command{
		Use:   "run",
		Short: "Run an exam countdown in the foreground",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				if cmd.Flags().Changed("minutes") {
					if _, err := app.TimerCLI.SetMinutes(minutes); err != nil {
						return err
					}
				}
				changed := make(chan struct{}, 1)
				unsubscribe := app.Events.Subscribe(events.TimerChanged, func() {
					select {
					case changed <- struct{}{}:
					default:
					}
				})
				defer unsubscribe()

				out, err := app.TimerCLI.Start()
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for {
					_, _ = fmt.Fprintf(w, "\r%s ", out.Display)
					if out.State == "finished" {
						_, _ = fmt.Fprintln(w, "\ntime is up")
						return nil
					}
					select {
					case <-ctx.Done():
						stopped := app.TimerCLI.Stop()
						_, _ = fmt.Fprintf(w, "\nstopped at %s\n", stopped.Display)
						return nil
					case <-changed:
						out = app.TimerCLI.Status()
					}
				}
			})
		},
	}
	run.Flags().IntVar(&minutes, "minutes", 0, "countdown length (default from config)")

	timer := &cobra.Command{Use: "timer", Short: "Exam countdown"}
	timer.AddCommand(run)
	return timer
}

func newBandCmd() *cobra.Command {
	band := &cobra.Command{Use: "band", Short: "Band score helpers"}

	var l, r, w, s float64
	overall := &cobra.Command{
		Use:   "overall",
		Short: "Overall band from the four skill bands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := scoredomain.OverallBand(l, r, w, s)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.1f\n", v)
			return nil
		},
	}
	overall.Flags().Float64Var(&l, "listening", 0, "listening band")
	overall.Flags().Float64Var(&r, "reading", 0, "reading band")
	overall.Flags().Float64Var(&w, "writing", 0, "writing band")
	overall.Flags().Float64Var(&s, "speaking", 0, "speaking band")

	var maxCorrect int
	convert := &cobra.Command{
		Use:   "convert <correct>",
		Short: "Band for a number of correct answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var correct int
			if _, err := fmt.Sscanf(args[0], "%d", &correct); err != nil {
				return fmt.Errorf("correct answers must be a number: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.1f\n", scoredomain.BandFromCorrect(correct, maxCorrect))
			return nil
		},
	}
	convert.Flags().IntVar(&maxCorrect, "max", 40, "number of questions")

	band.AddCommand(overall, convert)
	return band
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	watch := &cobra.Command{Use: "watch", Short: "New-content notices for configured feeds"}

	watch.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Check every feed once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				res := app.CatalogCLI.Check(ctx)
				for _, r := range res.Results {
					switch {
					case r.Err != "":
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\terror: %s\n", r.Key, r.Err)
					case r.Notified:
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d (+%d new)\n", r.Key, r.Count, r.Delta)
					default:
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", r.Key, r.Count)
					}
				}
				return nil
			})
		},
	})

	var interval time.Duration
	run := &cobra.Command{
		Use:   "run",
		Short: "Check feeds periodically until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				every := interval
				if every <= 0 {
					every = app.Config.WatchInterval
				}
				app.CatalogCLI.Check(ctx)
				if err := app.CatalogCLI.Watch(every); err != nil {
					return err
				}
				app.Logger.Info("watching content feeds", "interval", every.String())
				<-ctx.Done()
				app.CatalogCLI.Stop()
				return nil
			})
		},
	}
	run.Flags().DurationVar(&interval, "interval", 0, "check interval (default from config)")
	watch.AddCommand(run)
	return watch
}
