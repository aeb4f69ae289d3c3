package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"studyhub/internal/bootstrap"
	progressdto "studyhub/internal/modules/progress/dto"
)

func newProgressCmd(opts *rootOptions) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Completion counts and statistics"}

	progress.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Completed exercises per category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				s := app.ProgressCLI.Summary(ctx)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reading\t%d\nlistening\t%d\nwriting\t%d\nspeaking\t%d\n", s.Reading, s.Listening, s.Writing, s.Speaking)
				if s.HasStreak {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak\t%d\n", s.Streak)
				}
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "stats",
		Short: "Dashboard statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				s := app.ProgressCLI.Stats(ctx)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exercises completed\t%d\nhours practiced\t%.1f\nvocabulary words\t%d\ntests completed\t%d\nday streak\t%d\n",
					s.ExercisesCompleted, s.HoursPracticed, s.VocabularyWords, s.TestsCompleted, s.DayStreak)
				return nil
			})
		},
	}, &cobra.Command{
		Use:   "complete <READING|LISTENING|WRITING|SPEAKING>",
		Short: "Report one completed exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				return app.ProgressCLI.Complete(ctx, args[0])
			})
		},
	})
	return progress
}

func newGoalsCmd(opts *rootOptions) *cobra.Command {
	goals := &cobra.Command{Use: "goals", Short: "Today's study goal"}

	goals.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show today's goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				g, err := app.ProgressCLI.TodayGoal(ctx)
				if err != nil {
					return err
				}
				printGoal(cmd, g)
				return nil
			})
		},
	})

	var in progressdto.GoalInput
	set := &cobra.Command{
		Use:   "set",
		Short: "Save today's goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				g, err := app.ProgressCLI.SetTodayGoal(ctx, in)
				if err != nil {
					return err
				}
				printGoal(cmd, g)
				return nil
			})
		},
	}
	set.Flags().IntVar(&in.ReadingMinutesTarget, "reading", 0, "reading minutes")
	set.Flags().IntVar(&in.ListeningMinutesTarget, "listening", 0, "listening minutes")
	set.Flags().IntVar(&in.WritingTasksTarget, "writing", 0, "writing tasks")
	set.Flags().IntVar(&in.VocabularyTarget, "vocabulary", 0, "vocabulary words")
	set.Flags().BoolVar(&in.Completed, "completed", false, "mark the goal completed")
	goals.AddCommand(set)
	return goals
}

func printGoal(cmd *cobra.Command, g progressdto.GoalOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "date\t%s\nreading\t%d min\nlistening\t%d min\nwriting\t%d tasks\nvocabulary\t%d words\ncompleted\t%t\n",
		g.Date, g.ReadingMinutesTarget, g.ListeningMinutesTarget, g.WritingTasksTarget, g.VocabularyTarget, g.Completed)
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var dir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write notifications and progress to spreadsheets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stamp := time.Now().Format("20060102-150405")
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				n, err := app.NotificationCLI.Export(ctx, filepath.Join(dir, "notifications-"+stamp+".xlsx"))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d notifications -> %s\n", n.Count, n.Path)
				p, err := app.ProgressCLI.Export(ctx, filepath.Join(dir, "progress-"+stamp+".xlsx"))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "progress -> %s\n", p.Path)
				return nil
			})
		},
	}
	export.Flags().StringVar(&dir, "dir", ".", "output directory")
	return export
}
