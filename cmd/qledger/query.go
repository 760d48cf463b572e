package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wikibots/jobledger"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <qid>",
		Short: "Show which record set a QID occupies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			qid := args[0]

			status, err := l.Status(ctx, qid)
			if err != nil {
				return err
			}
			switch status {
			case jobledger.StatusCompleted:
				rec, err := l.Store().GetCompleted(ctx, qid)
				if err != nil {
					return err
				}
				fmt.Printf("%s completed at %s: %s\n", qid, rec.CompletedAt.Format("2006-01-02 15:04:05"), rec.Message)
			case jobledger.StatusFailed:
				rec, err := l.Store().GetFailed(ctx, qid)
				if err != nil {
					return err
				}
				retry := ""
				if rec.RetryAllowed {
					retry = " (retry allowed)"
				}
				fmt.Printf("%s failed at %s%s: %s\n", qid, rec.FailedAt.Format("2006-01-02 15:04:05"), retry, rec.Error)
			case jobledger.StatusPending:
				fmt.Printf("%s pending\n", qid)
			default:
				fmt.Printf("%s unknown\n", qid)
			}
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-set record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger()
			if err != nil {
				return err
			}
			stats, err := l.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("pending:   %d\n", stats.Pending)
			fmt.Printf("completed: %d\n", stats.Completed)
			fmt.Printf("failed:    %d\n", stats.Failed)
			return nil
		},
	}
}

func todoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "todo",
		Short: "Print the next pending QID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger()
			if err != nil {
				return err
			}
			job, err := l.Store().NextPending(cmd.Context())
			if err != nil {
				return err
			}
			if job == nil {
				fmt.Println("nothing to do")
				return nil
			}
			fmt.Println(job.QID)
			return nil
		},
	}
}
