package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func allowRetryCmd() *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "allow-retry <qid>",
		Short: "Flag a failed QID as eligible for reprocessing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			qid := args[0]

			rec, err := l.Store().GetFailed(ctx, qid)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("no failed record for %s", qid)
			}
			if err := l.Store().SetRetryAllowed(ctx, qid, !revoke); err != nil {
				return err
			}
			if revoke {
				fmt.Printf("%s retry revoked\n", qid)
			} else {
				fmt.Printf("%s retry allowed\n", qid)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "clear the retry flag instead of setting it")
	return cmd
}

// requeueCmd re-activates a failed job. The ledger's RecordFailure
// leaves pending rows in place, so usually the row is still there and
// requeue only has to confirm it; when a success in between cleared
// the queue, a fresh pending row is appended.
func requeueCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "requeue <qid>",
		Short: "Put a retry-allowed failed QID back in the pending queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			qid := args[0]
			store := l.Store()

			rec, err := store.GetFailed(ctx, qid)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("no failed record for %s", qid)
			}
			if !rec.RetryAllowed && !force {
				return fmt.Errorf("%s is not flagged for retry (use allow-retry first, or --force)", qid)
			}

			pending, err := store.GetPending(ctx, qid)
			if err != nil {
				return err
			}
			if pending != nil {
				fmt.Printf("%s already pending (id %d)\n", qid, pending.ID)
				return nil
			}
			job, err := store.Enqueue(ctx, qid)
			if err != nil {
				return err
			}
			fmt.Printf("%s requeued (id %d)\n", qid, job.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "requeue even without the retry flag")
	return cmd
}
