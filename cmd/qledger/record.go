package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wikibots/jobledger"
)

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <qid> <message...>",
		Short: "Record a successful outcome for a QID",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger()
			if err != nil {
				return err
			}
			qid := args[0]
			message := strings.Join(args[1:], " ")
			if err := runWithRetry(func() error {
				return l.RecordSuccess(cmd.Context(), qid, message)
			}); err != nil {
				return err
			}
			fmt.Printf("%s completed\n", qid)
			return nil
		},
	}
}

func errorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "error <qid> <message...>",
		Short: "Record a failed outcome for a QID",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger()
			if err != nil {
				return err
			}
			qid := args[0]
			message := strings.Join(args[1:], " ")
			if err := runWithRetry(func() error {
				return l.RecordFailure(cmd.Context(), qid, message)
			}); err != nil {
				return err
			}
			fmt.Printf("%s failed\n", qid)
			return nil
		},
	}
}

func enqueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enqueue <qid>...",
		Short: "Append QIDs to the pending queue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger()
			if err != nil {
				return err
			}
			for _, qid := range args {
				if err := jobledger.ValidateQID(qid); err != nil {
					return err
				}
				job, err := l.Store().Enqueue(cmd.Context(), qid)
				if err != nil {
					return err
				}
				fmt.Printf("%s enqueued (id %d)\n", job.QID, job.ID)
			}
			return nil
		},
	}
}
