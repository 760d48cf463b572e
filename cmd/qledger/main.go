// Command qledger is a small CLI over the job-outcome ledger. It is a
// caller of the core, not a scheduler: it records outcomes, inspects
// the record sets, and drives manual requeues.
package main

import (
	"errors"
	"log"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wikibots/jobledger"
	"github.com/wikibots/jobledger/pkg/config"
	"github.com/wikibots/jobledger/pkg/core"
)

var (
	cfg    *config.Config
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "qledger",
	Short: "Record and inspect per-QID job outcomes",
}

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatal(err)
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DatabasePath, "path to the SQLite ledger database")

	rootCmd.AddCommand(doneCmd())
	rootCmd.AddCommand(errorCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(todoCmd())
	rootCmd.AddCommand(enqueueCmd())
	rootCmd.AddCommand(allowRetryCmd())
	rootCmd.AddCommand(requeueCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// openLedger opens the configured database and returns a migrated ledger.
func openLedger() (*jobledger.Ledger, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	store := jobledger.NewGormStore(db)
	if err := store.Migrate(rootCmd.Context()); err != nil {
		return nil, err
	}
	return jobledger.New(store), nil
}

// runWithRetry retries fn with exponential backoff while the failure
// is a transient storage outage. Constraint violations and invalid
// arguments surface immediately.
func runWithRetry(fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = time.Duration(cfg.RetryMaxSeconds) * time.Second
	return backoff.Retry(func() error {
		err := fn()
		if err != nil && !errors.Is(err, core.ErrStorageUnavailable) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}
