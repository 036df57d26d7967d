package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/honorguild/honorbot/honorbot/database/repositories"
	"github.com/honorguild/honorbot/honorbot/logger"
	"github.com/honorguild/honorbot/internal/domain/honor"
	"github.com/spf13/cobra"
)

// ErrLedgerDrift makes verify exit non-zero when any balance disagrees with
// its log.
var ErrLedgerDrift = errors.New("ledger drift detected")

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Replay every account's ledger and report balances that drifted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		svc, err := newHonorService(cfg, repositories.NewHonorRepository(db.BunDB()))
		if err != nil {
			return err
		}

		drifts, err := svc.Verify(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to verify ledger: %w", err)
		}
		return reportDrift(cmd.OutOrStdout(), drifts)
	},
}

func reportDrift(w io.Writer, drifts []honor.Drift) error {
	if len(drifts) == 0 {
		logger.LogSystem("Ledger is consistent")
		return nil
	}

	fmt.Fprintf(w, "%-20s %12s %12s %8s\n", "USER", "STORED", "REPLAYED", "ENTRIES")
	for _, d := range drifts {
		fmt.Fprintf(w, "%-20s %12d %12d %8d\n", d.UserID, d.Stored, d.Replayed, d.Entries)
	}
	slog.Warn("Ledger drift detected", slog.String("type", "db"), slog.Int("accounts", len(drifts)))
	return fmt.Errorf("%w in %d account(s)", ErrLedgerDrift, len(drifts))
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
