package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/allisson/hivelvet/internal/auth/usecase"
)

type cleanExpiredOutput struct {
	Count  int64 `json:"count" yaml:"count"`
	Days   int   `json:"days" yaml:"days"`
	DryRun bool  `json:"dry_run" yaml:"dry_run"`
}

// RunCleanExpiredTokens deletes tokens that expired or were revoked more than
// days ago. With dryRun it only reports how many would be deleted.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredTokens(
	ctx context.Context,
	useCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning expired tokens", slog.Int("days", days), slog.Bool("dry_run", dryRun))

	count, err := useCase.CleanExpired(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to clean expired tokens: %w", err)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	output := cleanExpiredOutput{Count: count, Days: days, DryRun: dryRun}
	return writeOutput(writer, format, output, func(w io.Writer) {
		if dryRun {
			_, _ = fmt.Fprintf(w, "Dry-run mode: Would delete %d expired token(s) older than %d day(s)\n", count, days)
			return
		}
		_, _ = fmt.Fprintf(w, "Successfully deleted %d expired token(s) older than %d day(s)\n", count, days)
	})
}
