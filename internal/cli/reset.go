package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/terraincognita07/habitboard/internal/config"
	"github.com/terraincognita07/habitboard/internal/services"
)

// RunResetWeekCommand clears every person's weekly progress in the configured
// store and reports how many were reset.
func RunResetWeekCommand(ctx context.Context, cfg config.Config, logger *log.Logger, out io.Writer) error {
	if cfg.Storage == config.StorageMemory {
		return fmt.Errorf("reset-week needs persistent storage, got %q", cfg.Storage)
	}

	backend, closeBackend, err := OpenBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeBackend()
	}()

	reset, err := services.NewPersonService(backend.People).ResetWeek(ctx)
	if err != nil {
		return fmt.Errorf("reset week: %w", err)
	}

	fmt.Fprintf(out, "✅ Weekly progress reset for %d people\n", reset)
	return nil
}
