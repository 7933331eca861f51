package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vvka-141/roomstat/internal/db"
	"github.com/vvka-141/roomstat/internal/schema"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Create the report-supporting indexes",
	Long: `Index creates the indexes the reports benefit from once data volume grows:

  idx_students_room_id   join and per-room aggregation support
  idx_students_room_sex  mixed-sex detection (room_id, sex)
  idx_students_birthday  age computations

All statements use CREATE INDEX IF NOT EXISTS, so the command is safe to
run repeatedly. Indexes are deliberately not created during "run": loading
into indexed tables is slower, and the optimizer may not use them on small
datasets anyway.

Examples:
  roomstat index -d dormitory
  roomstat index --connection postgresql://user@localhost:5432/dormitory`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

var indexFlags connFlagValues

func init() {
	rootCmd.AddCommand(indexCmd)
	addConnectionFlags(indexCmd, &indexFlags)
}

func runIndex(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	_ = godotenv.Load()

	projectCfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	connCfg, err := resolveConnection(&indexFlags, projectCfg, verbose)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewStandardConnector(connCfg).Connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := schema.NewManager(pool).CreateIndexes(ctx); err != nil {
		return fmt.Errorf("index creation failed: %w", err)
	}

	color.Green("Indexes created on database %q", connCfg.Database)
	return nil
}
