package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roomstat",
	Short: "Dormitory room statistics pipeline",
	Long: `roomstat loads room and student JSON files into PostgreSQL, runs four
analytical reports entirely server-side, and exports the results as a
single JSON or XML document.

Reports:
  room_student_count      students per room, empty rooms included
  lowest_avg_age_rooms    5 rooms with the lowest average student age
  highest_age_diff_rooms  5 rooms with the largest student age spread
  mixed_sex_rooms         rooms housing students of both sexes

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or unsupported format
  11 - Database connection failed
  12 - Input file missing, malformed, or failed validation
  13 - SQL execution failed
  14 - Report document could not be written`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for roomstat")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
