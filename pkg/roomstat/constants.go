package roomstat

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Run completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or unsupported format
	ExitConnectionError = 11 // Failed to connect to database
	ExitInputError      = 12 // Input file missing, malformed, or failed validation
	ExitExecutionFailed = 13 // SQL execution failed
	ExitExportFailed    = 14 // Report document could not be written
)

// Report names used as keys in the exported document.
// These match the four reports the tool produces and are stable
// identifiers consumers can rely on in both JSON and XML output.
const (
	ReportRoomStudentCount  = "room_student_count"
	ReportLowestAvgAgeRooms = "lowest_avg_age_rooms"
	ReportHighestAgeDiff    = "highest_age_diff_rooms"
	ReportMixedSexRooms     = "mixed_sex_rooms"
)

const (
	// DefaultOutputDir is where the report document is written when the
	// caller does not specify an output path.
	DefaultOutputDir = "output"

	// DefaultOutputBasename is the report document filename without extension.
	// The extension is derived from the selected format.
	DefaultOutputBasename = "reports"

	// TopRoomsLimit is the number of rows returned by the two ranked
	// reports (lowest average age, highest age spread).
	TopRoomsLimit = 5
)
