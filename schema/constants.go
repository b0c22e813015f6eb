package schema

// Custom string types for type safety.
type (
	// Mode represents the heat signal mode.
	Mode string

	// VCSKind represents the version control system governing a file.
	VCSKind string

	// Scale represents the bucketing scale for absolute signals.
	Scale string

	// AbsoluteStrategy represents how absolute counts are extracted.
	AbsoluteStrategy string

	// OutputMode represents the format of exported output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All heat modes supported.
const (
	AgeMode        Mode = "age"         // relative: recency rank of last change (default)
	LineCommitMode Mode = "line_commit" // absolute: modification-frequency count
)

// All VCS kinds that detection can yield.
const (
	GitVCS      VCSKind = "git"
	PerforceVCS VCSKind = "perforce"
	NoVCS       VCSKind = "none"
)

// All bucketing scales.
const (
	LinearScale Scale = "linear"
	LogScale    Scale = "log"
)

// All absolute extraction strategies.
const (
	LineLogStrategy AbsoluteStrategy = "line-log" // one line-range log per line (default)
	HunksStrategy   AbsoluteStrategy = "hunks"    // single aggregated patch log, hunk walk
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidModes lists all valid heat modes.
var ValidModes = map[Mode]struct{}{
	AgeMode:        {},
	LineCommitMode: {},
}

// ValidStrategies lists all valid absolute extraction strategies.
var ValidStrategies = map[AbsoluteStrategy]struct{}{
	LineLogStrategy: {},
	HunksStrategy:   {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
