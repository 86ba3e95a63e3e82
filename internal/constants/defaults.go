package constants

// Similarity engine defaults.
const (
	// DefaultNGramSize is the window length for n-gram Jaccard. Trigrams keep
	// enough local context to tell statements apart without being brittle to
	// small edits.
	DefaultNGramSize = 3

	// DefaultMaxTokens caps each snippet's token count before the quadratic
	// subsequence table is built. Zero disables the cap.
	DefaultMaxTokens = 20000

	// DefaultMaxWorkers bounds concurrent pair scoring in matrix runs.
	// Zero means one worker per CPU.
	DefaultMaxWorkers = 0

	// DefaultTimeoutSeconds bounds a whole compare or matrix run.
	DefaultTimeoutSeconds = 300
)

// Matrix prefilter defaults.
const (
	// DefaultPrefilterThreshold is the MinHash estimate below which a pair
	// is reported as skipped instead of scored. Zero scores every pair.
	DefaultPrefilterThreshold = 0.0

	// DefaultMinScore hides pairs whose best metric is below it.
	DefaultMinScore = 0.0

	// DefaultMinHashFunctions is the signature length for the prefilter.
	DefaultMinHashFunctions = 128

	// DefaultLSHBands and DefaultLSHRows split a signature for candidate
	// bucketing; their product must not exceed DefaultMinHashFunctions.
	DefaultLSHBands = 32
	DefaultLSHRows  = 4
)

// Similarity-service defaults.
const (
	DefaultMossServer     = "moss.stanford.edu"
	DefaultMossPort       = 7690
	DefaultMossLanguage   = "c"
	DefaultMossMaxMatches = 10
	DefaultMossShowCount  = 250
)

// Environment variables read by the command-line front ends.
const (
	EnvMossUserID  = "MOSS_USER_ID"
	EnvEnvironment = "ENV"
	EnvProduction  = "production"
)
