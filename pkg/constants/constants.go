package constants

// CLIName is the command name used in user-facing output
const CLIName = "knct"

// DefaultDatasetFile is the file name the K-NCT corpus is distributed under
const DefaultDatasetFile = "K-NCT_v1.5.json"

// MaxConcurrentParses bounds the worker pool used when parsing a whole
// dataset for stats aggregation
const MaxConcurrentParses = 8
