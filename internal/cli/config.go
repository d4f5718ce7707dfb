package cli

// Config holds the configuration for one generator run
type Config struct {
	// Directories is the list of directories or ./... patterns to scan
	Directories []string

	// ModuleName overrides the module path read from go.mod
	ModuleName string

	// Verbose enables detailed logging and suggestion output
	Verbose bool
}
