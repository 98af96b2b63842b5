package app

import "fmt"

// Output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Default configuration constants
const (
	DefaultFormat       = FormatJSON
	DefaultLogRotateUTC = true
	DefaultLogMaxDays   = 0 // keep every archive file
)

// Config holds application configuration
type Config struct {
	Format       string
	Pretty       bool
	TACFile      string
	Verbose      bool
	ShowVersion  bool
	Input        string
	LogDir       string
	LogRotateUTC bool
	LogMaxDays   int
	MetricsAddr  string
}

// Validate checks values cobra cannot check for us
func (c Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatText:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Format, FormatJSON, FormatText)
	}
	if c.LogMaxDays < 0 {
		return fmt.Errorf("log-max-days must not be negative")
	}
	return nil
}
