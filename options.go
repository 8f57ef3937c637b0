package dview

// inspectConfig holds the resolved configuration for an inspection.
type inspectConfig struct {
	showAll bool
}

// Option configures an inspection.
type Option func(*inspectConfig)

// WithData materializes each variable's full payload into the report, the
// library equivalent of the CLI's -a/--all flag.
func WithData() Option {
	return func(cfg *inspectConfig) {
		cfg.showAll = true
	}
}
