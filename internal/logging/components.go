package logging

// Component names attached to log records with For.
const (
	ComponentCLI      = "cli"
	ComponentConfig   = "config"
	ComponentPipeline = "pipeline"
	ComponentServer   = "server"
)
