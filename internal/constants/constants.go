package constants

// Context keys
const (
	ContextKeyRequestID = "request_id"
	ContextKeyID        = "id"
)

// HTTP headers
const (
	HeaderRequestID = "X-Request-ID"
)

// Colours
const (
	DefaultProjectColor = "#3b82f6"
	DefaultTagColor     = "#6b7280"
)

// DefaultProject is a project inserted on first run
type DefaultProject struct {
	Name  string
	Color string
}

// DefaultProjects are seeded when the projects table is empty
var DefaultProjects = []DefaultProject{
	{Name: "Personal", Color: "#3b82f6"},
	{Name: "Work", Color: "#10b981"},
	{Name: "Shopping", Color: "#f59e0b"},
}

// Application identity used for data directories and file names
const (
	AppName        = "taskflow"
	DatabaseFile   = "taskflow.db"
	ConfigFileName = "config.toml"
)
