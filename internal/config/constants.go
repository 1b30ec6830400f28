package config

const (
	DefaultPort = 8188

	// DefaultDatabasePath is the default path for the vocabulary database.
	// The task queue lives next to it in wordbook-tasks.db.
	DefaultDatabasePath = "./wordbook.db"

	DefaultAuditDir = "./audit"

	// DefaultRateLimit applies to /api per client IP, in limiter format.
	DefaultRateLimit = "300-M"

	DefaultDictionaryBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
)
