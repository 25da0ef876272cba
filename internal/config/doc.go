// Package config loads asana's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/asana/config.toml
//  3. If the file doesn't exist, start from Default()
//  4. Fields that are missing or blank keep their defaults
//  5. ASANA_* environment variables override the result
//
// LoadDotEnv can be called first to populate the environment from a .env
// file; variables that are already set win over the file.
//
// # TOML Format
//
//	api_base_url     = "http://localhost:3001/api"
//	list_path        = "/yoga-actions"
//	request_timeout  = "10s"
//	page_size        = 10
//	session_path     = "~/.config/asana/session.toml"
//	dataset_path     = ""
//	offline_filter   = false
//	rate_limit_rps   = 0
//	rate_limit_burst = 1
//	log_file         = "~/.local/state/asana/asana.log"
//	log_level        = "info"
//	log_format       = "text"
//	theme            = "Nightfox"
//	language         = "zh"
//
// Every field is optional. Paths get tilde expansion. An empty dataset_path
// selects the bundled dataset; an explicit empty log_file sends logs to
// stderr.
//
// # Environment
//
//   - ASANA_API_BASE_URL: api_base_url
//   - ASANA_SESSION_PATH: session_path
//   - ASANA_LOG_LEVEL: log_level
//   - ASANA_LANGUAGE: language
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML syntax errors and values
// that cannot be used (a non-positive timeout or page size, an unknown log
// format, a negative rate). A missing file is not an error.
package config
