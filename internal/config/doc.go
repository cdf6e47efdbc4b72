// Package config loads Forkify's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/forkify/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// The API key is then overridden by FORKIFY_API_KEY from the environment,
// or from a .env file in the working directory when the variable is unset.
//
// # Default Values
//
//   - API endpoint: https://forkify-api.herokuapp.com/api/v2/recipes
//   - Results per page: 10
//   - Upload form close delay: 2.5s
//   - Request timeout: 10s
//   - Data directory: ~/.local/share/forkify
//   - Bookmarks database: <data_dir>/bookmarks.db
//   - Log file: <data_dir>/forkify.log
//
// # TOML Format
//
//	api_url = "https://forkify-api.herokuapp.com/api/v2/recipes"
//	api_key = "..."
//	results_per_page = 10
//	close_delay_seconds = 2.5
//	request_timeout_seconds = 10
//	data_dir = "~/.local/share/forkify"
//
// Every field is optional. Tilde expansion is performed on data_dir.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and
// TOML parsing errors. A missing config file is not an error.
package config
