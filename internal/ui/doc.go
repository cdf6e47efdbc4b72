// Package ui provides the Bubble Tea terminal interface for Forkify.
//
// # Architecture Overview
//
// The UI never touches the state store directly. User input becomes an
// event published on the bus from a tea.Cmd, the controller handles it,
// and the controller pushes results back through the Bridge, which turns
// every view call into a message for the running program.
//
//	key press → Model.Update → tea.Cmd → event.Bus → controller
//	controller → Bridge view → Program.Send → Model.Update → View
//
// # Package Structure
//
//   - app.go: Model, Update loop, global keys and NewProgram
//   - views.go: Bridge implementing the controller's view interfaces
//   - results.go: Search results list and pagination line
//   - recipe.go: Recipe detail viewport
//   - bookmarks.go: Bookmark list
//   - upload.go: Upload form overlay
//   - logs.go, log_format.go: Session log overlay over the JSON log file
//   - header.go, help.go, layout.go: Chrome and the titled box renderer
//   - theme.go, style_helpers.go: Themes and background-safe styling
//
// # Panels
//
//   - Results: one page of the last search, the open recipe marked with ●
//   - Recipe: the open recipe with servings, ingredients and source link
//   - Bookmarks: saved recipes in insertion order
//
// Tab cycles focus between panels; the focused panel receives list and
// scroll keys. Servings, bookmark and upload keys work from any panel.
//
// # Themes
//
// Dracula and Slate are built in. T cycles them and the choice is saved to
// the preferences file when one is configured.
package ui
