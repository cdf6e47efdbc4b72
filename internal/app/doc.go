// Package app is the composition root of Forkify.
//
// Run loads configuration and preferences, opens the log file and the bbolt
// bookmarks database, and connects the pieces:
//
//	config.Load ──> forkify.Client ──┐
//	kv.OpenBolt ─────────────────────┴─> state.Store
//	event.Bus <── nav.Location <── ui.Model (key presses)
//	event.Bus ──> controller handlers ──> ui.Bridge ──> tea.Program.Send
//
// The controller is started from a goroutine because the views it drives
// block until the Bubble Tea program is running. When the saved location
// names a recipe, a hash change is published right after startup so the
// last recipe reopens.
//
// Fatal errors (returned from Run) are limited to startup: an unreadable
// config or prefs file, an unwritable log or bookmarks path, and UI
// failures. Everything after startup is logged and shown in the panels.
package app
