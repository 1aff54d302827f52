// Package settings loads and saves the user settings handed to command
// handlers.
//
// Settings are a free-form map. The Store interface is all the rest of
// replkit depends on; FileStore persists the map as YAML or TOML depending
// on the file extension, and MemoryStore keeps it in memory for tests and
// embedded use. Preferences decodes the keys replkit itself understands,
// and Watcher reloads a FileStore whenever its file changes on disk.
package settings
