// Package logtail reads the tail of Forkify's JSON log file.
//
// Read keeps a ring buffer of the last N lines so large files are scanned
// once without holding them in memory. Tail decodes those lines into
// entries for the session log overlay; lines that are not JSON, such as a
// stray panic trace, are kept as plain messages.
package logtail
