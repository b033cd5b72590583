// Package inventory persists the pipeline catalog and validation-run history
// in a local SQLite database.
//
// Pipeline definitions are stored as the raw JSON blobs the engine loads, so
// the catalog never needs migrating when node properties grow. A directory
// lock guards the database against concurrent CLI invocations racing schema
// setup.
package inventory
