// Package files defines the immutable file records the validation engine
// consumes and a local-directory scanner that produces them.
//
// The engine itself never touches the filesystem; callers hand it a flat,
// ordered sequence of Info records. Scan is the local-disk collaborator used
// by the CLI. Remote collections (object stores, network shares) would plug
// in here by producing the same records.
package files
