// Package validation classifies specific images against the enumerated paths
// of a pipeline and aggregates the per-image outcomes into a run summary.
//
// Classification is purely computational: the caller supplies file records
// and a compiled pipeline, the runner groups and flattens them, enumerates
// paths once, then validates every image independently against the same
// read-only path set. Images are sharded across an errgroup; results are
// collected positionally so aggregation is order-insensitive.
package validation
