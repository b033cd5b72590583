// Package grouping turns a flat file listing into the logical image units the
// validation engine works on.
//
// Files sharing a camera id and counter form an ImageGroup. Within a group,
// numeric filename suffixes split off separate captures (bracket exposures)
// while the remaining suffix tokens record processing methods. Groups flatten
// into SpecificImage values, the independently validatable unit, with
// metadata sidecars attached by stem afterwards.
//
// Parsing is fully tolerant: filenames that fit neither the pipeline-supplied
// pattern nor the legacy fixed format are reported as invalid with a reason,
// never as an error.
package grouping
