// Package report renders validation summaries and graph statistics as
// terminal tables.
package report
