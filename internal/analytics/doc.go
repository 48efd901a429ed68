// Package analytics reduces already-fetched records into grouped statistics.
//
// Every function here is pure and synchronous: records are flattened to one row per
// student entry, grouped by a key and reduced. Values are never rounded in this package.
// Empty input always yields an empty result.
package analytics
