// Package duplicates finds repeated lines in a document.
//
// Exact finds lines whose normalised text shares a fingerprint.
// Approximate groups lines whose similarity passes a threshold, either
// greedily (each seed against later lines, non-transitive) or
// transitively (connected components of similar pairs).
//
// Both detectors ignore lines whose normalised text is shorter than the
// minimum line length; such lines are usually headings or separators.
package duplicates
