// Package normalisers turns notebook exports into plain text.
//
// Each subpackage handles one format. Registry maps file extensions to the
// normaliser for that format; the filesystem loader consults it before
// falling back to reading the file as text.
package normalisers
