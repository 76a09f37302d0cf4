// Package html extracts notebook text from HTML exports. Tags, scripts and
// styles are stripped and entities decoded; headings become markdown "#"
// lines and list items become "- " lines.
package html
