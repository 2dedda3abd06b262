// Package source reads instruction pages from files.
//
// A source file describes the same fields as the editing form: a title, a
// description, code rows and image rows. Three formats are accepted:
//
//	.yaml, .yml     keys title, description, code[{lang, body}], images[{url, alt}]
//	.toml           the same keys, with [[code]] and [[images]] tables
//	.md, .markdown  first level-1 heading is the title, fenced and indented
//	                code blocks are code rows, paragraphs holding only images
//	                are image rows, everything else is the description
//
// Loaded files implement howto.FormState. No validation happens here beyond
// decoding: trimming and empty-row filtering belong to howto.Collect.
package source
