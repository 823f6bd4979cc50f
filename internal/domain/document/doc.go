// Package document builds the format-neutral document tree for invoices and reports.
//
// A Document is an ordered list of sections, each with labelled fields carrying an
// emphasis category. Encoders for printable markup, PDF and tabular text all walk
// the same tree, so status colors and section order stay identical across formats.
// Tabular encoders read Document.Records, which carries raw (unformatted) values.
package document
