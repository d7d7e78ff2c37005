// Package importer reads existing openHASP JSONL configuration files
// from the Home Assistant config directory and converts them into
// editable layouts.
//
// Parsing is deliberately lenient: plates in the field carry hand-edited
// files with comments, blank lines and vendor extensions, so unparseable
// lines are skipped with a warning rather than failing the import.
package importer
