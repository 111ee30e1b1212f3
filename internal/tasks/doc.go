// Package tasks runs bulk operations against the reading list with progress reporting.
//
// # Import
//
// [ImportEngine.ImportFile] reads a CSV or JSON export produced by the list command
// and adds every entry through the library, so the configured required-field
// policy applies to imported rows exactly as it does to interactive input.
// Ids in the file are ignored; the storage backend assigns new ones.
//
// Rows are processed in file order, one at a time. A rejected row does not stop the
// import: its error is recorded in the [ImportResult] and the next row is tried.
//
// # Progress Reporting
//
// Operations accept an optional channel of [ProgressUpdate]. Sends use select with
// default, so a slow or absent reader never stalls an import.
package tasks
