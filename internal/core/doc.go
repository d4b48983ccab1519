// Package core provides the submission workflow around the validation engine.
//
// It owns everything between an uploaded file and a stored report, with no
// knowledge of HTTP or the command line. Web handlers and the brfsscheck CLI
// both drive it.
//
// # Flow
//
//  1. [DetectFileKind] accepts .csv and .json names and rejects the rest.
//  2. [ParseTable] streams the file through BOM stripping and UTF-8
//     sanitization and shapes it into a validation.Table.
//  3. [CheckFile] turns parse failures into file-level findings and runs
//     the engine.
//  4. [Service.Submit] does the above under an [UploadLimiter] and persists
//     the report in a [Store].
//
// # Stores
//
// [MemoryStore] keeps reports in process. [PostgresStore] keeps them in a
// single JSONB-backed table and is selected when a database URL is set.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with support codes
// using [MapError]. Validation problems are never Go errors; they are
// findings inside the report.
package core
