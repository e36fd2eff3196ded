// Package core provides the reconciliation logic behind the parcels CLI.
//
// Everything here operates on in-memory [table.Table] values and the CSV
// files they are loaded from. Nothing in the package knows about the command
// line, so the same operations back the CLI commands and the tests.
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Mappings: declarative target schemas, registered at init time, that
//     name a source column and a coercion for every target column.
//   - Mapper: projects a source table onto a mapping.
//   - Join key and matcher: attach NHDRA detail to parcels by owner name and
//     total assessed value.
//   - Dedup: keeps one row per parcel identifier.
//   - Service: the entry point that runs each step against files on disk.
//
// # Mapping Registry
//
// Mappings are registered with [Register], normally by the mappings
// subpackage, which loads the embedded YAML definitions:
//
//	core.Register(core.Mapping{
//	    Key: "nhdra_import",
//	    Columns: []core.ColumnSpec{
//	        {Name: "parcel_id", Type: core.FieldParcelID, Sources: []string{"rem mblu map", "rem mblu block", "rem mblu lot"}},
//	        {Name: "total_value", Source: "prc ttl assess", Type: core.FieldMoney},
//	    },
//	})
//
// # Pipeline
//
// The three commands run in order and each one reads the previous output:
//
//  1. [Service.ImportNHDRA] maps the raw export and writes parcels.csv
//  2. [Service.Merge] left-joins parcels.csv with NHDRA and writes the
//     enhanced file; its row count always equals the parcels row count
//  3. [Service.Dedup] keeps the first row per parcel_id and writes the clean
//     file, then replaces parcels.csv with it
//
// Cell content never fails a step. Unparseable numbers become Null, money
// becomes 0, and a missing source column is logged once and filled.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for reference:
//
//   - FILE001-FILE006: Input file errors (size, format, access, header)
//   - MAP001-MAP002: Missing columns and unregistered mappings
//   - RUN001-RUN002: Cancelled or timed out runs
package core
