// Package dataset loads elections from CSV files, YAML scenarios and SQLite
// databases, and writes seat tables back out as CSV, JSON or SQLite rows.
//
// Loaders only reshape data; validation of the resulting election is left
// to election.Election.Validate.
package dataset
