// Package parallel provides the bounded fan-out used by pipeline stages whose
// per-region or per-party apportionment calls are independent.
package parallel
