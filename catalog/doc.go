// Package catalog holds the data tables that pin pimmsrun to a PIMMS
// version: the supported mission/detector combinations (with their filter
// wheels), the spectral-model parameter lists, and the result-marker
// pattern scanned out of the session transcript.
//
// The tables ship embedded ([Default]) and can be replaced wholesale from a
// user TOML file ([LoadFile]) when an installed PIMMS version diverges from
// the curated set. Lookups are case-insensitive; script emission uses the
// lowercase canonical form.
package catalog
