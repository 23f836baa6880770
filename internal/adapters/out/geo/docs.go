// Package geo provides spatial index adapters for driver positions. Both
// implementations shortlist candidates for proximity queries; exact
// filtering against availability and freshness happens in the query layer.
package geo
