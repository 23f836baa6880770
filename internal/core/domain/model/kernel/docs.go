// Package kernel contains the shared value objects of the dispatch domain:
// identifiers and geographic coordinates. These types are immutable, validate
// themselves on construction, and carry no dependencies on other domain
// packages.
//
// GeoPoint doubles as the distance/ETA estimator for the whole core: it
// computes great-circle distances on a spherical Earth and the package
// exposes the travel-time estimation used for job pricing and routing.
package kernel
