// Package utils provides common utility functions for the table-sync application.
// It includes strict scalar conversions used when normalizing source values against
// destination field types, plus other shared logic that doesn't fit into domain-specific packages.
package utils
