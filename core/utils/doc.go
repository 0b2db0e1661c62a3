// Package utils provides common helpers shared by the catalog features:
// lenient numeric conversion of decoded JSON values, half-up rounding and
// string sanitizing.
package utils
