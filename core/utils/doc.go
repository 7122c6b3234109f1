// Package utils provides loose-typed scalar conversions.
//
// The bulk-sync payloads come from a browser frontend that is sloppy about
// scalar types: ids arrive as numbers or numeric strings, capacities as
// numbers or strings, setting values as any JSON scalar. These helpers
// normalize such values without panicking on unexpected types.
package utils
