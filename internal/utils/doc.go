// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Terminal detection
//   - Line-oriented stdin reading
//   - File and path helpers
package utils
