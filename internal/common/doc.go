// Package common holds small interfaces shared across internal packages.
//
// It exists to break import cycles: packages that need logging accept the
// common.Logger interface rather than depending on the logger package
// directly.
package common
