// Package constants provides application-wide constant values for contribwriter.
//
// It centralizes fixed presentation elements such as the ASCII logo, the
// tagline, and the extended usage text, keeping them separate from business
// logic and easy to update in one place.
package constants
