// Package rolodex holds project-wide metadata.
package rolodex

// Version is the rolodex release version.
const Version = "0.1.0"
