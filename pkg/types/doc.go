// Package types defines the Registry and Book interfaces, the Contact
// entity, and standard error types for the rolodex storage system.
package types
