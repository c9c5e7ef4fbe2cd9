// Package harvest extracts contact records (name, a secondary attribute
// such as a phone extension or job title, and an email address) from raw
// HTML pages, reconciles them into one record shape, renders them as an
// aligned table and persists them idempotently.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package harvest
