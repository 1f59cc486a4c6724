// Package pagewatch provides a CLI tool that watches web pages for newly
// appearing items matching keyword rules and notifies a chat recipient
// exactly once per distinct item, re-notifying only when a previously seen
// item's detail content changes.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, sqlite/, telegram/).
package pagewatch
