// Package localdocs provides a local documentation bookmarking tool.
// It fetches URLs, stores content as markdown under deterministic hashed
// filenames, tracks metadata (name, description, tags) in a JSON registry,
// and exports curated document packages for LLM workflows.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, http/, term/).
package localdocs
