// Package newsextract extracts clean, structured article content from news
// site URLs. No single extraction technique works across every outlet, so
// extraction runs through an ordered chain of adapters, each wrapping one
// external content-extraction capability, held to a shared quality gate.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., readability/, trafilatura/, sqlite/).
package newsextract
