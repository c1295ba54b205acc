// Package poiscout discovers Points of Interest (POIs) by crawling a
// website from a seed page. An LLM-driven page reader extracts POI
// candidates and scores outbound links for relevance, a validation oracle
// confirms candidates before they are kept, and a priority frontier decides
// visitation order from the combination of link relevance and URL depth.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, rod/).
package poiscout
