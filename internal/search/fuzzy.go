package search

import (
	"sort"
	"strings"

	"github.com/braindrive/chat-plugin/internal/descriptor"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a search result
type SearchResult struct {
	Module descriptor.Module
	Score  int // Higher is better
}

// ModuleSearchable wraps module descriptors for fuzzy searching
type ModuleSearchable []descriptor.Module

// String returns the searchable string for a module
func (m ModuleSearchable) String(i int) string {
	mod := m[i]
	parts := []string{mod.Name}

	if mod.DisplayName != "" {
		parts = append(parts, mod.DisplayName)
	}
	if mod.Description != "" {
		parts = append(parts, mod.Description)
	}

	parts = append(parts, mod.Tags...)

	if mod.Category != "" {
		parts = append(parts, mod.Category)
	}

	return strings.ToLower(strings.Join(parts, " "))
}

// Len returns the number of modules
func (m ModuleSearchable) Len() int {
	return len(m)
}

// FuzzySearch ranks modules against query. An empty query returns every
// module ordered by priority.
func FuzzySearch(modules []descriptor.Module, query string) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return byPriority(modules)
	}

	matches := fuzzy.FindFrom(query, ModuleSearchable(modules))
	results := make([]SearchResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, SearchResult{
			Module: modules[match.Index],
			Score:  match.Score,
		})
	}

	// Sort by score (descending)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// SimpleSearch performs a simple substring search
func SimpleSearch(modules []descriptor.Module, query string) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	var results []SearchResult
	for _, mod := range modules {
		if matchesQuery(mod, query) {
			results = append(results, SearchResult{
				Module: mod,
				Score:  100, // Default score for simple matches
			})
		}
	}
	return results
}

func byPriority(modules []descriptor.Module) []SearchResult {
	results := make([]SearchResult, len(modules))
	for i, mod := range modules {
		results[i] = SearchResult{Module: mod}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Module.Priority < results[j].Module.Priority
	})
	return results
}

// matchesQuery checks if a module matches the search query
func matchesQuery(mod descriptor.Module, query string) bool {
	if strings.Contains(strings.ToLower(mod.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(mod.DisplayName), query) {
		return true
	}
	if strings.Contains(strings.ToLower(mod.Description), query) {
		return true
	}
	for _, tag := range mod.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(mod.Category), query)
}
