// Package normalize pre-processes raw tool arguments at the MCP boundary:
// alias resolution, wildcard normalization, and lobe/scope defaulting,
// before a request reaches the coordinator or store packages.
package normalize

import "strings"

// aliases maps each canonical field name to the alternate spellings that
// resolve to it, applied only when the canonical key is itself absent.
var aliases = map[string][]string{
	"title":      {"key", "name"},
	"content":    {"value", "body", "text"},
	"filter":     {"query", "search"},
	"lobe":       {"workspace", "repo"},
	"context":    {"description", "task"},
	"references": {"refs"},
}

// storeOnlyAliases applies only when normalizing a `store` operation's
// arguments.
var storeOnlyAliases = map[string][]string{
	"topic": {"scope"},
}

// wildcardValues normalize (case-insensitively) to "*".
var wildcardValues = map[string]bool{
	"all":        true,
	"everything": true,
	"global":     true,
	"project":    true,
}

// Args is the raw string-keyed argument bag normalization operates on.
type Args map[string]string

// ResolveAliases fills in canonical keys from their aliases when the
// canonical key is absent. isStoreOp additionally applies the
// store-specific scope->topic alias.
func ResolveAliases(args Args, isStoreOp bool) Args {
	apply := func(table map[string][]string) {
		for canonical, alts := range table {
			if _, ok := args[canonical]; ok {
				continue
			}
			for _, alt := range alts {
				if v, ok := args[alt]; ok {
					args[canonical] = v
					break
				}
			}
		}
	}
	apply(aliases)
	if isStoreOp {
		apply(storeOnlyAliases)
	}
	return args
}

// NormalizeWildcard maps the case-insensitive wildcard spellings
// ("all", "everything", "global", "project") to "*"; any other value
// (including "*" itself) passes through unchanged.
func NormalizeWildcard(v string) string {
	if wildcardValues[strings.ToLower(v)] {
		return "*"
	}
	return v
}

// DefaultLobe returns lobe unchanged unless it is empty and exactly one
// lobe is configured, in which case that lobe's name is returned.
func DefaultLobe(lobe string, configuredLobes []string) string {
	if lobe != "" {
		return lobe
	}
	if len(configuredLobes) == 1 {
		return configuredLobes[0]
	}
	return lobe
}

// DefaultQueryScope implements the query-specific defaulting rule: when a
// filter is present and scope is absent, default scope to "*".
func DefaultQueryScope(scope, filter string) string {
	if scope == "" && strings.TrimSpace(filter) != "" {
		return "*"
	}
	return scope
}
