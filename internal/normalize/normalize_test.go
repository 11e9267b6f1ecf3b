package normalize

import "testing"

func TestResolveAliasesFillsCanonicalFromAlternates(t *testing.T) {
	args := Args{"key": "My Title", "body": "some content", "query": "payment"}
	got := ResolveAliases(args, false)

	if got["title"] != "My Title" {
		t.Errorf(`title = %q, want "My Title"`, got["title"])
	}
	if got["content"] != "some content" {
		t.Errorf(`content = %q, want "some content"`, got["content"])
	}
	if got["filter"] != "payment" {
		t.Errorf(`filter = %q, want "payment"`, got["filter"])
	}
}

func TestResolveAliasesNeverOverwritesCanonicalKey(t *testing.T) {
	args := Args{"title": "Canonical", "key": "Should be ignored"}
	got := ResolveAliases(args, false)
	if got["title"] != "Canonical" {
		t.Errorf("title = %q, want Canonical preserved", got["title"])
	}
}

func TestResolveAliasesStoreOnlyScopeToTopic(t *testing.T) {
	args := Args{"scope": "architecture"}
	if got := ResolveAliases(args, true); got["topic"] != "architecture" {
		t.Errorf("topic = %q, want architecture", got["topic"])
	}

	args2 := Args{"scope": "architecture"}
	if got := ResolveAliases(args2, false); got["topic"] != "" {
		t.Errorf("expected scope->topic alias not applied for a non-store op, got %q", got["topic"])
	}
}

func TestNormalizeWildcard(t *testing.T) {
	cases := map[string]string{
		"all":          "*",
		"Everything":   "*",
		"GLOBAL":       "*",
		"project":      "*",
		"*":            "*",
		"architecture": "architecture",
		"":             "",
	}
	for in, want := range cases {
		if got := NormalizeWildcard(in); got != want {
			t.Errorf("NormalizeWildcard(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultLobe(t *testing.T) {
	if got := DefaultLobe("explicit", []string{"a", "b"}); got != "explicit" {
		t.Errorf("DefaultLobe with explicit lobe = %q, want explicit", got)
	}
	if got := DefaultLobe("", []string{"solo"}); got != "solo" {
		t.Errorf("DefaultLobe with one configured lobe = %q, want solo", got)
	}
	if got := DefaultLobe("", []string{"a", "b"}); got != "" {
		t.Errorf("DefaultLobe with multiple configured lobes = %q, want empty", got)
	}
}

func TestDefaultQueryScope(t *testing.T) {
	if got := DefaultQueryScope("", "payment"); got != "*" {
		t.Errorf(`DefaultQueryScope("", "payment") = %q, want "*"`, got)
	}
	if got := DefaultQueryScope("", ""); got != "" {
		t.Errorf(`DefaultQueryScope("", "") = %q, want ""`, got)
	}
	if got := DefaultQueryScope("architecture", "payment"); got != "architecture" {
		t.Errorf("DefaultQueryScope must not override an explicit scope, got %q", got)
	}
}
