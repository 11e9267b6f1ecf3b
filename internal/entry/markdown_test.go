package entry

import (
	"testing"
	"time"
)

func TestSerializeParseRoundTrip(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	accessed := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	e := &Entry{
		ID:           "arch-deadbeef",
		Topic:        TopicArchitecture,
		Title:        "MVI Pattern",
		Content:      "The app follows a unidirectional Model-View-Intent flow.\n\nSecond paragraph.",
		Sources:      []string{"src/app.go:12"},
		References:   []string{"src/app.go", "docs/mvi.md"},
		Tags:         []string{"architecture", "mvi"},
		Trust:        TrustUser,
		Confidence:   1.0,
		Created:      created,
		LastAccessed: accessed,
		GitSHA:       "abc123",
	}

	raw := Serialize(e)
	got, err := Parse(raw, "fallback-id")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got.ID != e.ID {
		t.Errorf("ID = %q, want %q", got.ID, e.ID)
	}
	if got.Topic != e.Topic {
		t.Errorf("Topic = %q, want %q", got.Topic, e.Topic)
	}
	if got.Title != e.Title {
		t.Errorf("Title = %q, want %q", got.Title, e.Title)
	}
	if got.Content != e.Content {
		t.Errorf("Content = %q, want %q", got.Content, e.Content)
	}
	if len(got.Sources) != 1 || got.Sources[0] != e.Sources[0] {
		t.Errorf("Sources = %v, want %v", got.Sources, e.Sources)
	}
	if len(got.References) != 2 {
		t.Errorf("References = %v, want %v", got.References, e.References)
	}
	if len(got.Tags) != 2 {
		t.Errorf("Tags = %v, want %v", got.Tags, e.Tags)
	}
	if got.Trust != e.Trust {
		t.Errorf("Trust = %q, want %q", got.Trust, e.Trust)
	}
	if got.Confidence != e.Confidence {
		t.Errorf("Confidence = %v, want %v", got.Confidence, e.Confidence)
	}
	if !got.Created.Equal(e.Created) {
		t.Errorf("Created = %v, want %v", got.Created, e.Created)
	}
	if !got.LastAccessed.Equal(e.LastAccessed) {
		t.Errorf("LastAccessed = %v, want %v", got.LastAccessed, e.LastAccessed)
	}
	if got.GitSHA != e.GitSHA {
		t.Errorf("GitSHA = %q, want %q", got.GitSHA, e.GitSHA)
	}
}

func TestSerializeOmitsEmptyOptionalFields(t *testing.T) {
	e := &Entry{
		ID:           "conv-00000001",
		Topic:        TopicConventions,
		Title:        "No optional fields",
		Content:      "body",
		Trust:        TrustAgentInferred,
		Confidence:   0.7,
		Created:      time.Now().UTC(),
		LastAccessed: time.Now().UTC(),
	}
	raw := Serialize(e)
	for _, field := range []string{"sources", "references", "tags", "branch", "gitSha"} {
		if contains := indexOfField(raw, field); contains {
			t.Errorf("Serialize emitted empty field %q", field)
		}
	}
}

func indexOfField(raw, field string) bool {
	needle := "- **" + field + "**:"
	for i := 0; i+len(needle) <= len(raw); i++ {
		if raw[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

func TestParseRejectsIllegalTopic(t *testing.T) {
	raw := "# Title\n- **id**: foo-1\n- **topic**: not-a-real-topic\n\nbody"
	_, err := Parse(raw, "foo-1")
	if err == nil {
		t.Fatal("expected error for illegal topic")
	}
	var topicErr *ErrCorruptTopic
	if !asErrCorruptTopic(err, &topicErr) {
		t.Fatalf("expected *ErrCorruptTopic, got %T: %v", err, err)
	}
}

func asErrCorruptTopic(err error, target **ErrCorruptTopic) bool {
	if e, ok := err.(*ErrCorruptTopic); ok {
		*target = e
		return true
	}
	return false
}

func TestParseFallsBackToFilenameID(t *testing.T) {
	raw := "# Title\n- **topic**: architecture\n\nbody"
	e, err := Parse(raw, "arch-fallback01")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.ID != "arch-fallback01" {
		t.Errorf("ID = %q, want fallback id", e.ID)
	}
}

func TestIsValidTopicModulesNamespace(t *testing.T) {
	cases := map[Topic]bool{
		TopicArchitecture:         true,
		Topic("modules/payments"): true,
		Topic("modules/"):         false,
		Topic("bogus"):            false,
	}
	for topic, want := range cases {
		if got := IsValidTopic(topic); got != want {
			t.Errorf("IsValidTopic(%q) = %v, want %v", topic, got, want)
		}
	}
}
