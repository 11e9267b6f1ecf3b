package ephemeral

import (
	"strings"
	"sync"
)

// Classifier runs the regex registry first and falls back to the TF-IDF
// layer only when the registry fired nothing and the topic is eligible.
// The model is loaded once per process and memoized, per the design note
// on lazy classifier model load.
type Classifier struct {
	once  sync.Once
	model *model
}

// New returns a ready-to-use classifier. Construction is cheap; the model
// is lazily memoized on first Classify call.
func New() *Classifier {
	return &Classifier{}
}

func (c *Classifier) loadModel() *model {
	c.once.Do(func() {
		c.model = defaultModel
	})
	return c.model
}

// Classify runs both layers per the contract in the regex/TF-IDF design
// and returns every fired signal; FormatWarning turns them into the warning
// string. An empty slice means the entry shows no ephemerality signal.
func (c *Classifier) Classify(topic, title, content string) []Signal {
	lowerTitle, lowerContent := strings.ToLower(title), strings.ToLower(content)

	var signals []Signal
	for _, def := range registry {
		if def.skipTopics[topic] {
			continue
		}
		if detail, ok := def.test(lowerTitle, lowerContent, title, content); ok {
			signals = append(signals, Signal{
				ID:         def.id,
				Label:      def.label,
				Detail:     detail,
				Confidence: def.confidence,
			})
		}
	}

	if len(signals) == 0 && topic != "recent-work" && topic != "user" {
		if fired, _ := c.loadModel().classify(title, content, topic); fired {
			signals = append(signals, Signal{
				ID:         "ml-classifier",
				Label:      "ML classifier: likely ephemeral",
				Detail:     "TF-IDF logistic model crossed its threshold",
				Confidence: Low,
			})
		}
	}

	return signals
}
