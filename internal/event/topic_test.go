package event

import "testing"

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		pattern Topic
		topic   Topic
		want    bool
	}{
		{"selection.changed", "selection.changed", true},
		{"selection.changed", "selection.cleared", false},
		{"selection", "selection.changed", false},
		{"scene.*", "scene.opened", true},
		{"scene.*", "scene.object.deleted", false},
		{"scene.*.deleted", "scene.object.deleted", true},
		{"scene.**", "scene", true},
		{"scene.**", "scene.object.deleted", true},
		{"**", "history.changed", true},
		{"**.deleted", "scene.object.deleted", true},
		{"**.deleted", "scene.object.created", false},
		{"*", "scene.opened", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.pattern)+"~"+string(tt.topic), func(t *testing.T) {
			if got := tt.pattern.Matches(tt.topic); got != tt.want {
				t.Errorf("%q.Matches(%q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
			}
		})
	}
}

func TestTopicValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"selection.changed", true},
		{"single", true},
		{"", false},
		{"selection.", false},
		{".changed", false},
		{"a..b", false},
	}
	for _, tt := range tests {
		if got := tt.topic.Valid(); got != tt.want {
			t.Errorf("%q.Valid() = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestTopicIsWildcard(t *testing.T) {
	if Topic("scene.opened").IsWildcard() {
		t.Error("concrete topic reported as wildcard")
	}
	if !Topic("scene.*").IsWildcard() || !Topic("**").IsWildcard() {
		t.Error("wildcard pattern not detected")
	}
}
