package logger

import "strings"

// Categories for filtering log output, one per engine component.
const (
	TagRuntime   = "RUNTIME"
	TagSignal    = "SIGNAL"
	TagComputed  = "COMPUTED"
	TagEffect    = "EFFECT"
	TagScheduler = "SCHEDULER"
	TagTracking  = "TRACKING"
)

// EngineGroup is every category the engine itself logs under.
var EngineGroup = []string{TagRuntime, TagSignal, TagComputed, TagEffect, TagScheduler, TagTracking}

// EnableGroup enables every category in a group.
func (l *Logger) EnableGroup(group []string) {
	for _, tag := range group {
		l.EnableCategory(tag)
	}
}

// DisableGroup disables every category in a group.
func (l *Logger) DisableGroup(group []string) {
	for _, tag := range group {
		l.DisableCategory(tag)
	}
}

// ParseTags parses a comma-separated category list like "signal,effect", or
// the special name "all" for EngineGroup. Callers (e.g. a cmd/demo flag) use
// this to translate a user-supplied string into Logger categories; the
// engine itself never reads configuration from the environment.
func ParseTags(tags string) []string {
	if tags == "" {
		return nil
	}
	if tags == "all" {
		return EngineGroup
	}
	result := []string{}
	for _, tag := range strings.Split(strings.ToUpper(tags), ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			result = append(result, tag)
		}
	}
	return result
}
