package main

import (
	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/mood"
)

// resolveMoodFlag accepts either a mood name or free text
func resolveMoodFlag(s string) domain.MoodSelector {
	if m := domain.MoodSelector(s); m.IsValid() {
		return m
	}
	return mood.ResolveSelector(s)
}
