package domain

import (
	"fmt"
	"strings"
	"time"
)

type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StatePlaying  State = "playing"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

type Question struct {
	ID     string `yaml:"id"`
	Prompt string `yaml:"prompt"`
	Answer string `yaml:"answer"`
}

type Section struct {
	ID           string        `yaml:"id"`
	Title        string        `yaml:"title"`
	Instructions string        `yaml:"instructions"`
	Audio        string        `yaml:"audio"`
	Duration     time.Duration `yaml:"duration"`
	Questions    []Question    `yaml:"questions"`
}

// Exercise is one listening paper. All sections share a single audio
// resource while the exercise is open.
type Exercise struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	Level    string    `yaml:"level"`
	Sections []Section `yaml:"sections"`
}

func (e Exercise) Section(id string) (Section, bool) {
	for _, s := range e.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

func (e Exercise) Questions() []Question {
	var all []Question
	for _, s := range e.Sections {
		all = append(all, s.Questions...)
	}
	return all
}

func (e Exercise) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("exercise id is required")
	}
	if len(e.Sections) == 0 {
		return fmt.Errorf("exercise %s has no sections", e.ID)
	}
	seen := make(map[string]struct{}, len(e.Sections))
	for _, s := range e.Sections {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("exercise %s has a section without id", e.ID)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("exercise %s repeats section %s", e.ID, s.ID)
		}
		seen[s.ID] = struct{}{}
		if strings.TrimSpace(s.Audio) == "" {
			return fmt.Errorf("section %s has no audio source", s.ID)
		}
	}
	return nil
}

// Playback is the observable player state for the active section.
type Playback struct {
	SectionID       string
	Position        time.Duration
	Duration        time.Duration
	State           State
	PendingAutoplay bool
	Blocked         bool
}
