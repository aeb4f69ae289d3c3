package domain

import (
	"fmt"
	"time"
)

type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateStopped  State = "stopped"
	StateFinished State = "finished"
)

const (
	Tick           = time.Second
	DefaultMinutes = 60
)

// Format renders a remaining duration as MM:SS, or HH:MM:SS from one hour up.
func Format(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining / time.Second)
	hours, minutes, seconds := total/3600, (total/60)%60, total%60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
