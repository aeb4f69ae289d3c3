package domain

type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateRecording  State = "recording"
	StateStopped    State = "stopped"
)

// Asset is a finalized recording that can be played back until released.
type Asset struct {
	Ref      string
	Path     string
	MIMEType string
	Size     int64
}

// Recording is the state of one speaking exercise. Reported is set by the
// first finalized recording and only cleared by a discard.
type Recording struct {
	State    State
	Asset    *Asset
	Reported bool
	Error    string
}
