package download

// Level indicates the severity/type of an Event.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Event is a message about the run meant for the user.
type Event struct {
	Message string
	Level   Level
}

// Update reports the bytes received so far for one song. Received never
// decreases between two updates for the same song.
type Update struct {
	Label    string
	Received int64
	Total    int64
}

// Sink receives progress updates and events from a Pipeline.
//
// Calls are made synchronously from the download loop, one Progress call
// per received chunk.
type Sink interface {
	Progress(Update)
	Event(Event)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Progress(Update) {}
func (NopSink) Event(Event)     {}

// SinkFuncs adapts plain functions to a Sink. Nil functions are skipped.
type SinkFuncs struct {
	OnProgress func(Update)
	OnEvent    func(Event)
}

func (s SinkFuncs) Progress(u Update) {
	if s.OnProgress != nil {
		s.OnProgress(u)
	}
}

func (s SinkFuncs) Event(e Event) {
	if s.OnEvent != nil {
		s.OnEvent(e)
	}
}
