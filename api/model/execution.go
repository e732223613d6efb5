package model

import "time"

const (
	StatusRunning  = "running"
	StatusFinished = "finished"
)

// HistoryEntry is one recorded script execution as stored by the server.
type HistoryEntry struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	ScriptName string     `json:"scriptName"`
	Command    string     `json:"command"`
	StartTime  *time.Time `json:"startTime,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	ExitCode   *int       `json:"exitCode,omitempty"`
	// Log text is kept inline in Output unless LogKey names an archived object.
	Output string `json:"-"`
	LogKey string `json:"-"`
}

func (e *HistoryEntry) Running() bool {
	return e.FinishedAt == nil
}

// LongExecutionLog is the wire form served by the history API.
type LongExecutionLog struct {
	ID        string  `json:"id"`
	StartTime *string `json:"startTime"`
	User      string  `json:"user"`
	Script    string  `json:"script"`
	Status    string  `json:"status"`
	ExitCode  *int    `json:"exitCode"`
	Command   string  `json:"command"`
	Log       string  `json:"log"`
}

const isoLayout = "2006-01-02T15:04:05.999999-07:00"

func ToLongExecutionLog(e *HistoryEntry, log string, running bool) LongExecutionLog {
	status := StatusFinished
	if running {
		status = StatusRunning
	}
	return LongExecutionLog{
		ID:        e.ID,
		StartTime: FormatStartTime(e.StartTime),
		User:      e.Username,
		Script:    e.ScriptName,
		Status:    status,
		ExitCode:  e.ExitCode,
		Command:   e.Command,
		Log:       log,
	}
}

// FormatStartTime renders t in UTC with an explicit +00:00 offset, or nil
// when the start time is unknown.
func FormatStartTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(isoLayout)
	return &s
}
