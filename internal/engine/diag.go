package engine

import (
	"fmt"
	"log"
)

// Diagnostics is the single logging channel for a run. Every message goes
// to the process log; when a sink is attached the message is also
// persisted with the run (severity lives in the message text and in
// control flow, not in the transport).
type Diagnostics struct {
	RunID string
	// Sink persists a diagnostic, typically store.SaveRunLog. Optional.
	Sink func(stage, level, message string)
}

func (d *Diagnostics) emit(stage, level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s: %s", level, stage, msg)
	if d != nil && d.Sink != nil {
		d.Sink(stage, level, msg)
	}
}

// Infof records a progress message.
func (d *Diagnostics) Infof(stage, format string, args ...interface{}) {
	d.emit(stage, "info", format, args...)
}

// Warnf records a non-fatal condition (skipped row, missing optional
// column, dropped duplicate).
func (d *Diagnostics) Warnf(stage, format string, args ...interface{}) {
	d.emit(stage, "warning", format, args...)
}

// Errorf records a hard error. Whether it aborts the run is decided by the
// caller, not here.
func (d *Diagnostics) Errorf(stage, format string, args ...interface{}) {
	d.emit(stage, "error", format, args...)
}
