package exec

import "fmt"

// RunStatus is the terminal status of one interpreted run.
type RunStatus string

const (
	// StatusSuccess indicates the run completed without errors.
	StatusSuccess RunStatus = "success"

	// StatusLogicError indicates host validation code reported a
	// student-facing error during the run.
	StatusLogicError RunStatus = "logic-error"

	// StatusSyntaxError indicates the script failed to parse.
	StatusSyntaxError RunStatus = "syntax-error"

	// StatusRuntimeError indicates dynamic evaluation raised an
	// uncaught error.
	StatusRuntimeError RunStatus = "runtime-error"

	// StatusMaxIterations indicates the script exceeded the execution
	// step budget, i.e. a runaway loop.
	StatusMaxIterations RunStatus = "max-iterations"

	// StatusInfiniteRecursion indicates the script recursed without
	// bound.
	StatusInfiniteRecursion RunStatus = "infinite-recursion"
)

// FrameStatus marks whether a frame describes a successful operation.
type FrameStatus string

const (
	FrameSuccess FrameStatus = "success"
	FrameError   FrameStatus = "error"
)

// Frame is one narrated step of a run: what happened and when, in
// virtual time.
type Frame struct {
	// Time is the virtual time at which the operation ran, in ms.
	Time int `json:"time"`

	// Description is the past-tense narration of the operation.
	Description string `json:"description"`

	// Status marks whether the operation succeeded.
	Status FrameStatus `json:"status"`
}

// Context is the run-scoped execution context: one instance per
// interpreted run, created at run start and discarded at run end. It owns
// the virtual clock, the one-way logic-error channel back to the host,
// and the frame and log capture for the run.
//
// The clock is logical time, independent of wall-clock time: interpreted
// code advances it explicitly through the methods it calls, which is what
// keeps effect offsets deterministic regardless of how long the actual
// interpretation took.
type Context struct {
	now       int
	logicErr  *RunError
	frames    []Frame
	logs      []string
	status    RunStatus
	statusSet bool
}

// NewContext creates a fresh execution context with the clock at zero.
func NewContext() *Context {
	return &Context{}
}

// Now returns the current virtual time in milliseconds.
func (c *Context) Now() int {
	return c.now
}

// Advance moves the virtual clock forward by ms milliseconds. A negative
// ms is rejected with a validation error and leaves the clock untouched.
func (c *Context) Advance(ms int) error {
	if ms < 0 {
		return NewValidationError(fmt.Sprintf("cannot advance time by %dms: negative durations are not allowed", ms))
	}
	c.now += ms
	return nil
}

// ReportLogicError records a student-facing error against the run. It
// does not unwind: the caller is expected to stop performing further
// mutation for that call and return normally, while the interpreted
// script continues or halts according to its own semantics. Only the
// first reported error is kept; later reports are ignored so the report
// shows the error the student hit first.
func (c *Context) ReportLogicError(message string) {
	if c.logicErr == nil {
		c.logicErr = NewLogicError(message)
	}
}

// ReportValidationError records a validation-classified logic error, used
// by constructors and setters when an argument's variant does not match
// what the class declares.
func (c *Context) ReportValidationError(message string) {
	if c.logicErr == nil {
		c.logicErr = NewValidationError(message)
	}
}

// LogicError returns the first logic error reported during the run, or
// nil if none was reported.
func (c *Context) LogicError() *RunError {
	return c.logicErr
}

// OK reports whether no logic error has been raised so far.
func (c *Context) OK() bool {
	return c.logicErr == nil
}

// AddFrame appends a narrated frame stamped at the current virtual time.
func (c *Context) AddFrame(description string, status FrameStatus) {
	c.frames = append(c.frames, Frame{Time: c.now, Description: description, Status: status})
}

// Frames returns the narrated frames recorded so far, in order.
func (c *Context) Frames() []Frame {
	return c.frames
}

// Log appends a message to the run's log capture.
func (c *Context) Log(message string) {
	c.logs = append(c.logs, message)
}

// LogMessages returns the log messages captured so far, in order.
func (c *Context) LogMessages() []string {
	return c.logs
}

// Finish records the terminal status of the run. The first call wins;
// this keeps a logic error raised mid-run from being overwritten by the
// success path at the end of interpretation.
func (c *Context) Finish(status RunStatus) {
	if !c.statusSet {
		c.status = status
		c.statusSet = true
	}
}

// Status returns the terminal status of the run. A run that has not
// finished, or that finished normally but raised a logic error, reports
// the logic-error status.
func (c *Context) Status() RunStatus {
	if c.statusSet && c.status != StatusSuccess {
		return c.status
	}
	if c.logicErr != nil {
		return StatusLogicError
	}
	if c.statusSet {
		return c.status
	}
	return StatusSuccess
}
