package gcode

// Result is the outcome of executing one command line.
type Result struct {
	Success bool
	Payload string // report text on success, empty for a bare ok
	Reason  string // human-readable failure reason
}

func resultOK() Result { return Result{Success: true} }

func resultPayload(payload string) Result { return Result{Success: true, Payload: payload} }

func resultError(reason string) Result { return Result{Reason: reason} }

// Render produces the wire response. Every response begins with "ok"
// or "error: "; report payloads follow on their own lines.
func (r Result) Render() string {
	if !r.Success {
		return "error: " + r.Reason
	}
	if r.Payload == "" {
		return "ok"
	}
	return "ok\n" + r.Payload
}

// Message is the JSON-facing text: the payload (or "ok") on success,
// the prefixed reason on failure.
func (r Result) Message() string {
	if !r.Success {
		return "error: " + r.Reason
	}
	if r.Payload == "" {
		return "ok"
	}
	return r.Payload
}
