package errors

import (
	"encoding/json"
	"errors"
	"strings"
)

// Report is the kernel's structured diagnostic. Every error surfaced to a
// caller of the kernel, directly or via the driver's report accumulator,
// is built as a Report so that the CLI can render either prose or JSON
// from the same value.
type Report struct {
	Schema  string   `json:"schema"` // always "mm0.kernel.error/v1"
	Code    string   `json:"code"`
	Kind    string   `json:"kind"` // shape, scoping, sort, typing, dv, proof, io, internal
	Message string   `json:"message"`
	Context []string `json:"context,omitempty"` // withContext chain, outermost first
}

// ReportError wraps a Report as an error so it survives errors.As unwrapping
// through ordinary Go error propagation.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.String()
}

// String renders the withContext-style colon-separated chain (spec §6).
func (r *Report) String() string {
	if len(r.Context) == 0 {
		return r.Message
	}
	return strings.Join(r.Context, ": ") + ": " + r.Message
}

// New builds a Report for the given code and message.
func New(code, message string) *Report {
	kind := "internal"
	if info, ok := ErrorRegistry[code]; ok {
		kind = info.Kind
	}
	return &Report{Schema: "mm0.kernel.error/v1", Code: code, Kind: kind, Message: message}
}

// WithContext returns a copy of r with an additional context frame pushed
// onto the front of the chain, mirroring the driver's per-declaration
// withContext(name) wrapper.
func (r *Report) WithContext(ctx string) *Report {
	cp := *r
	cp.Context = append([]string{ctx}, r.Context...)
	return &cp
}

// Wrap turns a Report into an error.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// As extracts a *Report from an error chain, if present.
func As(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// ToJSON renders the report deterministically for machine consumption.
func (r *Report) ToJSON(indent bool) (string, error) {
	if indent {
		b, err := json.MarshalIndent(r, "", "  ")
		return string(b), err
	}
	b, err := json.Marshal(r)
	return string(b), err
}
