package backend

import "fmt"

// ErrorKind discriminates backend failure modes. Timeouts, transport
// failures, HTTP error statuses and undecodable bodies are distinct kinds;
// callers render them differently.
type ErrorKind string

const (
	ErrorKindTimeout    ErrorKind = "timeout"
	ErrorKindTransport  ErrorKind = "transport"
	ErrorKindHTTPStatus ErrorKind = "http_status"
	ErrorKindDecode     ErrorKind = "decode"
	// ErrorKindBackend is an in-band failure reported by the backend itself.
	ErrorKindBackend ErrorKind = "backend"
	// ErrorKindGeneration is a failed open-web generative call.
	ErrorKindGeneration ErrorKind = "generation"
)

// DataAnswer is the structured-data backend's success shape.
type DataAnswer struct {
	NaturalLanguageQuery string `json:"natural_language_query,omitempty"`
	Result               string `json:"result"`
	Explanation          string `json:"explanation,omitempty"`
}

// DocumentAnswer is the document backend's success shape.
type DocumentAnswer struct {
	Query      string   `json:"query,omitempty"`
	Answer     string   `json:"answer"`
	References []string `json:"references,omitempty"`
}

// Result is the discriminated outcome of a dispatch. Exactly one of Data
// and Document is set on success; on failure both are nil and ErrKind/Err
// describe what went wrong. Failures are always data, never raised past the
// dispatcher.
type Result struct {
	Success  bool
	Data     *DataAnswer
	Document *DocumentAnswer
	ErrKind  ErrorKind
	Err      string
}

func successData(a *DataAnswer) Result {
	return Result{Success: true, Data: a}
}

func successDocument(a *DocumentAnswer) Result {
	return Result{Success: true, Document: a}
}

func failure(kind ErrorKind, format string, args ...interface{}) Result {
	return Result{Success: false, ErrKind: kind, Err: fmt.Sprintf(format, args...)}
}
