package translator

// Failure names why a translation is unavailable.
type Failure int

const (
	FailureNone Failure = iota
	// FailureUnsupportedLanguage means the endpoint does not know one of the language codes.
	FailureUnsupportedLanguage
	// FailureTransport covers network errors, cancellation and server errors.
	FailureTransport
	// FailureMalformedResponse means a response arrived but held no translation.
	FailureMalformedResponse
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureUnsupportedLanguage:
		return "unsupported-language"
	case FailureTransport:
		return "transport-error"
	case FailureMalformedResponse:
		return "malformed-response"
	default:
		return "unknown"
	}
}

// Result is the outcome of a translation. Exactly one of Text or Failure is set.
type Result struct {
	Text    string
	Failure Failure
	// Detail is a human readable description of the failure, for logs
	Detail string
}

func success(text string) Result {
	return Result{Text: text}
}

func failure(f Failure, detail string) Result {
	return Result{Failure: f, Detail: detail}
}

func (r Result) OK() bool {
	return r.Failure == FailureNone
}

// Value returns the translated text, or false when the translation is unavailable.
func (r Result) Value() (string, bool) {
	if !r.OK() {
		return "", false
	}
	return r.Text, true
}
