package models

// ErrorKind classifies a generation failure. The message of the error is
// always display-ready; the kind only exists for callers that want to branch.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindMissingCredential
	KindUpstreamTransport
	KindUpstreamAuth
	KindResponseParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindUpstreamTransport:
		return "upstream_transport"
	case KindUpstreamAuth:
		return "upstream_auth"
	case KindResponseParse:
		return "response_parse"
	}
	return "generic"
}

// UpstreamError is returned by provider adapters.
type UpstreamError struct {
	Kind       ErrorKind
	Provider   string
	Message    string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
