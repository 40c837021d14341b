package gunbroker

// Result is the outcome of a call that completed an HTTP round trip. Exactly
// one of Response and Err is set.
type Result struct {
	status   int
	response *Response
	err      *RequestError
}

// OK reports a 2xx status.
func (r *Result) OK() bool { return r != nil && r.err == nil }

// StatusCode is the HTTP status of the round trip.
func (r *Result) StatusCode() int {
	if r == nil {
		return 0
	}
	return r.status
}

// Response is the parsed body, or nil when the call failed.
func (r *Result) Response() *Response {
	if r == nil {
		return nil
	}
	return r.response
}

// Err is the *RequestError of a failed call, or nil.
func (r *Result) Err() error {
	if r == nil || r.err == nil {
		return nil
	}
	return r.err
}

// Unwrap converts a failed result into its *RequestError.
func (r *Result) Unwrap() (*Response, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	return r.Response(), nil
}

// Strict turns the (Result, error) pair returned by the safe operations into
// a response or an error, treating non-2xx statuses as *RequestError.
func Strict(res *Result, err error) (*Response, error) {
	if err != nil {
		return nil, err
	}
	return res.Unwrap()
}
