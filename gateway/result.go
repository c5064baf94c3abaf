package gateway

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jrsteele09/school-portal/internal/errors"
)

// Kind tells a caller how a call ended.
type Kind int

const (
	// KindOK means the server answered with something other than 401; the
	// response is the caller's to interpret.
	KindOK Kind = iota
	// KindAuthExpired means the server rejected the session. It has been
	// torn down and the user sent to login.
	KindAuthExpired
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindAuthExpired:
		return "auth_expired"
	}
	return "unknown"
}

// Result is the outcome of Gateway.Request.
type Result struct {
	Kind     Kind
	Response *http.Response // nil unless Kind is KindOK
}

func (r *Result) AuthExpired() bool {
	return r.Kind == KindAuthExpired
}

// Success reports a KindOK result with a 2xx status.
func (r *Result) Success() bool {
	return r.Kind == KindOK && r.Response.StatusCode >= 200 && r.Response.StatusCode < 300
}

// Close releases the response body, if any.
func (r *Result) Close() error {
	if r.Response == nil || r.Response.Body == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, r.Response.Body)
	return r.Response.Body.Close()
}

// errorBody is the error payload the school API sends with non-2xx answers.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"msg"`
}

// DecodeJSON turns a Result into a value or an error and always closes the
// body. AuthExpired maps to errors.ErrAuthExpired; a non-2xx status maps to
// *errors.APIError. A nil v discards a successful body.
func DecodeJSON(res *Result, v any) error {
	if res == nil {
		return errors.ErrInternal
	}
	defer res.Close()

	if res.AuthExpired() {
		return errors.ErrAuthExpired
	}
	if !res.Success() {
		return NewAPIError(res.Response)
	}
	if v == nil {
		return nil
	}
	if err := json.NewDecoder(res.Response.Body).Decode(v); err != nil {
		return errors.Wrapf(err, "decoding response")
	}
	return nil
}

// NewAPIError reads resp's body into an *errors.APIError. The body is not
// closed.
func NewAPIError(resp *http.Response) *errors.APIError {
	apiErr := &errors.APIError{Status: resp.StatusCode}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(b) == 0 {
		return apiErr
	}
	var body errorBody
	if json.Unmarshal(b, &body) == nil {
		apiErr.Message = body.Error
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
