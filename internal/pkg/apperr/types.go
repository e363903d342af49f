package apperr

// Codes identifying the concrete error conditions. Codes are stable: callers
// match on them programmatically and localization catalogs key on them.
const (
	CodeUnauthenticated = "error.unauthenticated"
	CodeInvalidInput    = "error.invalid.input"
	CodeNotFound        = "error.not.found"
	CodeAlreadyExists   = "error.already.exists"
	CodeInternal        = "error.internal"
	CodeDataStore       = "error.datastore"
	CodeTimeout         = "error.timeout"
)

const (
	unauthenticatedMessage = "Not authenticated."
	invalidInputMessage    = "Invalid input."
	notFoundMessage        = "Resource not found."
	alreadyExistsMessage   = "Resource already exists."
	internalMessage        = "Internal error."
	dataStoreMessage       = "Data store failure."
	timeoutMessage         = "Operation timed out."
)

// Localizer resolves an error code to a display message. Returning false
// falls back to the rendered envelope. The service ships no catalog; the
// presentation layer may inject one via WithLocalizer.
type Localizer func(code string) (string, bool)

type options struct {
	code     string
	msg      string
	cause    error
	localize Localizer
}

// Option overrides one of the defaults pinned by a concrete constructor.
type Option func(*options)

// WithCode replaces the default error code.
func WithCode(code string) Option { return func(o *options) { o.code = code } }

// WithMessage replaces the default internal message.
func WithMessage(msg string) Option { return func(o *options) { o.msg = msg } }

// WithCause chains a prior error. The cause may be any error value, including
// one that is not a BaseError.
func WithCause(cause error) Option { return func(o *options) { o.cause = cause } }

// WithLocalizer installs a catalog lookup used once, at construction, to
// compute the localized message.
func WithLocalizer(l Localizer) Option { return func(o *options) { o.localize = l } }

// baseErr carries the shared state of every taxonomy error. All fields are
// set at construction and never change; the rendered envelope and the
// localized message are computed exactly once.
type baseErr struct {
	code      string
	msg       string
	cause     error
	rendered  string
	localized string
}

func newBaseErr(defaultCode, defaultMsg string, opts []Option) baseErr {
	o := options{code: defaultCode, msg: defaultMsg}
	for _, apply := range opts {
		apply(&o)
	}

	e := baseErr{code: o.code, msg: o.msg, cause: o.cause}
	e.rendered = Render(e.code, e.msg)
	e.localized = e.rendered
	if o.localize != nil {
		if s, ok := o.localize(e.code); ok {
			e.localized = s
		}
	}
	return e
}

func (e *baseErr) Error() string            { return e.rendered }
func (e *baseErr) Code() string             { return e.code }
func (e *baseErr) Message() string          { return e.msg }
func (e *baseErr) LocalizedMessage() string { return e.localized }
func (e *baseErr) Cause() error             { return e.cause }
func (e *baseErr) Unwrap() error            { return e.cause }

// UserErr signals a condition caused by the caller: invalid input, a denied
// operation, a missing resource. The caller can recover by correcting the
// request or re-authenticating.
type UserErr struct {
	baseErr
}

// NewUserErr constructs an uncategorized user-caused error. With no options
// all fields are absent and Error() is the empty envelope.
func NewUserErr(opts ...Option) *UserErr {
	return &UserErr{baseErr: newBaseErr("", "", opts)}
}

// SystemErr signals an internal or environment fault not attributable to
// caller input. Its internal message and cause are diagnostics only and must
// not reach end users unfiltered.
type SystemErr struct {
	baseErr
}

// NewSystemErr constructs an uncategorized system-caused error.
func NewSystemErr(opts ...Option) *SystemErr {
	return &SystemErr{baseErr: newBaseErr("", "", opts)}
}

// NewUnauthenticatedErr reports a request made without valid credentials.
func NewUnauthenticatedErr(opts ...Option) *UserErr {
	return &UserErr{baseErr: newBaseErr(CodeUnauthenticated, unauthenticatedMessage, opts)}
}

// NewInvalidInputErr reports caller-supplied data that failed validation.
func NewInvalidInputErr(opts ...Option) *UserErr {
	return &UserErr{baseErr: newBaseErr(CodeInvalidInput, invalidInputMessage, opts)}
}

// NewNotFoundErr reports a requested resource that does not exist.
func NewNotFoundErr(opts ...Option) *UserErr {
	return &UserErr{baseErr: newBaseErr(CodeNotFound, notFoundMessage, opts)}
}

// NewAlreadyExistsErr reports an attempt to create a resource that exists.
func NewAlreadyExistsErr(opts ...Option) *UserErr {
	return &UserErr{baseErr: newBaseErr(CodeAlreadyExists, alreadyExistsMessage, opts)}
}

// NewInternalErr reports an unexpected internal fault.
func NewInternalErr(opts ...Option) *SystemErr {
	return &SystemErr{baseErr: newBaseErr(CodeInternal, internalMessage, opts)}
}

// NewDataStoreErr reports a failure talking to the backing store.
func NewDataStoreErr(opts ...Option) *SystemErr {
	return &SystemErr{baseErr: newBaseErr(CodeDataStore, dataStoreMessage, opts)}
}

// NewTimeoutErr reports an operation that exceeded its deadline.
func NewTimeoutErr(opts ...Option) *SystemErr {
	return &SystemErr{baseErr: newBaseErr(CodeTimeout, timeoutMessage, opts)}
}
