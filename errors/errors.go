package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseFix    Phase = "fix"    // resolving a fixable codec
	PhaseEncode Phase = "encode" // Go value to bytes
	PhaseDecode Phase = "decode" // bytes to Go value
	PhaseSchema Phase = "schema" // type expression parsing and building
	PhaseLoad   Phase = "load"   // input loading (files, encodings, guest memory)
)

// Kind categorizes the error
type Kind string

const (
	// format violations: the bytes do not match the expected shape
	KindInvalidDiscriminant   Kind = "invalid_discriminant"
	KindInvalidOptionTag      Kind = "invalid_option_tag"
	KindLengthMismatch        Kind = "length_mismatch"
	KindInvalidUTF8           Kind = "invalid_utf8"
	KindDiscriminatorMismatch Kind = "discriminator_mismatch"

	// precondition violations: the caller's value does not fit the codec
	KindTypeMismatch  Kind = "type_mismatch"
	KindArityMismatch Kind = "arity_mismatch"
	KindFieldMissing  Kind = "field_missing"
	KindOverflow      Kind = "overflow"
	KindNilPointer    Kind = "nil_pointer"

	// capacity violations: the buffer is too small or a limit is exceeded
	KindOutOfBounds   Kind = "out_of_bounds"
	KindLimitExceeded Kind = "limit_exceeded"

	KindUnsupported  Kind = "unsupported"
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
)

// Class groups kinds into the three failure families of the wire format.
type Class string

const (
	ClassFormat       Class = "format"
	ClassPrecondition Class = "precondition"
	ClassCapacity     Class = "capacity"
	ClassOther        Class = "other"
)

// Class returns the failure family of k.
func (k Kind) Class() Class {
	switch k {
	case KindInvalidDiscriminant, KindInvalidOptionTag, KindLengthMismatch,
		KindInvalidUTF8, KindDiscriminatorMismatch:
		return ClassFormat
	case KindTypeMismatch, KindArityMismatch, KindFieldMissing, KindOverflow, KindNilPointer:
		return ClassPrecondition
	case KindOutOfBounds, KindLimitExceeded:
		return ClassCapacity
	default:
		return ClassOther
	}
}

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Codec  string
	Detail string
	Path   []string
	Offset int
}

// NoOffset marks an error that is not tied to a buffer position.
const NoOffset = -1

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(joinPath(e.Path))
	}

	hasType := e.GoType != "" || e.Codec != ""
	if hasType {
		b.WriteString(": ")
		if e.GoType != "" && e.Codec != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", codec ")
			b.WriteString(e.Codec)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("codec ")
			b.WriteString(e.Codec)
		}
	}

	if e.Offset > NoOffset {
		if hasType {
			b.WriteString(" @ ")
		} else {
			b.WriteString(": @ ")
		}
		b.WriteString(strconv.Itoa(e.Offset))
		hasType = true
	}

	if e.Detail != "" {
		if hasType {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// joinPath renders index segments ("[3]") without a leading dot.
func joinPath(path []string) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 && !strings.HasPrefix(p, "[") {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on phase and kind only.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder assembles an Error field by field.
type Builder struct {
	err Error
}

// New starts an error of the given phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: NoOffset,
		},
	}
}

// Path sets the field path, outermost first.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Codec sets the codec kind name
func (b *Builder) Codec(name string) *Builder {
	b.err.Codec = name
	return b
}

// Offset sets the buffer offset the failure refers to
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail formats the message. Without args msg is used verbatim.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build finalizes the error.
func (b *Builder) Build() *Error {
	return &b.err
}

// WithPath prefixes segment to the path of a structured error. Other errors
// are wrapped as invalid input so the segment is not lost.
func WithPath(err error, segment string) error {
	if err == nil {
		return nil
	}
	e, ok := err.(*Error)
	if !ok {
		return &Error{
			Phase:  PhaseEncode,
			Kind:   KindInvalidInput,
			Path:   []string{segment},
			Cause:  err,
			Offset: NoOffset,
		}
	}
	path := make([]string, 0, len(e.Path)+1)
	path = append(path, segment)
	path = append(path, e.Path...)
	e.Path = path
	return e
}

// Constructors for the errors codecs raise most often.

// TypeMismatch reports a Go value the codec cannot accept.
func TypeMismatch(phase Phase, path []string, goType, codec string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Codec:  codec,
		Offset: NoOffset,
	}
}

// InvalidUTF8 includes up to 32 bytes of the offending data.
func InvalidUTF8(phase Phase, offset int, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Codec:  "string",
		Offset: offset,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// OutOfBounds creates a capacity error for an access of size bytes at offset
// into a buffer of length bufLen.
func OutOfBounds(phase Phase, codec string, offset, size, bufLen int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Codec:  codec,
		Offset: offset,
		Detail: fmt.Sprintf("%d bytes at offset %d exceed buffer length %d", size, offset, bufLen),
		Value:  offset,
	}
}

// LengthMismatch creates a format error for a length prefix that does not
// match a statically fixed length.
func LengthMismatch(phase Phase, codec string, offset int, got, want int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLengthMismatch,
		Codec:  codec,
		Offset: offset,
		Detail: fmt.Sprintf("length prefix %d, expected %d", got, want),
		Value:  got,
	}
}

// ArityMismatch creates a precondition error for a value whose length does
// not match the codec.
func ArityMismatch(phase Phase, codec string, got, want int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArityMismatch,
		Codec:  codec,
		Offset: NoOffset,
		Detail: fmt.Sprintf("value has length %d, codec expects %d", got, want),
		Value:  got,
	}
}

func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Offset: NoOffset,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// InvalidDiscriminant creates an invalid discriminant error for unions
func InvalidDiscriminant(phase Phase, codec string, offset int, disc, maxValid int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidDiscriminant,
		Codec:  codec,
		Offset: offset,
		Detail: fmt.Sprintf("discriminant %d out of range (max %d)", disc, maxValid),
		Value:  disc,
	}
}

// InvalidOptionTag creates a format error for an option tag other than 0 or 1
func InvalidOptionTag(phase Phase, offset int, tag byte) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidOptionTag,
		Codec:  "option",
		Offset: offset,
		Detail: fmt.Sprintf("option tag %d is neither 0 nor 1", tag),
		Value:  tag,
	}
}

func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Offset: NoOffset,
		Detail: what,
	}
}

func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Offset: NoOffset,
		Detail: "nil pointer",
	}
}

// Overflow reports a value too wide for the codec's integer width.
func Overflow(phase Phase, value any, codec string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Codec:  codec,
		Offset: NoOffset,
		Detail: fmt.Sprintf("value %v overflows %s", value, codec),
		Value:  value,
	}
}

// LimitExceeded creates a capacity error for a length beyond a configured limit
func LimitExceeded(phase Phase, codec string, offset int, n, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLimitExceeded,
		Codec:  codec,
		Offset: offset,
		Detail: fmt.Sprintf("length %d exceeds limit %d", n, limit),
		Value:  n,
	}
}

// NotFound reports a named entity that does not exist.
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Offset: NoOffset,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Offset: NoOffset,
		Detail: detail,
	}
}

// Load creates an input loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Offset: NoOffset,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a schema parsing error at byte position pos
func ParseFailed(pos int, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseSchema,
		Kind:   KindInvalidInput,
		Offset: pos,
		Detail: fmt.Sprintf(detail, args...),
	}
}
