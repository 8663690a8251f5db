package bytecode

import "errors"

var (
	// ErrTruncated reports class file bytes that end mid-field.
	ErrTruncated = errors.New("truncated class file")
	// ErrBadMagic reports a class file that does not start with 0xCAFEBABE.
	ErrBadMagic = errors.New("bad magic")
	// ErrBadVersion reports a class file major version outside [45, 52].
	ErrBadVersion = errors.New("unsupported class file version")
	// ErrBadTag reports an unknown annotation element value tag.
	ErrBadTag = errors.New("bad element value tag")
)
