package api

// ErrCode enumerates the library's status codes.
type ErrCode int

const (
	AL_SUCCESS         ErrCode = 10
	AL_ERROR           ErrCode = 11
	AL_OUT_OF_MEMORY   ErrCode = 12
	AL_INVALID_INPUT   ErrCode = 13
	AL_UNSUPPORTED     ErrCode = 14
	AL_NOT_INITED      ErrCode = 20
	AL_ALREADY_INITED  ErrCode = 21
	AL_HOOKS_INSTALLED ErrCode = 22
	AL_NOT_FOUND       ErrCode = 23
	AL_READONLY        ErrCode = 24
)

func (code ErrCode) Error() string {
	return ErrString(code)
}

// ErrString returns a human-readable message for an error code.
func ErrString(code ErrCode) string {
	switch code {
	case AL_SUCCESS:
		return "Success"
	case AL_ERROR:
		return "Generic error"
	case AL_OUT_OF_MEMORY:
		return "Out of memory"
	case AL_INVALID_INPUT:
		return "Invalid input"
	case AL_UNSUPPORTED:
		return "Operation not supported"
	case AL_NOT_INITED:
		return "Library not initialized"
	case AL_ALREADY_INITED:
		return "Library already initialized"
	case AL_HOOKS_INSTALLED:
		return "Allocation hooks already installed"
	case AL_NOT_FOUND:
		return "Not found"
	case AL_READONLY:
		return "Variable is read-only"
	default:
		return "Unknown error"
	}
}
