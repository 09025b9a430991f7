package base

//go:generate stringer -type StatusCode -trimprefix=S
type StatusCode int8

const (
	SNoError StatusCode = iota
	SGenericError
	SInvalidParameters
	SHelpRequested
	SApplicationError
	SWorkspaceError
	SUserError
	SUserCancelled
)

// Error returns the string representation of the status code, it
// implements the error interface.
func (s StatusCode) Error() string {
	return s.String()
}
