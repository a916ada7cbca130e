package errors

const (
	CodeConfigNotFound       = "CONFIG_NOT_FOUND"
	CodeDistributionNotFound = "DISTRIBUTION_NOT_FOUND"
	CodeLogsNotFound         = "LOGS_NOT_FOUND"
)

// Types ////////////////////////////////////////

type CodedError interface {
	Code() string
}

type codedError struct {
	code string
	msg  string
}

func (e *codedError) Error() string {
	return e.msg
}

func (e *codedError) Code() string {
	return e.code
}

// Error Creators ///////////////////////////////

// The registry file was not found or unreadable.
func ConfigNotFound(msg string) error {
	return &codedError{code: CodeConfigNotFound, msg: msg}
}

// The named distribution does not exist in the registry.
func DistributionNotFound(msg string) error {
	return &codedError{code: CodeDistributionNotFound, msg: msg}
}

// No build has been recorded yet for the distribution.
func LogsNotFound(msg string) error {
	return &codedError{code: CodeLogsNotFound, msg: msg}
}

// Helpers //////////////////////////////////////

func IsConfigNotFound(err error) bool {
	return Code(err) == CodeConfigNotFound
}

func IsDistributionNotFound(err error) bool {
	return Code(err) == CodeDistributionNotFound
}

func IsLogsNotFound(err error) bool {
	return Code(err) == CodeLogsNotFound
}

// Code returns the error code, or the empty string.
func Code(err error) string {
	if cerr, ok := err.(CodedError); ok {
		return cerr.Code()
	}
	return ""
}
