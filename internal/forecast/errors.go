package forecast

import "errors"

var (
	// ErrInvalidWorkspace is returned when the workspace id is missing or malformed
	ErrInvalidWorkspace = errors.New("invalid workspace id")

	// ErrInvalidPeriod is returned for an unparseable month or inconsistent date range
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrUnknownOption is returned when a request carries an unrecognized option
	ErrUnknownOption = errors.New("unknown option")

	// ErrForeignRecord is returned when the storage collaborator leaks another workspace's record
	ErrForeignRecord = errors.New("record belongs to a foreign workspace")

	// ErrNegativeAmount is returned for a negative amount or revenue
	ErrNegativeAmount = errors.New("negative amount")

	// ErrInvalidRecord is returned for a record with an unrecognized type or status
	ErrInvalidRecord = errors.New("invalid record")
)

// IsInputError reports whether err was caused by the caller's request.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidWorkspace) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrUnknownOption)
}

// IsIntegrityError reports whether err was caused by data returned from storage.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrForeignRecord) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidRecord)
}
