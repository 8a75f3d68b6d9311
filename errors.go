package parcels

import "github.com/pkg/errors"

// Error kinds surfaced by the pipeline. Callers classify with errors.Is; none of them are retryable.
var (
	// ErrConfig is a configured column that is absent from the input schema.
	ErrConfig = errors.New("configuration mismatch")
	// ErrFlagToken is a flag value outside the truthy/numeric/missing vocabulary.
	ErrFlagToken = errors.New("unrecognized flag token")
	// ErrDate is a transaction date that is absent or cannot be parsed.
	ErrDate = errors.New("unparseable transaction date")
	// ErrKeyMismatch is a key set or period set that differs between two prediction tables.
	ErrKeyMismatch = errors.New("key set mismatch")
	// ErrSchema is a misuse of the table core: duplicate names, length or type mismatch.
	ErrSchema = errors.New("schema error")
)
