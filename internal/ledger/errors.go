package ledger

import "fmt"

// InvalidAppendError rejects an append before anything is sealed.
type InvalidAppendError struct {
	Reason string
}

func (e *InvalidAppendError) Error() string {
	return fmt.Sprintf("invalid append: %s", e.Reason)
}

func IsInvalidAppendError(err error) bool {
	_, ok := err.(*InvalidAppendError)
	return ok
}

// TamperError reports the first block that failed the validation pass.
type TamperError struct {
	Index  uint64
	Reason string
}

func (e *TamperError) Error() string {
	return fmt.Sprintf("TAMPERING DETECTED at block %d: %s", e.Index, e.Reason)
}

func IsTamperError(err error) bool {
	_, ok := err.(*TamperError)
	return ok
}

func AsTamperError(err error) *TamperError {
	if te, ok := err.(*TamperError); ok {
		return te
	}
	return nil
}
