package domain

import "errors"

var (
	// Money errors
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeResult = errors.New("money operation would result in negative amount")

	// Account errors
	ErrInvalidAccountNumber  = errors.New("account number must be exactly 10 digits")
	ErrSameAccountNotAllowed = errors.New("cannot transfer to the same account")

	// Fee errors
	ErrNoApplicableFeePolicy = errors.New("no applicable fee policy for the provided dates")
	ErrPolicyNotApplicable   = errors.New("fee policy not applicable for given dates")

	// Transfer errors
	ErrInvalidTransferDate = errors.New("transfer date cannot be before schedule date")
	ErrInvalidTransferData = errors.New("invalid transfer data")
	ErrTransferNotFound    = errors.New("transfer not found")
)

// Error codes exposed to clients.
const (
	CodeInvalidAmount         = "TRANSFER.INVALID_AMOUNT"
	CodeNegativeResult        = "MONEY.NEGATIVE_RESULT"
	CodeInvalidAccountNumber  = "ACCOUNT.INVALID_NUMBER"
	CodeSameAccountNotAllowed = "ACCOUNT.SAME_ACCOUNT_NOT_ALLOWED"
	CodeNoApplicableFeePolicy = "FEE.NO_APPLICABLE_POLICY"
	CodePolicyNotApplicable   = "FEE.POLICY_NOT_APPLICABLE"
	CodeInvalidTransferDate   = "TRANSFER.INVALID_DATE"
	CodeInvalidTransferData   = "TRANSFER.INVALID_DATA"
	CodeTransferNotFound      = "TRANSFER.NOT_FOUND"
	CodeInternal              = "INTERNAL"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidAmount, CodeInvalidAmount},
	{ErrNegativeResult, CodeNegativeResult},
	{ErrInvalidAccountNumber, CodeInvalidAccountNumber},
	{ErrSameAccountNotAllowed, CodeSameAccountNotAllowed},
	{ErrNoApplicableFeePolicy, CodeNoApplicableFeePolicy},
	{ErrPolicyNotApplicable, CodePolicyNotApplicable},
	{ErrInvalidTransferDate, CodeInvalidTransferDate},
	{ErrInvalidTransferData, CodeInvalidTransferData},
	{ErrTransferNotFound, CodeTransferNotFound},
}

// ErrorCode returns the client-facing code for a domain error, or CodeInternal.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}

	return CodeInternal
}

// IsDomainError reports whether err carries one of the domain error kinds.
func IsDomainError(err error) bool {
	return ErrorCode(err) != CodeInternal
}
