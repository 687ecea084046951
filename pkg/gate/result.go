package gate

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
)

// Result is the outcome of Authorize: either Verified or Denied.
type Result interface {
	isResult()
}

// Verified carries the claims of a token that passed every check and the
// permission set the decision was made against.
type Verified struct {
	Claims      *jwtx.Claims
	Permissions []string
}

// Denied says why the request must not reach the handler.
type Denied struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (Verified) isResult() {}
func (Denied) isResult()   {}

// Deny builds a Denied for kind with its status and public message filled in.
func Deny(kind Kind, err error) Denied {
	return Denied{
		Kind:    kind,
		Status:  kind.Status(),
		Message: kind.Message(),
		Err:     err,
	}
}

func (d Denied) Error() string {
	if d.Err == nil {
		return d.Kind.String()
	}
	return fmt.Sprintf("%s: %v", d.Kind, d.Err)
}

func (d Denied) Unwrap() error { return d.Err }

// KindOf maps a verification error onto the denial taxonomy.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, jwtx.ErrKeyStoreUnavailable):
		return KindKeyStoreUnavailable
	case errors.Is(err, jwtx.ErrMalformed), errors.Is(err, jwtx.ErrInvalidClaim):
		return KindMalformedToken
	case errors.Is(err, jwtx.ErrUnknownKID):
		return KindUnknownKey
	case errors.Is(err, jwtx.ErrAlgMismatch), errors.Is(err, jwtx.ErrInvalidSig):
		return KindInvalidSignature
	case errors.Is(err, jwtx.ErrExpired):
		return KindExpired
	case errors.Is(err, jwtx.ErrNotYetValid):
		return KindNotYetValid
	case errors.Is(err, jwtx.ErrIssuer):
		return KindInvalidIssuer
	case errors.Is(err, jwtx.ErrAudience):
		return KindInvalidAudience
	case errors.Is(err, ErrMissingPermission):
		return KindMissingPermission
	default:
		// Anything unexpected is still an authentication failure.
		return KindInvalidSignature
	}
}
