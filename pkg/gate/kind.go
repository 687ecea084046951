package gate

import "net/http"

// Kind classifies why a request was turned away.
type Kind int

const (
	KindMissingHeader Kind = iota + 1
	KindInvalidHeaderFormat
	KindMalformedToken
	KindUnknownKey
	KindInvalidSignature
	KindExpired
	KindNotYetValid
	KindInvalidIssuer
	KindInvalidAudience
	KindKeyStoreUnavailable
	KindMissingPermission
)

var kindNames = map[Kind]string{
	KindMissingHeader:       "missing_header",
	KindInvalidHeaderFormat: "invalid_header_format",
	KindMalformedToken:      "malformed_token",
	KindUnknownKey:          "unknown_key",
	KindInvalidSignature:    "invalid_signature",
	KindExpired:             "expired",
	KindNotYetValid:         "not_yet_valid",
	KindInvalidIssuer:       "invalid_issuer",
	KindInvalidAudience:     "invalid_audience",
	KindKeyStoreUnavailable: "key_store_unavailable",
	KindMissingPermission:   "missing_permission",
}

// String is the fine-grained name used in logs.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Status is the HTTP status for the kind. Only an authenticated caller
// lacking a permission gets 403, everything else is 401.
func (k Kind) Status() int {
	if k == KindMissingPermission {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

// Message is the code shown to clients. It is coarser than String so a
// response does not tell an attacker which check their token failed.
func (k Kind) Message() string {
	switch k {
	case KindMissingHeader:
		return "authorization_header_missing"
	case KindExpired:
		return "token_expired"
	case KindNotYetValid, KindInvalidIssuer, KindInvalidAudience:
		return "invalid_claims"
	case KindMissingPermission:
		return "unauthorized"
	default:
		return "invalid_header"
	}
}
