// Package cryptox holds the key material helpers shared by the token
// tooling: generating signing keys for a JWS algorithm and moving them in
// and out of PEM.
//
// The gate itself only ever sees public keys through the JWKS. Private keys
// show up in the test identity provider and in local tooling that needs to
// mint a token shaped like the provider's.
package cryptox
