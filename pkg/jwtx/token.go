package jwtx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Header is the JOSE header of a compact JWT.
type Header struct {
	Alg string `json:"alg"`
	Kid string `json:"kid,omitempty"`
	Typ string `json:"typ,omitempty"`
}

// Token is a compact JWT split into its parts. Nothing in it has been
// verified yet.
type Token struct {
	Raw          string
	Header       Header
	Payload      json.RawMessage
	Signature    []byte
	SigningInput string
}

// Parse splits and decodes a compact JWT without making any trust decision.
// Any syntax problem is reported as ErrMalformed.
func Parse(raw string) (*Token, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformed)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformed, len(parts))
	}
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: segment %d is empty", ErrMalformed, i)
		}
	}

	headerJSON, err := decodeJSONSegment(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}

	payload, err := decodeJSONSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrMalformed, err)
	}

	sig, err := decodeSegment(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %w", ErrMalformed, err)
	}

	return &Token{
		Raw:          raw,
		Header:       header,
		Payload:      payload,
		Signature:    sig,
		SigningInput: parts[0] + "." + parts[1],
	}, nil
}

// decodeJSONSegment decodes a base64url segment and checks it holds a JSON
// object.
func decodeJSONSegment(seg string) ([]byte, error) {
	b, err := decodeSegment(seg)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, errors.New("not a JSON object")
	}
	return trimmed, nil
}
