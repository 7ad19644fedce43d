// Package httputil provides HTTP-related vocabulary and helpers shared by the
// document loader, the navigation model and the renderer.
package httputil

import "slices"

// HTTP Method Constants
//
// These are the path item keys that denote operations. Matching is
// case-sensitive: OpenAPI path item keys are lowercase.
const (
	MethodGet     = "get"
	MethodPost    = "post"
	MethodPut     = "put"
	MethodDelete  = "delete"
	MethodPatch   = "patch"
	MethodOptions = "options"
	MethodHead    = "head"
)

// operationMethods is the fixed operation vocabulary.
var operationMethods = []string{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodPatch,
	MethodOptions,
	MethodHead,
}

// OperationMethods returns the fixed operation vocabulary.
// The returned slice is a copy and may be modified by the caller.
func OperationMethods() []string {
	return slices.Clone(operationMethods)
}

// IsOperationToken reports whether token is one of get, post, put, delete,
// patch, options or head. Uppercase variants and metadata keys such as
// "parameters" or "summary" are not operation tokens.
func IsOperationToken(token string) bool {
	switch token {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodOptions, MethodHead:
		return true
	default:
		return false
	}
}

// Status code classes used when presenting responses.
const (
	StatusClassInformational = "1xx"
	StatusClassSuccess       = "2xx"
	StatusClassRedirect      = "3xx"
	StatusClassClientError   = "4xx"
	StatusClassServerError   = "5xx"
	StatusClassDefault       = "default"
	StatusClassOther         = "other"
)

// StatusClass returns the class of a response key such as "200", "4XX" or
// "default". Keys that are not status codes return StatusClassOther.
func StatusClass(code string) string {
	if code == "default" {
		return StatusClassDefault
	}
	if len(code) != 3 {
		return StatusClassOther
	}
	for _, c := range code[1:] {
		if (c < '0' || c > '9') && c != 'X' && c != 'x' {
			return StatusClassOther
		}
	}
	switch code[0] {
	case '1':
		return StatusClassInformational
	case '2':
		return StatusClassSuccess
	case '3':
		return StatusClassRedirect
	case '4':
		return StatusClassClientError
	case '5':
		return StatusClassServerError
	default:
		return StatusClassOther
	}
}
