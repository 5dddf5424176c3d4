package client

import (
	"fmt"
	"strings"
)

// APIError is returned for every failed call. The message is deliberately
// generic: "unable to <verb> <noun>".
type APIError struct {
	Verb   string
	Noun   string
	Status int // 0 when the request never got a response
	Err    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unable to %s %s", e.Verb, e.Noun)
}

func (e *APIError) Unwrap() error { return e.Err }

// Notice is the message shown to a CMS user.
func (e *APIError) Notice() string {
	msg := e.Error()
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func failure(verb, noun string, status int, err error) *APIError {
	return &APIError{Verb: verb, Noun: noun, Status: status, Err: err}
}
