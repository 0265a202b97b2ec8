package csp

import "fmt"

// ConstructionError reports a programmer mistake made while building a
// CSP: a reference to a variable handle the CSP never allocated, an
// empty domain, or a statement with the wrong arity. Construction
// errors are reported immediately at the offending call and leave the
// CSP in its prior state.
type ConstructionError struct {
	msg string
}

func (e *ConstructionError) Error() string { return e.msg }

func errorf(format string, args ...interface{}) *ConstructionError {
	return &ConstructionError{msg: fmt.Sprintf("csp: "+format, args...)}
}
