package core

import (
	"errors"
	"go/token"
	"reflect"
	"strings"
)

// Exception describes an error attached to an event: the error's type name,
// its message and the frame in which it was logged.
type Exception struct {
	Type     string
	Message  string
	Function string
	Line     int
}

// NewException captures err together with the frame skip levels above the
// caller. It returns nil for a nil error.
func NewException(err error, skip int) *Exception {
	if err == nil {
		return nil
	}
	caller := GetCaller(skip + 1)
	return &Exception{
		Type:     ErrorTypeName(err),
		Message:  err.Error(),
		Function: caller.Function,
		Line:     caller.Line,
	}
}

// TopLevel reports whether the exception was raised outside any named
// function, i.e. in package initialization.
func (e *Exception) TopLevel() bool {
	return IsTopLevelFunction(e.Function)
}

// IsTopLevelFunction reports whether a runtime function name denotes
// package-level code rather than a named function.
func IsTopLevelFunction(name string) bool {
	if name == "" || name == "<module>" {
		return true
	}
	short := name
	if i := strings.LastIndexByte(short, '/'); i >= 0 {
		short = short[i+1:]
	}
	if i := strings.IndexByte(short, '.'); i >= 0 {
		short = short[i+1:]
	}
	// package initializers appear as "init" or "init.0", "init.1", ...
	return short == "init" || strings.HasPrefix(short, "init.")
}

// ErrorTypeName returns the bare type name of err's dynamic type,
// without pointer markers or package qualifier.
//
// Unexported standard library wrappers such as the values made by
// errors.New and fmt.Errorf say nothing to a reader, so the unwrap chain
// is followed to the first exported or non-standard type. When there is
// none the name is "error".
func ErrorTypeName(err error) string {
	for err != nil {
		t := reflect.TypeOf(err)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if name := t.Name(); name != "" && (token.IsExported(name) || !isStdPackage(t.PkgPath())) {
			return name
		}
		err = errors.Unwrap(err)
	}
	return "error"
}

// isStdPackage reports whether path looks like a standard library import
// path: no dot in its first element.
func isStdPackage(path string) bool {
	if path == "" || path == "main" {
		return false
	}
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
