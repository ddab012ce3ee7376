package formatter

import (
	"go/build"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/philipp01105/ttylog/core"
)

const (
	shellCaller = "shell"
	ellipsis    = "..."
)

// rootMarkers are path fragments after which a source path is already
// relative to a package root.
var rootMarkers = func() []string {
	markers := []string{"/pkg/mod/"}
	if root := build.Default.GOROOT; root != "" {
		markers = append(markers, strings.TrimSuffix(filepath.ToSlash(root), "/")+"/src/")
	}
	return markers
}()

// NormalizeCaller turns a source location into a dotted, package-like
// name such as "internal.server.handler.Server.Handle()". base is stripped
// from the front of file when no package-root marker matches.
func NormalizeCaller(file, function, base string) string {
	if file == core.ShellFile {
		return shellCaller
	}

	p := filepath.ToSlash(file)
	stripped := false
	for _, marker := range rootMarkers {
		if i := strings.LastIndex(p, marker); i >= 0 {
			p = p[i+len(marker):]
			stripped = true
			break
		}
	}
	if !stripped && base != "" {
		b := strings.TrimSuffix(filepath.ToSlash(base), "/")
		if rest, ok := strings.CutPrefix(p, b+"/"); ok {
			p = rest
		}
	}

	p = strings.TrimPrefix(p, "/")
	p = strings.TrimSuffix(p, path.Ext(p))
	p = stripModuleVersions(p)
	p = strings.ReplaceAll(p, "/", ".")

	if !core.IsTopLevelFunction(function) {
		if fn := FunctionName(function); fn != "" {
			p += "." + fn + "()"
		}
	}
	return p
}

// stripModuleVersions drops "@v1.2.3" suffixes from module cache paths.
func stripModuleVersions(p string) string {
	if !strings.Contains(p, "@") {
		return p
	}
	parts := strings.Split(p, "/")
	for i, part := range parts {
		if at := strings.IndexByte(part, '@'); at > 0 {
			parts[i] = part[:at]
		}
	}
	return strings.Join(parts, "/")
}

// Truncate keeps at most the last limit bytes of s behind an ellipsis
// when s is longer than limit. The cut never splits a UTF-8 sequence.
// A limit of zero or less disables truncation.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	i := len(s) - limit
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return ellipsis + s[i:]
}

// FunctionName shortens a runtime function name: the package path is
// removed, pointer receivers lose their "(*T)" decoration and anonymous
// closures become "lambda".
//
//	github.com/acme/app/server.(*Server).Handle.func1 -> Server.Handle.lambda
func FunctionName(full string) string {
	name := full
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	name = stripTypeParams(name)

	parts := strings.Split(name, ".")
	out := parts[:0]
	for _, part := range parts {
		switch {
		case part == "" || part == "glob" || isDigits(part):
			continue
		case isClosure(part):
			part = "lambda"
		case strings.HasPrefix(part, "(*") && strings.HasSuffix(part, ")"):
			part = part[2 : len(part)-1]
		case strings.HasPrefix(part, "(") && strings.HasSuffix(part, ")"):
			part = part[1 : len(part)-1]
		}
		out = append(out, part)
	}
	return strings.Join(out, ".")
}

func stripTypeParams(name string) string {
	for {
		open := strings.IndexByte(name, '[')
		if open < 0 {
			return name
		}
		end := strings.IndexByte(name[open:], ']')
		if end < 0 {
			return name[:open]
		}
		name = name[:open] + name[open+end+1:]
	}
}

func isClosure(part string) bool {
	rest, ok := strings.CutPrefix(part, "func")
	return ok && rest != "" && isDigits(rest)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
