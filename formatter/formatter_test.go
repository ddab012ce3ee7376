package formatter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/philipp01105/ttylog/core"
)

var escapes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripEscapes(s string) string {
	return escapes.ReplaceAllString(s, "")
}

func warnEntry() *core.Entry {
	return &core.Entry{
		Time:    time.Date(2024, 3, 9, 14, 5, 7, 42*int(time.Millisecond), time.UTC),
		Level:   core.WarnLevel,
		Message: "disk %d%% full",
		Args:    []any{91},
		Thread:  "main",
		PID:     1234,
		Caller: core.CallerInfo{
			File:     "/srv/app/cmd/api/main.go",
			Function: "main.main",
			Line:     7,
			Defined:  true,
		},
	}
}

func TestTextFormatter_DefaultFormat(t *testing.T) {
	f := NewTextFormatter(Config{BaseDir: "/srv/app"})

	got, err := f.Render(warnEntry(), false)
	require.NoError(t, err)
	assert.Equal(t,
		"Mar 09, 2024 14:05:07.042     WARN     1234 [            main]            cmd.api.main.main():007 - disk 91% full",
		got)
	assert.Equal(t, 27, f.PathLimit())
}

func TestTextFormatter_ColorIsOnlyDecoration(t *testing.T) {
	f := NewTextFormatter(Config{BaseDir: "/srv/app"})

	plain, err := f.Render(warnEntry(), false)
	require.NoError(t, err)
	colored, err := f.Render(warnEntry(), true)
	require.NoError(t, err)

	assert.NotContains(t, plain, "\x1b[")
	assert.Contains(t, colored, "\x1b[38;5;148m    WARN\x1b[0m")
	assert.Equal(t, plain, stripEscapes(colored))
}

func TestTextFormatter_ColorEveryLevel(t *testing.T) {
	f := NewTextFormatter(Config{Format: "{level} - {message}"})
	for _, l := range core.Levels() {
		e := warnEntry()
		e.Level = l
		e.Message = "level " + l.String() + " in body"
		e.Args = nil

		colored, err := f.Render(e, true)
		require.NoError(t, err, l)
		plain, err := f.Render(e, false)
		require.NoError(t, err, l)

		seq, err := LevelColor(l)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(colored, seq+l.String()+"\x1b[0m"), colored)
		// the level name inside the message stays uncoloured
		assert.True(t, strings.HasSuffix(colored, " - level "+l.String()+" in body"), colored)
		assert.Equal(t, plain, stripEscapes(colored))
	}
}

func TestTextFormatter_DisableColor(t *testing.T) {
	f := NewTextFormatter(Config{DisableColor: true})
	out, err := f.Render(warnEntry(), true)
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[")
}

func TestTextFormatter_UnknownLevel(t *testing.T) {
	f := NewTextFormatter(Config{Format: "{level}"})
	e := warnEntry()
	e.Level = core.Level(42)

	_, err := f.Render(e, true)
	require.ErrorIs(t, err, core.ErrUnknownLevel)

	out, err := f.Render(e, false)
	require.NoError(t, err)
	assert.Equal(t, "Level(42)", out)
}

func TestTextFormatter_ColorAttrs(t *testing.T) {
	f := NewTextFormatter(Config{
		Format:     "{level} {caller}: {message}",
		BaseDir:    "/srv/app",
		ColorAttrs: map[string]string{AttrLevel: "", AttrCaller: "aqua"},
	})
	out, err := f.Render(warnEntry(), true)
	require.NoError(t, err)
	assert.Equal(t,
		"\x1b[38;5;148mWARN\x1b[0m \x1b[38;5;14mcmd.api.main.main()\x1b[0m: disk 91% full",
		out)

	bad := NewTextFormatter(Config{ColorAttrs: map[string]string{AttrLevel: "ultraviolet"}})
	_, err = bad.Render(warnEntry(), true)
	require.ErrorIs(t, err, ErrUnknownColor)
	_, err = bad.Render(warnEntry(), false)
	require.NoError(t, err)
}

func TestTextFormatter_BadTemplate(t *testing.T) {
	templates := []string{
		"{level} {nope}",
		"{level",
		"level}",
		"{}",
		"{line:x}",
		"{line:-}",
	}
	for _, tmpl := range templates {
		f := NewTextFormatter(Config{Format: tmpl})
		require.ErrorIs(t, f.Err(), ErrBadTemplate, tmpl)

		_, err := f.Render(warnEntry(), false)
		assert.ErrorIs(t, err, ErrBadTemplate, tmpl)
		_, err = f.Format(warnEntry())
		assert.ErrorIs(t, err, ErrBadTemplate, tmpl)
	}
}

func TestTextFormatter_TemplateSyntax(t *testing.T) {
	tests := map[string]string{
		"{{{level}}}":              "{WARN}",
		"{level:-8}|":              "WARN    |",
		"{level:8}|":               "    WARN|",
		"{line:05}":                "00007",
		"{line:5}":                 "    7",
		"{name} {file} {function}": "root main.go main",
		"{level:2}":                "WARN",
	}
	for tmpl, want := range tests {
		f := NewTextFormatter(Config{Format: tmpl})
		got, err := f.Render(warnEntry(), false)
		require.NoError(t, err, tmpl)
		assert.Equal(t, want, got, tmpl)
	}
}

func TestTextFormatter_TrailingNewlines(t *testing.T) {
	f := NewTextFormatter(Config{Format: "{message}"})
	e := warnEntry()
	e.Message = "line one\nline two\n\n"
	e.Args = nil

	got, err := f.Render(e, false)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)

	b, err := f.Format(e)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(b))
}

func TestTextFormatter_ShellCaller(t *testing.T) {
	f := NewTextFormatter(Config{Format: "{caller}"})
	for _, fn := range []string{"", "main.main", "pkg.(*T).Run.func3"} {
		e := warnEntry()
		e.Caller = core.CallerInfo{File: core.ShellFile, Function: fn, Line: 1}
		got, err := f.Render(e, false)
		require.NoError(t, err)
		assert.Equal(t, "shell", got)
	}
}

func TestTextFormatter_CallerTruncation(t *testing.T) {
	limits := []int{1, 5, 10, 27, 60}
	dirs := []string{"a", "internal", "very_long_directory_name", "x"}
	for _, limit := range limits {
		f := NewTextFormatter(Config{Format: "{caller}", BaseDir: "/srv/app", PathLimit: limit})
		for depth := 1; depth <= 12; depth++ {
			parts := make([]string, 0, depth)
			for i := 0; i < depth; i++ {
				parts = append(parts, dirs[i%len(dirs)])
			}
			file := "/srv/app/" + strings.Join(parts, "/") + "/handler.go"
			fn := "github.com/acme/app/pkg.(*Server).Handle"

			e := warnEntry()
			e.Caller = core.CallerInfo{File: file, Function: fn, Line: 3}
			got, err := f.Render(e, false)
			require.NoError(t, err)

			full := NormalizeCaller(file, fn, "/srv/app")
			assert.LessOrEqual(t, len(got), limit+len(ellipsis))
			if len(full) > limit {
				assert.True(t, strings.HasPrefix(got, ellipsis))
				assert.True(t, strings.HasSuffix(full, strings.TrimPrefix(got, ellipsis)))
			} else {
				assert.Equal(t, full, got)
			}
		}
	}
}

func TestTextFormatter_PathLimitFromTemplate(t *testing.T) {
	assert.Equal(t, 37, NewTextFormatter(Config{Format: "{caller:-40}"}).PathLimit())
	assert.Equal(t, DefaultPathLimit, NewTextFormatter(Config{Format: "{caller}"}).PathLimit())
	assert.Equal(t, 10, NewTextFormatter(Config{PathLimit: 10}).PathLimit())

	f := NewTextFormatter(Config{Format: "{caller:30}", BaseDir: "/srv/app"})
	e := warnEntry()
	e.Caller.File = "/srv/app/internal/server/handler.go"
	e.Caller.Function = "github.com/acme/app/internal/server.(*Server).Handle"
	got, err := f.Render(e, false)
	require.NoError(t, err)
	assert.Equal(t, "...ver.handler.Server.Handle()", got)
}

func TestTextFormatter_WorkingDirectoryBase(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	f := NewTextFormatter(Config{Format: "{caller}", PathLimit: 200})
	e := warnEntry()
	e.Caller = core.CallerInfo{File: filepath.Join(wd, "jobs", "sync.go"), Function: "example.com/svc/jobs.Run", Line: 1}
	got, err := f.Render(e, false)
	require.NoError(t, err)
	assert.Equal(t, "jobs.sync.Run()", got)
}

func TestTextFormatter_Exception(t *testing.T) {
	f := NewTextFormatter(Config{Format: "{level} - {message}"})

	e := warnEntry()
	e.Level = core.ErrorLevel
	e.Exception = &core.Exception{
		Type:     "ParseError",
		Message:  "unexpected token\nat column 4",
		Function: "github.com/acme/app/config.(*Loader).parse",
		Line:     88,
	}
	got, err := f.Render(e, false)
	require.NoError(t, err)
	assert.Equal(t, "ERROR - ParseError: unexpected token at column 4 in Loader.parse() on line 88", got)

	e.Exception = &core.Exception{Type: "ParseError", Message: "bad", Function: "github.com/acme/app.init.0", Line: 5}
	got, err = f.Render(e, false)
	require.NoError(t, err)
	assert.Equal(t, "ERROR - ParseError: bad on line 5", got)
	assert.NotContains(t, got, " in ")
}

func TestTextFormatter_WithFields(t *testing.T) {
	f := NewTextFormatter(Config{Format: "{message}"})
	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	got, err := f.Render(entry, false)
	require.NoError(t, err)
	assert.Equal(t, "test key1=value1 key2=42", got)
}

func TestTextFormatter_FormatTo(t *testing.T) {
	f := NewTextFormatter(Config{Format: "{level} {message}"})
	var buf bytes.Buffer
	require.NoError(t, f.FormatTo(warnEntry(), &buf))
	assert.Equal(t, "WARN disk 91% full\n", buf.String())

	buf.Reset()
	bad := NewTextFormatter(Config{Format: "{oops}"})
	require.ErrorIs(t, bad.FormatTo(warnEntry(), &buf), ErrBadTemplate)
	assert.Zero(t, buf.Len())
}

func TestTextFormatter_Concurrent(t *testing.T) {
	f := NewTextFormatter(Config{BaseDir: "/srv/app"})
	want, err := f.Render(warnEntry(), true)
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				got, err := f.Render(warnEntry(), true)
				if err != nil {
					return err
				}
				if got != want {
					return fmt.Errorf("render mismatch: %q", got)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.Equal(t, DefaultFormat, Default().Config().Format)
}

func TestFunctionName(t *testing.T) {
	tests := map[string]string{
		"github.com/acme/app/server.(*Server).Handle.func1": "Server.Handle.lambda",
		"main.main":                                         "main",
		"main.main.func2.1":                                 "main.lambda",
		"github.com/acme/app.glob..func1":                   "lambda",
		"github.com/acme/app.Box[...].Get":                  "Box.Get",
		"pkg.T.M":                                           "T.M",
		"":                                                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, FunctionName(in), in)
	}
}

func TestNormalizeCaller(t *testing.T) {
	tests := []struct {
		file, function, base, want string
	}{
		{"/srv/app/internal/db/conn.go", "github.com/acme/app/internal/db.Open", "/srv/app", "internal.db.conn.Open()"},
		{"/srv/app/internal/db/conn.go", "github.com/acme/app/internal/db.init.0", "/srv/app", "internal.db.conn"},
		{"/srv/app/main.go", "", "/srv/app", "main"},
		{"/opt/other/f.go", "x.F", "/srv/app", "opt.other.f.F()"},
		{"/home/u/go/pkg/mod/github.com/acme/lib@v1.2.3/x/y.go", "github.com/acme/lib/x.Do", "/srv/app", "github.com.acme.lib.x.y.Do()"},
		{core.ShellFile, "main.main", "/srv/app", "shell"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCaller(tt.file, tt.function, tt.base), tt.file)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "...6789", Truncate("0123456789", 4))
	assert.Equal(t, "0123456789", Truncate("0123456789", 0))

	// "größe" ends in ö (2 bytes), ß (2 bytes), e
	const umlauts = "app.überprüfung.größe"
	for limit := 1; limit < len(umlauts); limit++ {
		got := Truncate(umlauts, limit)
		assert.True(t, utf8.ValidString(got), "limit %d: %q", limit, got)
		assert.LessOrEqual(t, len(got), limit+3, "limit %d", limit)
		assert.True(t, strings.HasSuffix(umlauts, strings.TrimPrefix(got, "...")), "limit %d", limit)
	}
	assert.Equal(t, "...ße", Truncate(umlauts, 4))
	assert.Equal(t, "...ng.größe", Truncate(umlauts, 10))
}

func BenchmarkTextFormatter_Format(b *testing.B) {
	f := NewTextFormatter(Config{BaseDir: "/srv/app"})
	e := warnEntry()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(e)
	}
}
