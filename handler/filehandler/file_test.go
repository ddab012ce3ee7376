package filehandler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/philipp01105/ttylog/core"
	"github.com/philipp01105/ttylog/formatter"
	"github.com/philipp01105/ttylog/handler"
)

var messageOnly = formatter.NewTextFormatter(formatter.Config{Format: "{message}"})

// line returns a 40 byte record including the newline.
func line(i int) *core.Entry {
	return &core.Entry{
		Level:   core.InfoLevel,
		Message: fmt.Sprintf("line-%02d %s", i, strings.Repeat("x", 31)),
	}
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := strings.TrimSuffix(string(data), "\n")
	if s == "" {
		return nil
	}
	out := strings.Split(s, "\n")
	for i, l := range out {
		out[i] = l[:len("line-00")]
	}
	return out
}

func TestFileHandler_Write(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "nested", "app.log")

	h, err := NewFileHandler(FileConfig{Filename: filename, Formatter: messageOnly})
	require.NoError(t, err)

	require.NoError(t, h.Handle(line(1)))
	require.NoError(t, h.Handle(line(2)))

	// visible without closing
	assert.Equal(t, []string{"line-01", "line-02"}, readLines(t, filename))
	assert.Equal(t, int64(80), h.Size())
	assert.Equal(t, filename, h.Filename())

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	assert.ErrorIs(t, h.Handle(line(3)), ErrClosed)
}

func TestFileHandler_IsNotRotator(t *testing.T) {
	h, err := NewFileHandler(FileConfig{Filename: filepath.Join(t.TempDir(), "app.log"), Formatter: messageOnly})
	require.NoError(t, err)
	defer h.Close()

	_, ok := any(h).(handler.Rotator)
	assert.False(t, ok, "a plain file handler must not be rolled over")
}

func TestFileHandler_EmptyFilename(t *testing.T) {
	_, err := NewFileHandler(FileConfig{})
	assert.ErrorIs(t, err, ErrEmptyFilename)
	_, err = NewRotatingFileHandler(RotatingConfig{})
	assert.ErrorIs(t, err, ErrEmptyFilename)
	_, err = NewTimedRotatingFileHandler(TimedConfig{Interval: time.Hour})
	assert.ErrorIs(t, err, ErrEmptyFilename)
	_, err = NewArchiveHandler(ArchiveConfig{})
	assert.ErrorIs(t, err, ErrEmptyFilename)
}

func TestFileHandler_Modes(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(filename, []byte("line-00 old\n"), 0644))

	h, err := NewFileHandler(FileConfig{Filename: filename, Formatter: messageOnly, Mode: ModeAppend})
	require.NoError(t, err)
	require.NoError(t, h.Handle(line(1)))
	require.NoError(t, h.Close())
	assert.Equal(t, []string{"line-00", "line-01"}, readLines(t, filename))

	h, err = NewFileHandler(FileConfig{Filename: filename, Formatter: messageOnly, Mode: ModeTruncate})
	require.NoError(t, err)
	require.NoError(t, h.Handle(line(2)))
	require.NoError(t, h.Close())
	assert.Equal(t, []string{"line-02"}, readLines(t, filename))
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeAppend, "a": ModeAppend, "Append": ModeAppend, "w": ModeTruncate, "truncate": ModeTruncate} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("rw")
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, "truncate", ModeTruncate.String())
}

func TestFileHandler_LevelFilter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFileHandler(FileConfig{Filename: filename, Formatter: messageOnly, Level: core.WarnLevel})
	require.NoError(t, err)
	defer h.Close()

	e := line(1)
	require.NoError(t, h.Handle(e))
	e = line(2)
	e.Level = core.ErrorLevel
	require.NoError(t, h.Handle(e))

	assert.Equal(t, []string{"line-02"}, readLines(t, filename))
	assert.Equal(t, uint64(1), h.Stats().Dropped)
}

func TestRotatingFileHandler_Backups(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "log")

	h, err := NewRotatingFileHandler(RotatingConfig{
		FileConfig: FileConfig{Filename: filename, Formatter: messageOnly},
		MaxBytes:   100,
		Backups:    2,
	})
	require.NoError(t, err)
	defer h.Close()

	for i := 1; i <= 6; i++ {
		require.NoError(t, h.Handle(line(i)))
	}
	// one rotation so far
	assert.Equal(t, []string{"log", "log.1"}, listFiles(t, dir))
	assert.Equal(t, []string{"line-01", "line-02", "line-03"}, readLines(t, filename+".1"))

	require.NoError(t, h.Handle(line(7)))
	assert.Equal(t, []string{"log", "log.1", "log.2"}, listFiles(t, dir))
	assert.Equal(t, []string{"line-01", "line-02", "line-03"}, readLines(t, filename+".2"))
	assert.Equal(t, []string{"line-04", "line-05", "line-06"}, readLines(t, filename+".1"))
	assert.Equal(t, []string{"line-07"}, readLines(t, filename))

	for i := 8; i <= 10; i++ {
		require.NoError(t, h.Handle(line(i)))
	}
	// third rotation discards the oldest backup
	assert.Equal(t, []string{"log", "log.1", "log.2"}, listFiles(t, dir))
	assert.Equal(t, []string{"line-04", "line-05", "line-06"}, readLines(t, filename+".2"))
	assert.Equal(t, []string{"line-07", "line-08", "line-09"}, readLines(t, filename+".1"))
	assert.Equal(t, []string{"line-10"}, readLines(t, filename))
	assert.Equal(t, uint64(3), h.Stats().Rotations)
}

func TestRotatingFileHandler_ExistingFileCounts(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "log")
	require.NoError(t, os.WriteFile(filename, []byte(strings.Repeat("z", 120)), 0644))

	h, err := NewRotatingFileHandler(RotatingConfig{
		FileConfig: FileConfig{Filename: filename, Formatter: messageOnly},
		MaxBytes:   100,
		Backups:    1,
	})
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Handle(line(1)))
	assert.Equal(t, []string{"log", "log.1"}, listFiles(t, dir))
	assert.Equal(t, []string{"line-01"}, readLines(t, filename))
}

func TestRotatingFileHandler_NoBackupsTruncates(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "log")

	h, err := NewRotatingFileHandler(RotatingConfig{
		FileConfig: FileConfig{Filename: filename, Formatter: messageOnly},
		MaxBytes:   80,
	})
	require.NoError(t, err)
	defer h.Close()

	for i := 1; i <= 3; i++ {
		require.NoError(t, h.Handle(line(i)))
	}
	assert.Equal(t, []string{"log"}, listFiles(t, dir))
	assert.Equal(t, []string{"line-03"}, readLines(t, filename))
}

func TestRotatingFileHandler_ZeroNeverRotates(t *testing.T) {
	dir := t.TempDir()
	h, err := NewRotatingFileHandler(RotatingConfig{
		FileConfig: FileConfig{Filename: filepath.Join(dir, "log"), Formatter: messageOnly},
		Backups:    3,
	})
	require.NoError(t, err)
	defer h.Close()

	for i := 1; i <= 20; i++ {
		require.NoError(t, h.Handle(line(i)))
	}
	assert.Equal(t, []string{"log"}, listFiles(t, dir))
	assert.Equal(t, int64(800), h.Size())
}

func TestRotatingFileHandler_ManualRotate(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "log")
	h, err := NewRotatingFileHandler(RotatingConfig{
		FileConfig: FileConfig{Filename: filename, Formatter: messageOnly},
		MaxBytes:   1 << 20,
		Backups:    2,
	})
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Handle(line(1)))
	require.NoError(t, h.Rotate())
	require.NoError(t, h.Handle(line(2)))

	assert.Equal(t, []string{"line-01"}, readLines(t, filename+".1"))
	assert.Equal(t, []string{"line-02"}, readLines(t, filename))

	require.NoError(t, h.Close())
	assert.ErrorIs(t, h.Rotate(), ErrClosed)
}

func TestRotatingFileHandler_RotationFailure(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "log")

	// a non-empty directory where the oldest backup should be
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "log.1", "blocker"), 0755))

	h, err := NewRotatingFileHandler(RotatingConfig{
		FileConfig: FileConfig{Filename: filename, Formatter: messageOnly},
		MaxBytes:   40,
		Backups:    1,
	})
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Handle(line(1)))
	err = h.Handle(line(2))
	require.Error(t, err)
	assert.Equal(t, uint64(1), h.Stats().Errors)
	assert.Equal(t, []string{"line-01"}, readLines(t, filename))

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "log.1")))
	require.NoError(t, h.Handle(line(3)))
	assert.Equal(t, []string{"line-01"}, readLines(t, filename+".1"))
	assert.Equal(t, []string{"line-03"}, readLines(t, filename))
}

func TestRotatingFileHandler_Concurrent(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "log")
	h, err := NewRotatingFileHandler(RotatingConfig{
		FileConfig: FileConfig{Filename: filename, Formatter: messageOnly},
		MaxBytes:   400,
		Backups:    100,
	})
	require.NoError(t, err)

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := 0; i < 50; i++ {
				if err := h.Handle(line(i)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.NoError(t, h.Close())

	total := 0
	for _, name := range listFiles(t, dir) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(data), 400, name)
		for _, l := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
			assert.Len(t, l, 39)
			total++
		}
	}
	assert.Equal(t, 400, total)
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTimedRotatingFileHandler_Interval(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "log")
	clock := &fakeClock{now: time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)}

	h, err := NewTimedRotatingFileHandler(TimedConfig{
		FileConfig: FileConfig{Filename: filename, Formatter: messageOnly},
		Interval:   time.Hour,
		Backups:    2,
		Clock:      clock.Now,
	})
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, clock.now.Add(time.Hour), h.NextRotation())

	require.NoError(t, h.Handle(line(1)))
	clock.Advance(59 * time.Minute)
	require.NoError(t, h.Handle(line(2)))
	assert.Equal(t, []string{"log"}, listFiles(t, dir))

	clock.Advance(time.Minute)
	require.NoError(t, h.Handle(line(3)))
	assert.Equal(t, []string{"log", "log.1"}, listFiles(t, dir))
	assert.Equal(t, []string{"line-01", "line-02"}, readLines(t, filename+".1"))

	for i := 4; i <= 6; i++ {
		clock.Advance(time.Hour)
		require.NoError(t, h.Handle(line(i)))
	}
	assert.Equal(t, []string{"log", "log.1", "log.2"}, listFiles(t, dir))
	assert.Equal(t, []string{"line-04"}, readLines(t, filename+".2"))
	assert.Equal(t, []string{"line-05"}, readLines(t, filename+".1"))
	assert.Equal(t, []string{"line-06"}, readLines(t, filename))
}

func TestTimedRotatingFileHandler_Schedule(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "log")
	clock := &fakeClock{now: time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)}

	h, err := NewTimedRotatingFileHandler(TimedConfig{
		FileConfig: FileConfig{Filename: filename, Formatter: messageOnly},
		Schedule:   "@hourly",
		Backups:    3,
		Clock:      clock.Now,
	})
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, time.Date(2024, 3, 9, 11, 0, 0, 0, time.UTC), h.NextRotation())

	require.NoError(t, h.Handle(line(1)))
	clock.now = time.Date(2024, 3, 9, 10, 59, 59, 0, time.UTC)
	require.NoError(t, h.Handle(line(2)))
	assert.Equal(t, []string{"log"}, listFiles(t, dir))

	clock.now = time.Date(2024, 3, 9, 11, 0, 0, 0, time.UTC)
	require.NoError(t, h.Handle(line(3)))
	assert.Equal(t, []string{"line-01", "line-02"}, readLines(t, filename+".1"))
	assert.Equal(t, time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC), h.NextRotation())
}

func TestTimedRotatingFileHandler_InvalidSchedule(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "log")
	tests := map[string]TimedConfig{
		"none":    {},
		"both":    {Interval: time.Hour, Schedule: "@daily"},
		"garbage": {Schedule: "every tuesday"},
	}
	for name, cfg := range tests {
		cfg.Filename = filename
		_, err := NewTimedRotatingFileHandler(cfg)
		assert.ErrorIs(t, err, ErrInvalidSchedule, name)
	}
}

func TestArchiveHandler(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "app.log")

	h, err := NewArchiveHandler(ArchiveConfig{
		FileConfig: FileConfig{Filename: filename, Formatter: messageOnly},
		MaxSizeMB:  1,
		MaxBackups: 3,
	})
	require.NoError(t, err)

	require.NoError(t, h.Handle(line(1)))
	require.NoError(t, h.Rotate())
	require.NoError(t, h.Handle(line(2)))

	assert.Equal(t, []string{"line-02"}, readLines(t, filename))
	archives, err := filepath.Glob(filepath.Join(dir, "app-*.log"))
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, []string{"line-01"}, readLines(t, archives[0]))

	s := h.Stats()
	assert.Equal(t, uint64(2), s.Processed)
	assert.Equal(t, uint64(1), s.Rotations)

	require.NoError(t, h.Close())
	assert.ErrorIs(t, h.Handle(line(3)), ErrClosed)
}
