package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/wikinews"
	main "github.com/fwojciec/wikinews/cmd/wikinews"
	"github.com/fwojciec/wikinews/fs"
	"github.com/fwojciec/wikinews/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

// story adds a story under the category path of snap.
func story(snap *wikinews.Snapshot, url, text, source string, path ...string) {
	c := snap.Root
	for _, name := range path {
		next := c.Category(name)
		if next == nil {
			next = wikinews.NewCategory()
			c.Set(name, next)
		}
		c = next
	}
	c.Set(url, &wikinews.Story{Text: text, URL: url, Source: source, Date: snap.Date})
}

type testEnv struct {
	deps   *main.Dependencies
	store  *fs.SnapshotService
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newEnv returns dependencies backed by a file store seeded with snaps.
func newEnv(t *testing.T, snaps ...*wikinews.Snapshot) *testEnv {
	t.Helper()
	store := fs.NewSnapshotService(t.TempDir())
	for _, s := range snaps {
		require.NoError(t, store.SaveSnapshot(context.Background(), s))
	}
	env := &testEnv{store: store, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	env.deps = &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    env.stdout,
		Stderr:    env.stderr,
		Config:    main.DefaultConfig(),
		Snapshots: store,
	}
	return env
}

func (e *testEnv) load(t *testing.T, d int) *wikinews.Snapshot {
	t.Helper()
	snap, err := e.store.FindSnapshotByDate(context.Background(), day(d))
	require.NoError(t, err)
	return snap
}

func sample(d int) *wikinews.Snapshot {
	snap := wikinews.NewSnapshot(day(d))
	story(snap, "http://a", "Vote held", "AP", "Politics", "Elections")
	story(snap, "http://b", "Comet seen", "NASA", "Science")
	return snap
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists snapshots with counts", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, sample(16), sample(15))

		require.NoError(t, (&main.ListCmd{}).Run(env.deps))

		assert.Equal(t, "2024-01-15  2 categories  2 stories\n2024-01-16  2 categories  2 stories\n", env.stdout.String())
	})

	t.Run("prints a hint when empty", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)

		require.NoError(t, (&main.ListCmd{}).Run(env.deps))

		assert.Contains(t, env.stdout.String(), "No snapshots found")
	})

	t.Run("reports store errors", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)
		env.deps.Snapshots = &mock.SnapshotService{
			FindSnapshotsFn: func(ctx context.Context, filter wikinews.SnapshotFilter) ([]*wikinews.Snapshot, error) {
				return nil, errors.New("database is locked")
			},
		}

		err := (&main.ListCmd{}).Run(env.deps)

		require.Error(t, err)
		assert.Contains(t, env.stderr.String(), "error:")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("renders with the configured format", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, sample(15))

		require.NoError(t, (&main.ShowCmd{Date: "2024-01-15"}).Run(env.deps))

		assert.Equal(t, "Vote held AP http://a\nComet seen NASA http://b\n", env.stdout.String())
	})

	t.Run("renders with a command-line template", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, sample(15))

		require.NoError(t, (&main.ShowCmd{Date: "2024-01-15", Format: `{date}\t{url}\n`}).Run(env.deps))

		assert.Equal(t, "2024-01-15\thttp://a\n2024-01-15\thttp://b\n", env.stdout.String())
	})

	t.Run("reports a missing snapshot", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)

		err := (&main.ShowCmd{Date: "2024-01-15"}).Run(env.deps)

		assert.Equal(t, wikinews.ENOTFOUND, wikinews.ErrorCode(err))
		assert.Contains(t, env.stderr.String(), "no snapshot for 2024-01-15")
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)

		err := (&main.ShowCmd{Date: "January 15"}).Run(env.deps)

		assert.Equal(t, wikinews.EINVALID, wikinews.ErrorCode(err))
		assert.Contains(t, env.stderr.String(), "invalid date")
	})
}

func TestURLsCmd_Run(t *testing.T) {
	t.Parallel()

	snap := sample(15)
	story(snap, "http://a", "Vote held again", "AP", "Science")
	env := newEnv(t, snap)

	require.NoError(t, (&main.URLsCmd{Date: "2024-01-15"}).Run(env.deps))

	assert.Equal(t, "http://a\nhttp://b\nhttp://a\n", env.stdout.String())
}

func TestTreeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the indented tree", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, sample(15))

		require.NoError(t, (&main.TreeCmd{Date: "2024-01-15", Width: 0}).Run(env.deps))

		expected := strings.Join([]string{
			"2024-01-15",
			"  Politics",
			"    Elections",
			"      - Vote held (AP)",
			"  Science",
			"    - Comet seen (NASA)",
			"",
		}, "\n")
		assert.Equal(t, expected, env.stdout.String())
	})

	t.Run("truncates long lines", func(t *testing.T) {
		t.Parallel()

		snap := wikinews.NewSnapshot(day(15))
		story(snap, "http://long", strings.Repeat("word ", 40), "AP", "Politics")
		env := newEnv(t, snap)

		require.NoError(t, (&main.TreeCmd{Date: "2024-01-15", Width: 30}).Run(env.deps))

		lines := strings.Split(strings.TrimSpace(env.stdout.String()), "\n")
		require.Len(t, lines, 3)
		assert.Less(t, len([]rune(lines[2])), 40)
		assert.True(t, strings.HasSuffix(lines[2], "…"))
	})
}

func TestDedupeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("removes same-path duplicates and saves", func(t *testing.T) {
		t.Parallel()

		ref := wikinews.NewSnapshot(day(14))
		story(ref, "http://a", "Vote held", "AP", "Politics", "Elections")
		story(ref, "http://b", "Comet seen", "NASA", "Elsewhere")
		env := newEnv(t, sample(15), ref)

		require.NoError(t, (&main.DedupeCmd{Date: "2024-01-15", Against: "2024-01-14"}).Run(env.deps))

		assert.Equal(t, "Removed 1 stories from 2024-01-15 (1 remaining)\n", env.stdout.String())
		got := env.load(t, 15)
		assert.Equal(t, []string{"http://b"}, got.URLs())
		assert.Nil(t, got.Root.Category("Politics"))
	})

	t.Run("removes matching URLs anywhere", func(t *testing.T) {
		t.Parallel()

		ref := wikinews.NewSnapshot(day(14))
		story(ref, "http://a", "Vote held", "AP", "Other")
		story(ref, "http://b", "Comet seen", "NASA", "Elsewhere")
		env := newEnv(t, sample(15), ref)

		require.NoError(t, (&main.DedupeCmd{Date: "2024-01-15", Against: "2024-01-14", Anywhere: true}).Run(env.deps))

		assert.Contains(t, env.stdout.String(), "Removed 2 stories")
		assert.Empty(t, env.load(t, 15).URLs())
	})

	t.Run("dry run leaves the store alone", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, sample(15), sample(14))

		require.NoError(t, (&main.DedupeCmd{Date: "2024-01-15", Against: "2024-01-14", DryRun: true}).Run(env.deps))

		assert.Contains(t, env.stdout.String(), "Removed 2 stories")
		assert.Len(t, env.load(t, 15).URLs(), 2)
	})

	t.Run("reports a missing reference", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, sample(15))

		err := (&main.DedupeCmd{Date: "2024-01-15", Against: "2024-01-14"}).Run(env.deps)

		assert.Equal(t, wikinews.ENOTFOUND, wikinews.ErrorCode(err))
		assert.Contains(t, env.stderr.String(), "no snapshot for 2024-01-14")
	})
}

func TestCombineCmd_Run(t *testing.T) {
	t.Parallel()

	other := wikinews.NewSnapshot(day(14))
	story(other, "http://a", "Older headline", "AP", "Politics", "Elections")
	story(other, "http://c", "Market rally", "FT", "Business")
	env := newEnv(t, sample(15), other)

	require.NoError(t, (&main.CombineCmd{Date: "2024-01-15", With: "2024-01-14"}).Run(env.deps))

	assert.Equal(t, "Combined 2024-01-14 into 2024-01-15: 1 stories added (3 total)\n", env.stdout.String())
	got := env.load(t, 15)
	assert.Equal(t, []string{"http://a", "http://b", "http://c"}, got.URLs())
	assert.Equal(t, "Vote held AP http://a\n", strings.SplitAfter(got.Format(wikinews.DefaultFormat), "\n")[0])
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("exports the selected range", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, sample(14), sample(15), sample(16))
		dir := t.TempDir()

		cmd := &main.ExportCmd{Dir: dir, Name: "digest", From: "2024-01-15", Format: `* {text}\n`}
		require.NoError(t, cmd.Run(env.deps))

		assert.Equal(t, "Exported 2 snapshots to "+filepath.Join(dir, "digest")+"\n", env.stdout.String())
		entries, err := os.ReadDir(filepath.Join(dir, "digest"))
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "2024-01-15.md", entries[0].Name())

		data, err := os.ReadFile(filepath.Join(dir, "digest", "2024-01-16.md"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(string(data), "* Vote held\n* Comet seen\n"))
	})

	t.Run("rejects a malformed bound", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)

		err := (&main.ExportCmd{Dir: t.TempDir(), Name: "digest", To: "soon"}).Run(env.deps)

		assert.Equal(t, wikinews.EINVALID, wikinews.ErrorCode(err))
	})

	t.Run("aborts when a snapshot fails to export", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, sample(14), sample(15))
		boom := errors.New("disk full")
		var exported []string
		aborted, committed := false, false
		env.deps.NewExporter = func(dir, name, template string) wikinews.Exporter {
			assert.Equal(t, "* {text}\n", template)
			return &mock.Exporter{
				ExportFn: func(ctx context.Context, snap *wikinews.Snapshot) error {
					exported = append(exported, snap.Key())
					if snap.Key() == "2024-01-15" {
						return boom
					}
					return nil
				},
				CommitFn: func() error {
					committed = true
					return nil
				},
				AbortFn: func() error {
					aborted = true
					return nil
				},
			}
		}

		err := (&main.ExportCmd{Dir: t.TempDir(), Name: "digest", Format: `* {text}\n`}).Run(env.deps)

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"2024-01-14", "2024-01-15"}, exported)
		assert.True(t, aborted)
		assert.False(t, committed)
		assert.Contains(t, env.stderr.String(), "exporting 2024-01-15")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, sample(15))

		err := (&main.DeleteCmd{Date: "2024-01-15"}).Run(env.deps)

		assert.Equal(t, wikinews.EINVALID, wikinews.ErrorCode(err))
		assert.Contains(t, env.stderr.String(), "--force")
		env.load(t, 15)
	})

	t.Run("deletes the snapshot", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t, sample(15))

		require.NoError(t, (&main.DeleteCmd{Date: "2024-01-15", Force: true}).Run(env.deps))

		assert.Equal(t, "Deleted snapshot 2024-01-15\n", env.stdout.String())
		_, err := env.store.FindSnapshotByDate(context.Background(), day(15))
		assert.Equal(t, wikinews.ENOTFOUND, wikinews.ErrorCode(err))
	})

	t.Run("reports a missing snapshot", func(t *testing.T) {
		t.Parallel()

		env := newEnv(t)

		err := (&main.DeleteCmd{Date: "2024-01-15", Force: true}).Run(env.deps)

		assert.Equal(t, wikinews.ENOTFOUND, wikinews.ErrorCode(err))
		assert.Contains(t, env.stderr.String(), "not found")
	})
}
