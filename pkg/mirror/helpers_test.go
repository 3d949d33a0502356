// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mirror

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/dirmirror/pkg/fsys"
	"github.com/walteh/dirmirror/pkg/journal"
	"gitlab.com/tozd/go/errors"
)

var errLocked = errors.New("file is locked")

// 🧪 testEnv is a filesystem with a source, destination and log location
type testEnv struct {
	fs   fsys.FS
	src  string
	dst  string
	log  string
	root string
}

func newTestEnv(t *testing.T, backend string) *testEnv {
	t.Helper()

	var fs fsys.FS
	var root string
	switch backend {
	case "memory":
		fs, root = fsys.NewMemory(), "/work"
	case "os":
		fs, root = fsys.NewOS(), t.TempDir()
	default:
		t.Fatalf("unknown backend %q", backend)
	}

	return &testEnv{
		fs:   fs,
		root: root,
		src:  fs.Join(root, "src"),
		dst:  fs.Join(root, "dst"),
		log:  fs.Join(root, "logs", "mirror.log"),
	}
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel).WithContext(context.Background())
}

// writeTree creates the given entries below root. Keys ending in "/" are
// directories; other keys are files with the mapped content.
func writeTree(t *testing.T, fs fsys.FS, root string, tree map[string]string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(root))
	for name, content := range tree {
		p := fs.Join(root, filepath.FromSlash(strings.TrimSuffix(name, "/")))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, fs.MkdirAll(p))
			continue
		}
		require.NoError(t, fs.WriteFile(p, []byte(content)))
	}
}

// readTree is the inverse of writeTree.
func readTree(t *testing.T, fs fsys.FS, root string) map[string]string {
	t.Helper()
	out := map[string]string{}

	var walk func(dir, rel string)
	walk = func(dir, rel string) {
		entries, err := fs.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			name := relJoin(rel, e.Name)
			p := fs.Join(dir, e.Name)
			if e.IsDir {
				out[name+"/"] = ""
				walk(p, name)
				continue
			}
			data, err := fs.ReadFile(p)
			require.NoError(t, err)
			out[name] = string(data)
		}
	}
	walk(root, "")

	return out
}

func readLog(t *testing.T, fs fsys.FS, path string) []string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

// faultyFS fails selected operations and delegates the rest.
type faultyFS struct {
	fsys.FS
	failCopy      map[string]bool // destination base names
	failList      map[string]bool // full directory paths
	failRemove    map[string]bool // file base names
	failRemoveAll map[string]bool // directory base names
	failMkdir     map[string]bool // directory base names
	failWrite     map[string]bool // full file paths
}

func (f *faultyFS) CopyFile(src, dst string) error {
	if f.failCopy[filepath.Base(dst)] {
		return &fsys.OpError{Op: fsys.OpCopy, Path: dst, Err: errLocked}
	}
	return f.FS.CopyFile(src, dst)
}

func (f *faultyFS) ReadDir(path string) ([]fsys.Entry, error) {
	if f.failList[path] {
		return nil, &fsys.OpError{Op: fsys.OpList, Path: path, Err: errors.New("permission denied")}
	}
	return f.FS.ReadDir(path)
}

func (f *faultyFS) Remove(path string) error {
	if f.failRemove[filepath.Base(path)] {
		return &fsys.OpError{Op: fsys.OpRemove, Path: path, Err: errLocked}
	}
	return f.FS.Remove(path)
}

func (f *faultyFS) RemoveAll(path string) error {
	if f.failRemoveAll[filepath.Base(path)] {
		return &fsys.OpError{Op: fsys.OpRemove, Path: path, Err: errLocked}
	}
	return f.FS.RemoveAll(path)
}

func (f *faultyFS) MkdirAll(path string) error {
	if f.failMkdir[filepath.Base(path)] {
		return &fsys.OpError{Op: fsys.OpMkdir, Path: path, Err: errors.New("read-only file system")}
	}
	return f.FS.MkdirAll(path)
}

func (f *faultyFS) WriteFile(path string, data []byte) error {
	if f.failWrite[path] {
		return &fsys.OpError{Op: fsys.OpWrite, Path: path, Err: errors.New("disk full")}
	}
	return f.FS.WriteFile(path, data)
}

// 🔧 mockSink records Append calls through testify's mock
type mockSink struct {
	mock.Mock
}

func (m *mockSink) Append(sev journal.Severity, msg string) {
	m.Called(sev, msg)
}

func newMirror(t *testing.T, fs fsys.FS, opts Options) *Mirror {
	t.Helper()
	m, err := New(fs, opts)
	require.NoError(t, err)
	return m
}
