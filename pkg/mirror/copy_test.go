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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/dirmirror/pkg/journal"
)

func messages(j *journal.Journal) []string {
	var out []string
	for _, e := range j.Entries() {
		out = append(out, e.Message)
	}
	return out
}

func TestCopyTreeOrder(t *testing.T) {
	ctx := testContext(t)
	e := newTestEnv(t, "memory")
	writeTree(t, e.fs, e.src, map[string]string{
		"z.txt":      "z",
		"a/a1.txt":   "a1",
		"a/b/b1.txt": "b1",
		"c/c1.txt":   "c1",
	})
	require.NoError(t, e.fs.MkdirAll(e.dst))

	j := journal.New()
	m := newMirror(t, e.fs, Options{})
	require.NoError(t, m.CopyTree(ctx, j, e.src, e.dst))

	d := func(p ...string) string { return e.fs.Join(append([]string{e.dst}, p...)...) }
	assert.Equal(t, []string{
		"a copied to " + d("a"),
		"b copied to " + d("a", "b"),
		"b1.txt copied to " + d("a", "b", "b1.txt"),
		"a1.txt copied to " + d("a", "a1.txt"),
		"c copied to " + d("c"),
		"c1.txt copied to " + d("c", "c1.txt"),
		"z.txt copied to " + d("z.txt"),
	}, messages(j))

	assert.Equal(t, readTree(t, e.fs, e.src), readTree(t, e.fs, e.dst))
}

func TestCopyTreeOverwrites(t *testing.T) {
	ctx := testContext(t)
	e := newTestEnv(t, "os")
	writeTree(t, e.fs, e.src, map[string]string{"sub/f.txt": "new"})
	writeTree(t, e.fs, e.dst, map[string]string{"sub/f.txt": "old and longer", "sub/extra.txt": "x"})

	m := newMirror(t, e.fs, Options{})
	require.NoError(t, m.CopyTree(ctx, journal.New(), e.src, e.dst))

	assert.Equal(t, map[string]string{
		"sub/":          "",
		"sub/f.txt":     "new",
		"sub/extra.txt": "x",
	}, readTree(t, e.fs, e.dst), "copy never deletes")
}

func TestCopyTreeDeepNesting(t *testing.T) {
	const depth = 256

	ctx := testContext(t)
	e := newTestEnv(t, "memory")
	rel := strings.Repeat("d/", depth) + "leaf.txt"
	writeTree(t, e.fs, e.src, map[string]string{rel: "deep"})
	require.NoError(t, e.fs.MkdirAll(e.dst))

	j := journal.New()
	m := newMirror(t, e.fs, Options{})
	require.NoError(t, m.CopyTree(ctx, j, e.src, e.dst))

	assert.Equal(t, depth+1, j.Len())
	assert.Zero(t, j.ErrorCount())

	data, err := e.fs.ReadFile(e.fs.Join(e.dst, rel))
	require.NoError(t, err)
	assert.Equal(t, "deep", string(data))
}

func TestCopyTreeContinuesAfterFailures(t *testing.T) {
	ctx := testContext(t)
	e := newTestEnv(t, "memory")
	writeTree(t, e.fs, e.src, map[string]string{
		"one/bad.bin":  "x",
		"one/good.txt": "g",
		"two/bad.bin":  "y",
		"two/ok.txt":   "o",
	})
	require.NoError(t, e.fs.MkdirAll(e.dst))

	faulty := &faultyFS{FS: e.fs, failCopy: map[string]bool{"bad.bin": true}}
	j := journal.New()
	m := newMirror(t, faulty, Options{})
	require.NoError(t, m.CopyTree(ctx, j, e.src, e.dst))

	assert.Equal(t, 2, j.ErrorCount())
	assert.Equal(t, 6, j.Len())

	tree := readTree(t, e.fs, e.dst)
	assert.Equal(t, "g", tree["one/good.txt"])
	assert.Equal(t, "o", tree["two/ok.txt"])
	assert.NotContains(t, tree, "one/bad.bin")
	assert.NotContains(t, tree, "two/bad.bin")
}

func TestCopyTreeSkipsSubtreeWhenMkdirFails(t *testing.T) {
	ctx := testContext(t)
	e := newTestEnv(t, "memory")
	writeTree(t, e.fs, e.src, map[string]string{
		"a/inner/deep.txt": "d",
		"a/file.txt":       "f",
		"b/ok.txt":         "o",
		"top.txt":          "t",
	})
	require.NoError(t, e.fs.MkdirAll(e.dst))

	faulty := &faultyFS{FS: e.fs, failMkdir: map[string]bool{"a": true}}
	j := journal.New()
	m := newMirror(t, faulty, Options{})
	require.NoError(t, m.CopyTree(ctx, j, e.src, e.dst))

	entries := j.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, journal.SeverityError, entries[0].Severity)
	assert.Contains(t, entries[0].Message, "Error creating directory /work/dst/a")
	assert.Contains(t, entries[0].Message, "read-only file system")
	assert.Equal(t, 1, j.ErrorCount())

	assert.Equal(t, map[string]string{
		"b/":       "",
		"b/ok.txt": "o",
		"top.txt":  "t",
	}, readTree(t, e.fs, e.dst))
}

func TestCopyTreeExclude(t *testing.T) {
	ctx := testContext(t)
	e := newTestEnv(t, "memory")
	writeTree(t, e.fs, e.src, map[string]string{
		"src/main.go":             "package main",
		"node_modules/x/index.js": "js",
		"src/node_modules/y/a.js": "js",
		"build/out.o":             "o",
		"src/build/keep.txt":      "k",
	})
	require.NoError(t, e.fs.MkdirAll(e.dst))

	m := newMirror(t, e.fs, Options{Exclude: []string{"**/node_modules", "build"}})
	require.NoError(t, m.CopyTree(ctx, journal.New(), e.src, e.dst))

	assert.Equal(t, map[string]string{
		"src/":               "",
		"src/main.go":        "package main",
		"src/build/":         "",
		"src/build/keep.txt": "k",
	}, readTree(t, e.fs, e.dst))
}
