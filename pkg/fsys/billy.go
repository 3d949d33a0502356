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

package fsys

import (
	"io"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gitlab.com/tozd/go/errors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// 🔧 Billy implements FS on top of a go-billy filesystem
type Billy struct {
	fs billy.Filesystem
}

var _ FS = (*Billy)(nil)

// 🏭 New wraps any go-billy filesystem
func New(fs billy.Filesystem) *Billy {
	return &Billy{fs: fs}
}

// 🏭 NewOS returns the host filesystem; paths are used as given
func NewOS() *Billy {
	return New(osfs.New("/"))
}

// 🏭 NewMemory returns an empty in-memory filesystem
func NewMemory() *Billy {
	return New(memfs.New())
}

// Raw returns the underlying go-billy filesystem.
func (b *Billy) Raw() billy.Filesystem {
	return b.fs
}

func (b *Billy) ReadDir(path string) ([]Entry, error) {
	infos, err := b.fs.ReadDir(path)
	if err != nil {
		return nil, opErr(OpList, path, errors.Errorf("reading directory: %w", err))
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{Name: info.Name(), IsDir: info.IsDir()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return entries, nil
}

func (b *Billy) MkdirAll(path string) error {
	if err := b.fs.MkdirAll(path, dirPerm); err != nil {
		return opErr(OpMkdir, path, errors.Errorf("creating directory: %w", err))
	}
	return nil
}

func (b *Billy) CopyFile(src, dst string) error {
	in, err := b.fs.Open(src)
	if err != nil {
		return opErr(OpCopy, dst, errors.Errorf("opening source file: %w", err))
	}
	defer in.Close()

	out, err := b.fs.Create(dst)
	if err != nil {
		return opErr(OpCopy, dst, errors.Errorf("creating destination file: %w", err))
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return opErr(OpCopy, dst, errors.Errorf("copying file content: %w", err))
	}

	if err := out.Close(); err != nil {
		return opErr(OpCopy, dst, errors.Errorf("closing destination file: %w", err))
	}

	return nil
}

func (b *Billy) Remove(path string) error {
	if err := b.fs.Remove(path); err != nil {
		return opErr(OpRemove, path, errors.Errorf("deleting file: %w", err))
	}
	return nil
}

func (b *Billy) RemoveAll(path string) error {
	if err := util.RemoveAll(b.fs, path); err != nil {
		return opErr(OpRemove, path, errors.Errorf("removing directory: %w", err))
	}
	return nil
}

func (b *Billy) IsFile(path string) bool {
	info, err := b.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (b *Billy) IsDir(path string) bool {
	info, err := b.fs.Stat(path)
	return err == nil && info.IsDir()
}

func (b *Billy) ReadFile(path string) ([]byte, error) {
	data, err := util.ReadFile(b.fs, path)
	if err != nil {
		return nil, opErr(OpRead, path, errors.Errorf("reading file: %w", err))
	}
	return data, nil
}

func (b *Billy) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := b.fs.MkdirAll(dir, dirPerm); err != nil {
			return opErr(OpWrite, path, errors.Errorf("creating parent directories: %w", err))
		}
	}

	if err := util.WriteFile(b.fs, path, data, filePerm); err != nil {
		return opErr(OpWrite, path, errors.Errorf("writing file: %w", err))
	}
	return nil
}

func (b *Billy) Join(elem ...string) string {
	return b.fs.Join(elem...)
}
