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

// Package fsys is the filesystem capability the mirror walks over.
package fsys

import (
	"fmt"
)

// 📂 Entry is one item of a directory listing
type Entry struct {
	Name  string // Last path component
	IsDir bool   // Whether the entry is a directory
}

// 💾 FS handles every filesystem operation a mirror run needs
type FS interface {
	// ReadDir lists the immediate entries of a directory, sorted by name
	ReadDir(path string) ([]Entry, error)
	// MkdirAll creates a directory and its parents; existing directories are fine
	MkdirAll(path string) error
	// CopyFile copies src to dst, replacing any existing dst file
	CopyFile(src, dst string) error
	// Remove deletes a single file
	Remove(path string) error
	// RemoveAll deletes a directory and everything below it
	RemoveAll(path string) error

	IsFile(path string) bool
	IsDir(path string) bool

	ReadFile(path string) ([]byte, error)
	// WriteFile replaces the file at path, creating parent directories
	WriteFile(path string, data []byte) error

	Join(elem ...string) string
}

// 🏷️ Op names the kind of filesystem operation that failed
type Op string

const (
	OpList   Op = "list"
	OpMkdir  Op = "mkdir"
	OpCopy   Op = "copy"
	OpRemove Op = "remove"
	OpRead   Op = "read"
	OpWrite  Op = "write"
)

// ❌ OpError is the single I/O failure kind, tagged with the operation and path
type OpError struct {
	Op   Op
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opErr(op Op, path string, err error) error {
	return &OpError{Op: op, Path: path, Err: err}
}
