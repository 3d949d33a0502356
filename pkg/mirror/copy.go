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
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/dirmirror/pkg/fsys"
	"github.com/walteh/dirmirror/pkg/journal"
)

// copyFrame is one directory level of the copy walk.
type copyFrame struct {
	src, dst string
	rel      string // slash separated, relative to the walk root
	dirs     []fsys.Entry
	files    []fsys.Entry
	next     int // index of the next subdirectory in dirs
}

// 📦 CopyTree recreates every subdirectory of sourceDir under destDir and
// copies every file, overwriting existing destination files. Each
// subdirectory is handled completely before the next one; a level's own files
// are copied after all of its subdirectories.
func (m *Mirror) CopyTree(ctx context.Context, sink Sink, sourceDir, destDir string) error {
	root, err := m.openCopyFrame(sink, sourceDir, destDir, "")
	if err != nil {
		return err
	}
	return m.walkCopy(ctx, sink, root)
}

func (m *Mirror) openCopyFrame(sink Sink, src, dst, rel string) (*copyFrame, error) {
	entries, err := m.list(sink, src)
	if err != nil {
		return nil, err
	}
	files, dirs := split(entries)
	return &copyFrame{src: src, dst: dst, rel: rel, dirs: dirs, files: files}, nil
}

func (m *Mirror) walkCopy(ctx context.Context, sink Sink, root *copyFrame) error {
	logger := zerolog.Ctx(ctx)
	stack := []*copyFrame{root}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.next < len(top.dirs) {
			d := top.dirs[top.next]
			top.next++

			child, err := m.enterDir(ctx, sink, top, d)
			if err != nil {
				return err
			}
			if child != nil {
				stack = append(stack, child)
			}
			continue
		}

		logger.Debug().Str("dir", top.src).Int("files", len(top.files)).Msg("copying files")
		m.copyFiles(ctx, sink, top.src, top.dst, top.rel, top.files)
		stack = stack[:len(stack)-1]
	}

	return nil
}

// enterDir creates the destination counterpart of d and lists it. A nil frame
// means the subtree is skipped.
func (m *Mirror) enterDir(ctx context.Context, sink Sink, parent *copyFrame, d fsys.Entry) (*copyFrame, error) {
	rel := relJoin(parent.rel, d.Name)
	if m.exclude.Match(rel) {
		zerolog.Ctx(ctx).Debug().Str("path", rel).Msg("directory excluded")
		return nil, nil
	}

	src := m.fs.Join(parent.src, d.Name)
	dst := m.fs.Join(parent.dst, d.Name)

	if err := m.fs.MkdirAll(dst); err != nil {
		sink.Append(journal.SeverityError, fmt.Sprintf("Error creating directory %s: %v", dst, err))
		return nil, nil
	}
	sink.Append(journal.SeverityInfo, fmt.Sprintf("%s copied to %s", d.Name, dst))

	return m.openCopyFrame(sink, src, dst, rel)
}

// copyFiles copies files from srcDir to dstDir, logging each outcome.
func (m *Mirror) copyFiles(ctx context.Context, sink Sink, srcDir, dstDir, rel string, files []fsys.Entry) {
	for _, f := range files {
		if m.exclude.Match(relJoin(rel, f.Name)) {
			zerolog.Ctx(ctx).Debug().Str("path", relJoin(rel, f.Name)).Msg("file excluded")
			continue
		}

		dst := m.fs.Join(dstDir, f.Name)
		if err := m.fs.CopyFile(m.fs.Join(srcDir, f.Name), dst); err != nil {
			sink.Append(journal.SeverityError, fmt.Sprintf("Error copying file: %v", err))
			continue
		}
		sink.Append(journal.SeverityInfo, fmt.Sprintf("%s copied to %s", f.Name, dst))
	}
}
