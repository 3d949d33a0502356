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

// pruneFrame is one directory level of the directory prune walk.
type pruneFrame struct {
	dst, src string
	rel      string
	dirs     []fsys.Entry
	next     int
}

// 🧹 PruneFiles deletes the files directly inside destDir that have no file of
// the same name directly inside sourceDir. It does not descend.
func (m *Mirror) PruneFiles(ctx context.Context, sink Sink, destDir, sourceDir string) error {
	entries, err := m.list(sink, destDir)
	if err != nil {
		return err
	}

	files, _ := split(entries)
	m.pruneFiles(ctx, sink, destDir, sourceDir, "", files)
	return nil
}

func (m *Mirror) pruneFiles(ctx context.Context, sink Sink, destDir, sourceDir, rel string, files []fsys.Entry) {
	for _, f := range files {
		if m.exclude.Match(relJoin(rel, f.Name)) {
			continue
		}
		if m.fs.IsFile(m.fs.Join(sourceDir, f.Name)) {
			continue
		}

		target := m.fs.Join(destDir, f.Name)
		if err := m.fs.Remove(target); err != nil {
			sink.Append(journal.SeverityError, fmt.Sprintf("Error deleting file %s: %v", target, err))
			continue
		}
		zerolog.Ctx(ctx).Debug().Str("path", target).Msg("orphan file removed")
		sink.Append(journal.SeverityInfo, fmt.Sprintf("%s deleted from %s", f.Name, target))
	}
}

// 🗑️ PruneDirectories deletes, recursively, every subdirectory of destDir with
// no directory of the same name in sourceDir, and descends into the ones that
// exist on both sides.
func (m *Mirror) PruneDirectories(ctx context.Context, sink Sink, destDir, sourceDir string) error {
	entries, err := m.list(sink, destDir)
	if err != nil {
		return err
	}

	_, dirs := split(entries)
	stack := []*pruneFrame{{dst: destDir, src: sourceDir, dirs: dirs}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}

		d := top.dirs[top.next]
		top.next++

		rel := relJoin(top.rel, d.Name)
		if m.exclude.Match(rel) {
			continue
		}

		dst := m.fs.Join(top.dst, d.Name)
		src := m.fs.Join(top.src, d.Name)

		if !m.fs.IsDir(src) {
			if err := m.fs.RemoveAll(dst); err != nil {
				sink.Append(journal.SeverityError, fmt.Sprintf("Error deleting directory %s: %v", dst, err))
				continue
			}
			zerolog.Ctx(ctx).Debug().Str("path", dst).Msg("orphan directory removed")
			sink.Append(journal.SeverityInfo, fmt.Sprintf("Directory: %s deleted from: %s", d.Name, dst))
			continue
		}

		children, err := m.list(sink, dst)
		if err != nil {
			return err
		}

		files, subdirs := split(children)
		if m.opts.RecursiveFilePrune {
			m.pruneFiles(ctx, sink, dst, src, rel, files)
		}
		stack = append(stack, &pruneFrame{dst: dst, src: src, rel: rel, dirs: subdirs})
	}

	return nil
}
