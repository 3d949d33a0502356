/*
Package mirror makes a destination directory an exact copy of a source directory.

	+-------------+
	|   Cloner    |
	| Synchronize |
	+------+------+
	       |
	+------+------+     +-------------+     +------------------+
	| Tree Copier | --> | File Pruner | --> | Directory Pruner |
	|  CopyTree   |     | PruneFiles  |     | PruneDirectories |
	+-------------+     +-------------+     +------------------+

🔄 Flow:
1. Create the destination root
2. Copy the top-level files, then every subdirectory tree
3. Delete top-level destination files with no source file of the same name
4. Delete destination directories with no source directory of the same name,
   descending into directories that exist on both sides
5. Write the journal to the log file

⚡ Error policy:
A failure on one entry (copying a file, creating or deleting a directory,
deleting a file) is recorded in the journal and the walk moves on to the next
sibling. A failure to list a directory aborts the run; Synchronize still
writes the log file and then returns the error.

📝 Ordering:
Directory listings are sorted by name. Within one directory the copier handles
each subdirectory completely, one at a time, before copying that directory's
own files. Both walks run on an explicit stack, so tree depth is not bounded
by the goroutine stack.

🚧 File pruning only looks at the top level of the destination. A file that
exists only in a nested destination directory survives unless
Options.RecursiveFilePrune is set.

🔍 Example:

	m, err := mirror.New(fsys.NewOS(), mirror.Options{Console: os.Stdout})
	if err != nil {
		return err
	}
	err = m.Synchronize(ctx, "/data/photos", "/backup/photos", "/backup/photos.log")
*/
package mirror
