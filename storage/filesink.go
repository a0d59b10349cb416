/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package storage implements an optional, ambient persistence sink
(§4.12): a single-file snapshot of a Graph, written and read through the
codec package. It is not part of the core engine - a Graph never touches
a filesystem on its own - but a complete repository ships one, grounded
on EliasDB's graphstorage.DiskGraphStorage lifecycle (Name/FlushMain/
Close), radically simplified since sharded, memory-mapped multi-file
storage is explicitly out of scope (§1).
*/
package storage

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/krotik/common/bitutil"
	"github.com/krotik/common/lockutil"
	"github.com/krotik/common/logutil"
	"github.com/krotik/graphcore/codec"
	"github.com/krotik/graphcore/graph"
)

var log = logutil.GetLogger("graph.storage")

/*
FileSinkOptions parameterizes a FileSink.
*/
type FileSinkOptions struct {
	/*
		Compress gzips the snapshot document on disk. No third-party gzip
		implementation appears anywhere in the retrieved dependency pack,
		so this uses the standard library's compress/gzip (see DESIGN.md).
	*/
	Compress bool

	/*
		LockInterval is how often the lock file is refreshed while a
		Save/Load is in progress, guarding against a concurrent process
		writing the same path. Zero defaults to 200ms.
	*/
	LockInterval time.Duration
}

/*
FileSink wraps the codec writer/reader around a single file path,
serializing concurrent access from separate processes with a
lockutil.LockFile the way EliasDB's disk storage guards its own files.
*/
type FileSink struct {
	path string
	opts FileSinkOptions
}

/*
NewFileSink creates a sink bound to path. Save/Load do not touch the
filesystem until called.
*/
func NewFileSink(path string, opts FileSinkOptions) *FileSink {
	if opts.LockInterval <= 0 {
		opts.LockInterval = 200 * time.Millisecond
	}
	return &FileSink{path: path, opts: opts}
}

/*
Meta is the companion metadata file's shape (§4.12), written alongside
every successful Save.
*/
type Meta struct {
	ElementCount  int   `json:"elementCount"`
	ByteSize      int64 `json:"byteSize"`
	FormatVersion int   `json:"formatVersion"`
	Compressed    bool  `json:"compressed"`
}

func (s *FileSink) metaPath() string { return s.path + ".meta.json" }
func (s *FileSink) lockPath() string { return s.path + ".lock" }

/*
Save writes g's current state to the sink's path, under a lock file held
for the duration of the write, and refreshes the companion metadata
file.
*/
func (s *FileSink) Save(g *graph.Graph) error {
	lock := lockutil.NewLockFile(s.lockPath(), s.opts.LockInterval)
	if err := lock.Start(); err != nil {
		return err
	}
	defer lock.Finish()

	doc, err := codec.BuildDocument(g)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	var out io.Writer = f
	var gz *gzip.Writer
	if s.opts.Compress {
		gz = gzip.NewWriter(f)
		out = gz
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return err
		}
	}

	return s.writeMeta(doc)
}

/*
Load reads the sink's path and merges it into g under opts.
*/
func (s *FileSink) Load(g *graph.Graph, opts codec.ReadOptions) error {
	lock := lockutil.NewLockFile(s.lockPath(), s.opts.LockInterval)
	if err := lock.Start(); err != nil {
		return err
	}
	defer lock.Finish()

	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	var in io.Reader = f
	if s.opts.Compress {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gz.Close()
		in = gz
	}

	return codec.Read(in, g, opts)
}

func (s *FileSink) writeMeta(doc *codec.Document) error {
	stat, err := os.Stat(s.path)
	if err != nil {
		return err
	}

	meta := Meta{
		ElementCount:  len(doc.Vertices) + len(doc.Edges),
		ByteSize:      stat.Size(),
		FormatVersion: doc.Version,
		Compressed:    s.opts.Compress,
	}

	log.Debug("wrote snapshot ", s.path, " (", bitutil.ByteSizeString(meta.ByteSize, false), ")")

	f, err := os.OpenFile(s.metaPath(), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

/*
ReadMeta loads the companion metadata file without touching the snapshot
itself.
*/
func (s *FileSink) ReadMeta() (*Meta, error) {
	f, err := os.Open(s.metaPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var meta Meta
	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
