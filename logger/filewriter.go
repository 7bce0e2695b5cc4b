// This file is a modified redistribution of reopen (github.com/client9/reopen),
// which is governed by the following license notice:
//
// The MIT License (MIT)
//
// Copyright (c) 2015 Nick Galbreath
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package logger

import (
	"os"
	"sync"
)

// FileWriter is an append-only log file that can be reopened in place, so an
// external log rotator can move the file and signal the server.
type FileWriter struct {
	mu   sync.Mutex // guards f across Write, Reopen and Close
	f    *os.File
	mode os.FileMode
	name string
}

// NewFileWriter opens name for appending with mode 0600.
func NewFileWriter(name string) (*FileWriter, error) {
	return NewFileWriterMode(name, 0600)
}

// NewFileWriterMode opens name for appending with the given permissions.
func NewFileWriterMode(name string, mode os.FileMode) (*FileWriter, error) {
	fw := &FileWriter{name: name, mode: mode}
	if err := fw.reopen(); err != nil {
		return nil, err
	}
	return fw, nil
}

// Name returns the path the writer appends to.
func (fw *FileWriter) Name() string { return fw.name }

func (fw *FileWriter) reopen() error {
	if fw.f != nil {
		fw.f.Close()
		fw.f = nil
	}
	f, err := os.OpenFile(fw.name, os.O_WRONLY|os.O_APPEND|os.O_CREATE, fw.mode)
	if err != nil {
		return err
	}
	fw.f = f
	return nil
}

// Reopen closes the current handle and opens the path again, picking up a new
// inode if the file was renamed.
func (fw *FileWriter) Reopen() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.reopen()
}

// Write implements io.Writer.
func (fw *FileWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.f == nil {
		return 0, os.ErrClosed
	}
	return fw.f.Write(p)
}

// Close closes the underlying file. Writes after Close return os.ErrClosed.
func (fw *FileWriter) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.f == nil {
		return nil
	}
	err := fw.f.Close()
	fw.f = nil
	return err
}
