package fs

import (
	"errors"
	iofs "io/fs"
	"os"
)

// Op names a [FS] operation that [Faulty] can fail.
type Op string

// Operations that can be failed.
const (
	OpReadFile        Op = "read"
	OpWriteFileAtomic Op = "write"
	OpMkdirAll        Op = "mkdir"
	OpExists          Op = "stat"
)

// InjectedError marks an error as intentionally injected by [Faulty].
//
// It wraps the underlying error so errors.Is/As continue to work.
type InjectedError struct {
	Err error
}

// Error returns the underlying error's message.
func (e *InjectedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected by [Faulty].
func IsInjected(err error) bool {
	var injected *InjectedError

	return errors.As(err, &injected)
}

// Faulty wraps an [FS] and fails the configured operations with a
// permission error. Used by tests to exercise error paths.
type Faulty struct {
	Base FS
	Fail map[Op]bool
}

// NewFaulty returns a [Faulty] over base that fails every op in ops.
func NewFaulty(base FS, ops ...Op) *Faulty {
	fail := make(map[Op]bool, len(ops))
	for _, op := range ops {
		fail[op] = true
	}

	return &Faulty{Base: base, Fail: fail}
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if err := f.check(OpReadFile, path); err != nil {
		return nil, err
	}

	return f.Base.ReadFile(path)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := f.check(OpWriteFileAtomic, path); err != nil {
		return err
	}

	return f.Base.WriteFileAtomic(path, data, perm)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}

	return f.Base.MkdirAll(path, perm)
}

func (f *Faulty) Exists(path string) (bool, error) {
	if err := f.check(OpExists, path); err != nil {
		return false, err
	}

	return f.Base.Exists(path)
}

func (f *Faulty) check(op Op, path string) error {
	if !f.Fail[op] {
		return nil
	}

	return &InjectedError{Err: &iofs.PathError{Op: string(op), Path: path, Err: iofs.ErrPermission}}
}
