package store

import (
	"errors"
	"fmt"

	"github.com/gatekv/gatekv/lib/db"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// DBFactory is a function type that creates a new db used by the store.
// This is used to abstract the creation of the db from the store implementation.
type DBFactory func() db.KVDB

// IStore is the generic interface for interacting with a key–value store.
// All write operations return only a *Error (nil on success),
// while read operations return the requested data along with a *Error (nil on success).
type IStore interface {
	// Insert inserts or updates a key–value pair. Inserting an existing key
	// overwrites the old value.
	Insert(key string, value string) (err error)
	// Retrieve returns the value for a key. The boolean return value indicates
	// whether a value for the key was found. A miss is not an error.
	Retrieve(key string) (value string, found bool, err error)
	// Delete deletes a key–value pair. Deleting an absent key fails with
	// RetCNotFound and leaves the store unchanged.
	Delete(key string) (err error)
	// Update overwrites the value of an existing key. Updating an absent key
	// fails with RetCNotFound and must never create the key.
	Update(key string, value string) (err error)
	// Snapshot returns a copy of all entries ordered lexicographically by key.
	Snapshot() (entries []db.Entry, err error)
	// Load replaces the store contents with the given entries.
	// For duplicate keys the last occurrence wins.
	Load(entries []db.Entry) (err error)
	// GetDBInfo returns metadata about the database underlying the store.
	// It is not guaranteed that all fields are filled in or that the information is up-to-date!
	GetDBInfo() (info db.DatabaseInfo, err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("KVStoreError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new KVStoreError with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// CodeOf extracts the RetCode from an error. Errors that are not of type
// *Error (directly or wrapped) map to RetCInternalError, nil maps to
// RetCSuccess.
func CodeOf(err error) RetCode {
	if err == nil {
		return RetCSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return RetCInternalError
}

// IsNotFound reports whether the error is a store error with RetCNotFound.
func IsNotFound(err error) bool {
	return CodeOf(err) == RetCNotFound
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // 0: Command executed successfully.
	RetCInternalError                       // 1: Command failed due to an internal error.
	RetCUnsupportedOperation                // 2: Operation is not supported by underlying database.
	RetCInvalidOperation                    // 3: Invalid operation.
	RetCNotFound                            // 4: Key not found.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCUnsupportedOperation:
		return "UnsupportedOperation"
	case RetCInvalidOperation:
		return "InvalidOperation"
	case RetCNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}
