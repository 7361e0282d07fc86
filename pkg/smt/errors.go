// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package smt

import (
	"fmt"
	"time"
)

// Maximum amount of output retained in a protocol error.
const maxRetainedOutput = 256

// LaunchError indicates a decision procedure could not be started at all (e.g.
// because its executable is missing).
type LaunchError struct {
	path string
	err  error
}

// NewLaunchError constructs an error for a procedure which failed to start.
func NewLaunchError(path string, err error) *LaunchError {
	return &LaunchError{path, err}
}

// Path returns the executable which could not be launched.
func (e *LaunchError) Path() string {
	return e.path
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot launch %s: %v", e.path, e.err)
}

func (e *LaunchError) Unwrap() error {
	return e.err
}

// ProtocolError indicates a decision procedure produced output which does not
// conform to the expected protocol.
type ProtocolError struct {
	output string
	reason string
}

// NewProtocolError constructs an error for unexpected procedure output.  Only a
// prefix of the output is retained.
func NewProtocolError(output []byte, reason string) *ProtocolError {
	if len(output) > maxRetainedOutput {
		output = output[:maxRetainedOutput]
	}
	//
	return &ProtocolError{string(output), reason}
}

// Output returns (a prefix of) the offending output.
func (e *ProtocolError) Output() string {
	return e.output
}

// Reason returns a description of what was wrong.
func (e *ProtocolError) Reason() string {
	return e.reason
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s", e.reason)
}

// BackendError indicates a decision procedure explicitly reported an error,
// e.g. because the query used an unsupported function.
type BackendError struct {
	message string
}

// NewBackendError constructs an error reported by a decision procedure.
func NewBackendError(message string) *BackendError {
	return &BackendError{message}
}

// Message returns the message reported by the procedure.
func (e *BackendError) Message() string {
	return e.message
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error: %s", e.message)
}

// TimeoutError indicates a decision procedure did not complete within its
// budget (plus grace period), and was killed.
type TimeoutError struct {
	limit time.Duration
}

// NewTimeoutError constructs an error for a procedure which exceeded a limit.
func NewTimeoutError(limit time.Duration) *TimeoutError {
	return &TimeoutError{limit}
}

// Limit returns the time limit which was exceeded.
func (e *TimeoutError) Limit() time.Duration {
	return e.limit
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("decision procedure exceeded %s", e.limit)
}

// UndecidedError indicates a decision procedure completed, but answered neither
// sat nor unsat (e.g. "unknown", or z3's "timeout").
type UndecidedError struct {
	procedure string
}

// NewUndecidedError constructs an error for a query the given procedure could
// not decide.
func NewUndecidedError(procedure string) *UndecidedError {
	return &UndecidedError{procedure}
}

// Procedure returns the name of the procedure which could not decide.
func (e *UndecidedError) Procedure() string {
	return e.procedure
}

func (e *UndecidedError) Error() string {
	return fmt.Sprintf("%s could not decide query", e.procedure)
}
