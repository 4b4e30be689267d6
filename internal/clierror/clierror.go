/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package clierror tags errors that must exit with the compiler driver's
// internal-error code rather than cobra's generic usage-error code.
package clierror

// Internal wraps err as a resolver-construction or manifest failure: per
// §7's exit-code contract, these exit 5 rather than the usual 1.
type Internal struct {
	Err error
}

func (e *Internal) Error() string { return e.Err.Error() }
func (e *Internal) Unwrap() error { return e.Err }

// Wrap tags err as internal, or returns nil if err is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return &Internal{Err: err}
}

// ExitCode is the process exit code for an internal error, matching the
// compile driver's own internal-error exit code.
const ExitCode = 5
