/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package broadcast

import (
	"errors"
	"sync"

	abroadcast "dirpx.dev/dcast/apis/broadcast"
)

var (
	// ErrAlreadyInstalled is returned when a process-wide controller is
	// already in place. Installation is set-once; reconfiguration after
	// install is not supported.
	ErrAlreadyInstalled = errors.New("broadcast: logger already installed")

	// ErrNotInstalled is returned by accessors that require an installed
	// controller.
	ErrNotInstalled = errors.New("broadcast: no logger installed")
)

var (
	globalMu sync.Mutex
	global   abroadcast.Controller
)

// Install sets the process-wide controller exactly once.
func Install(c abroadcast.Controller) error {
	if c == nil {
		return ErrNotInstalled
	}
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return ErrAlreadyInstalled
	}
	global = c
	return nil
}

// Installed returns the process-wide controller, if any.
func Installed() (abroadcast.Controller, bool) {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global, global != nil
}

// reset clears the installed slot. Tests only; production code has no
// path to it.
func reset() {
	globalMu.Lock()
	global = nil
	globalMu.Unlock()
}
