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

// Package sink resolves sink kinds ("terminal", "file", "udp") to their
// constructors and owns the per-kind policy defaults that the broadcast
// builder would otherwise have to hardcode.
package sink

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	asink "dirpx.dev/dcast/apis/sink"
	"dirpx.dev/dcast/apis/sink/policy"
	"dirpx.dev/dcast/runtime/registry"
)

// registryKind partitions the shared registry namespace; every entry in
// this package's table is a sink constructor.
const registryKind = "sink"

// udpKind gets the smaller default queue; see QueueCapacity.
const udpKind = "udp"

// ErrNoKind is returned by Build for a specification without a kind.
var ErrNoKind = errors.New("sink: specification has no kind")

// Registry is the global sink registry, case-insensitive for convenience.
// The concrete sink packages register themselves from init().
var Registry = registry.New[asink.Sink, *asink.Specification](registry.WithCaseFoldLower())

// Register registers a sink builder under its kind.
// Typical usage from package init(): Register("terminal", build)
func Register(kind string, b registry.Builder[asink.Sink, *asink.Specification]) {
	registry.MustRegister(Registry, registry.Key{Kind: registryKind, Name: kind}, b)
}

// Build constructs a sink instance from the builder registered for
// spec.Kind. A specification without a name gets the kind as its name,
// so health reports and drop counters always have an attribution label.
func Build(ctx context.Context, spec *asink.Specification) (asink.Sink, error) {
	if spec == nil || spec.Kind == "" {
		return nil, ErrNoKind
	}
	if spec.Name == "" {
		spec.Name = spec.Kind
	}
	s, err := Registry.Build(ctx, registry.Key{Kind: registryKind, Name: spec.Kind}, spec)
	if err != nil {
		return nil, fmt.Errorf("sink %q: %w", spec.Name, err)
	}
	return s, nil
}

// QueueCapacity resolves the effective command-channel depth for a sink:
// an explicit value wins, otherwise the per-kind default applies. The
// UDP sink runs a much smaller queue than terminal and file.
func QueueCapacity(spec *asink.Specification) int {
	if spec.QueueCapacity > 0 {
		return spec.QueueCapacity
	}
	if strings.EqualFold(spec.Kind, udpKind) {
		return policy.DefaultUDPQueueCapacity
	}
	return policy.DefaultQueueCapacity
}

// Kinds returns the registered sink kinds, sorted. Useful in error
// messages and config validation.
func Kinds() []string {
	keys := Registry.Keys()
	kinds := make([]string, 0, len(keys))
	for _, k := range keys {
		if k.Kind == registryKind {
			kinds = append(kinds, k.Name)
		}
	}
	sort.Strings(kinds)
	return kinds
}

// Seal prevents further registrations (optional, once all init() done).
func Seal() { Registry.Seal() }
