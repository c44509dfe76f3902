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

package udp

import (
	"context"
	"errors"
	"net"
	"sync/atomic"

	"dirpx.dev/dcast/apis/command"
	asink "dirpx.dev/dcast/apis/sink"
	rsink "dirpx.dev/dcast/runtime/sink"
	"dirpx.dev/dcast/telemetry"
)

// Compile-time checks: *Sink serializes records itself.
var (
	_ asink.Sink       = (*Sink)(nil)
	_ asink.RecordSink = (*Sink)(nil)
)

// ErrNoAddr indicates that an empty receiver address was provided.
var ErrNoAddr = errors.New("sink/udp: empty address")

// Sink sends one authenticated datagram per record. There is no batching
// inside the framed protocol and no reconnection: the socket is opened
// once at build time and reused for the life of the process.
//
// Send failures are recorded and the record is dropped; nothing surfaces
// to the producer. That matches UDP's delivery promise — none.
type Sink struct {
	name      string
	conn      net.Conn
	authToken string
	appID     string

	failures atomic.Uint64
	scratch  []byte // frame build buffer; single worker, reused across sends
}

// New dials the receiver and returns the sink. Dialing a UDP address does
// not exchange packets, so errors here mean local misconfiguration
// (resolution, socket limits), which is exactly what should fail install.
func New(name, addr, authToken, appID string) (*Sink, error) {
	if addr == "" {
		return nil, ErrNoAddr
	}
	if name == "" {
		name = "udp"
	}
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}
	return &Sink{
		name:      name,
		conn:      conn,
		authToken: authToken,
		appID:     appID,
		scratch:   make([]byte, 0, 512),
	}, nil
}

// Name returns the sink identifier.
func (s *Sink) Name() string { return s.name }

// WriteRecord frames and sends one record. Always returns nil: a lost
// datagram is not an IO failure that should disable the sink.
func (s *Sink) WriteRecord(ctx context.Context, cmd command.Command) error {
	if cmd.Record == nil {
		return nil
	}
	s.scratch = AppendFrame(s.scratch[:0], cmd.Record, s.authToken, s.appID)
	if _, err := s.conn.Write(s.scratch); err != nil {
		s.failures.Add(1)
		telemetry.SendFailuresTotal.Inc()
	}
	return nil
}

// Emit sends pre-framed bytes as a single datagram. The worker prefers
// WriteRecord; Emit exists for raw passthrough use.
func (s *Sink) Emit(ctx context.Context, batch []byte) error {
	if len(batch) == 0 {
		return nil
	}
	if _, err := s.conn.Write(batch); err != nil {
		s.failures.Add(1)
		telemetry.SendFailuresTotal.Inc()
	}
	return nil
}

// Sync is a no-op; datagrams leave on Write.
func (s *Sink) Sync(ctx context.Context) error { return nil }

// Close releases the socket.
func (s *Sink) Close(ctx context.Context) error {
	return s.conn.Close()
}

// Failures reports how many sends were dropped so far.
func (s *Sink) Failures() uint64 {
	return s.failures.Load()
}

func init() {
	rsink.Register("udp", func(ctx context.Context, spec *asink.Specification) (asink.Sink, error) {
		if spec.UDP == nil {
			return nil, ErrNoAddr
		}
		s, err := New(spec.Name, spec.UDP.Addr, spec.UDP.AuthToken, spec.UDP.AppID)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
