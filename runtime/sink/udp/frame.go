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
	"encoding/binary"

	"dirpx.dev/dcast/apis/record"
)

// Frame layout, one datagram per record, all integers little-endian:
//
//	auth_token  u32 length + bytes
//	app_id      u32 length + bytes
//	level       u8 (the level's numeric value)
//	target      u32 length + bytes
//	message     u32 length + bytes
//	file        u8 presence; when 1: u32 length + bytes
//	line        u8 presence; when 1: u32
//	unix_nanos  u64
//
// The layout is binary-compatible with an existing receiver and is frozen
// by the fixture in frame_test.go; any change here is a wire break.

// AppendFrame serializes one record into dst and returns the extended
// slice. The auth token and app id come from the sink configuration; a
// token or app id carried on the record itself wins, so per-record
// identity can override the sink default.
func AppendFrame(dst []byte, r *record.Record, authToken, appID string) []byte {
	if r.AuthToken != "" {
		authToken = r.AuthToken
	}
	if r.AppID != "" {
		appID = r.AppID
	}

	dst = appendString(dst, authToken)
	dst = appendString(dst, appID)
	dst = append(dst, byte(r.Level))
	dst = appendString(dst, r.Target)
	dst = appendString(dst, r.Message)

	if r.File != "" {
		dst = append(dst, 1)
		dst = appendString(dst, r.File)
	} else {
		dst = append(dst, 0)
	}

	if r.Line != 0 {
		dst = append(dst, 1)
		dst = binary.LittleEndian.AppendUint32(dst, uint32(r.Line))
	} else {
		dst = append(dst, 0)
	}

	var nanos uint64
	if !r.Time.IsZero() {
		nanos = uint64(r.Time.UnixNano())
	}
	dst = binary.LittleEndian.AppendUint64(dst, nanos)
	return dst
}

// appendString writes a u32 little-endian length prefix followed by the
// raw bytes.
func appendString(dst []byte, s string) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s)))
	return append(dst, s...)
}
