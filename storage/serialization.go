// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Binary wire helpers shared by storage backends. All values are
// little-endian and length-prefixed so round-trips are unambiguous.

// MarshalVector serializes an embedding vector to bytes.
func MarshalVector(vector []float32) []byte {
	buf := make([]byte, 4+4*len(vector))
	binary.LittleEndian.PutUint32(buf, uint32(len(vector)))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[4+4*i:], math.Float32bits(v))
	}
	return buf
}

// UnmarshalVector deserializes an embedding vector from bytes.
// The round-trip reproduces vectors bit-identical to the input.
func UnmarshalVector(data []byte) ([]float32, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: vector header", ErrTruncatedData)
	}
	n := int(binary.LittleEndian.Uint32(data))
	if len(data) < 4+4*n {
		return nil, fmt.Errorf("%w: vector body: want %d floats", ErrTruncatedData, n)
	}

	vector := make([]float32, n)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4+4*i:]))
	}
	return vector, nil
}

// AppendString appends a length-prefixed string to buf.
func AppendString(buf []byte, s string) []byte {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	buf = append(buf, n[:]...)
	return append(buf, s...)
}

// ReadString reads a length-prefixed string from data, returning the string
// and the number of bytes consumed.
func ReadString(data []byte) (string, int, error) {
	if len(data) < 4 {
		return "", 0, fmt.Errorf("%w: string header", ErrTruncatedData)
	}
	n := int(binary.LittleEndian.Uint32(data))
	if len(data) < 4+n {
		return "", 0, fmt.Errorf("%w: string body: want %d bytes", ErrTruncatedData, n)
	}
	return string(data[4 : 4+n]), 4 + n, nil
}

// AppendUint32 appends a little-endian uint32 to buf.
func AppendUint32(buf []byte, v uint32) []byte {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], v)
	return append(buf, n[:]...)
}

// ReadUint32 reads a little-endian uint32 from data, returning the value and
// the number of bytes consumed.
func ReadUint32(data []byte) (uint32, int, error) {
	if len(data) < 4 {
		return 0, 0, fmt.Errorf("%w: uint32", ErrTruncatedData)
	}
	return binary.LittleEndian.Uint32(data), 4, nil
}
