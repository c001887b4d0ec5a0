package entry

import (
	"encoding/binary"
	"fmt"
)

// ListToByteArray frames each value as an 8 byte little endian length
// followed by the value bytes. Keys are not encoded.
func ListToByteArray[K any](items []Pair[K, []byte]) []byte {
	var output []byte
	for _, item := range items {
		output = binary.LittleEndian.AppendUint64(output, uint64(len(item.Val)))
		output = append(output, item.Val...)
	}
	return output
}

// ByteArrayToList reverses ListToByteArray. A truncated length prefix or
// value is an error.
func ByteArrayToList(body []byte) ([][]byte, error) {
	var res [][]byte
	for len(body) > 0 {
		if len(body) < 8 {
			return nil, fmt.Errorf("truncated length prefix: %d bytes", len(body))
		}
		length := binary.LittleEndian.Uint64(body[:8])
		body = body[8:]
		if uint64(len(body)) < length {
			return nil, fmt.Errorf("truncated value: want %d bytes, have %d", length, len(body))
		}
		res = append(res, body[:length])
		body = body[length:]
	}
	return res, nil
}
