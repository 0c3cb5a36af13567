// +build gofuzz

package encoding

import "bytes"

func FuzzHybridDecoder(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	d, err := NewHybridDecoder(int(data[0] % 33))
	if err != nil {
		return 0
	}

	if err := d.Init(bytes.NewReader(data[1:])); err != nil {
		return 0
	}

	for i := 0; i < len(data)*8; i++ {
		if _, err := d.Next(); err != nil {
			return 0
		}
	}

	return 1
}

func FuzzDeltaBinaryPackDecoder32(data []byte) int {
	d := DeltaBinaryPackDecoder32{}

	if err := d.Init(bytes.NewReader(data)); err != nil {
		return 0
	}

	for i := 0; i < d.Count(); i++ {
		if _, err := d.Next(); err != nil {
			return 0
		}
	}

	return 1
}

func FuzzDeltaBinaryPackDecoder64(data []byte) int {
	d := DeltaBinaryPackDecoder64{}

	if err := d.Init(bytes.NewReader(data)); err != nil {
		return 0
	}

	for i := 0; i < d.Count(); i++ {
		if _, err := d.Next(); err != nil {
			return 0
		}
	}

	return 1
}
