package layout

import (
	"bytes"
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/encoding"
)

func nullCount(validity []bool) int {
	n := 0

	for _, v := range validity {
		if !v {
			n++
		}
	}

	return n
}

// writeValidity stores the mask only when it holds at least one null.
func writeValidity(w *bytes.Buffer, validity []bool) error {
	if nullCount(validity) == 0 {
		return w.WriteByte(validityAbsent)
	}

	if err := w.WriteByte(validityPresent); err != nil {
		return err
	}

	enc, err := encoding.NewHybridEncoder(1)
	if err != nil {
		return err
	}

	if err := enc.InitSize(w); err != nil {
		return err
	}

	if err := enc.EncodeBools(validity); err != nil {
		return errors.Wrap(err, "failed to encode validity")
	}

	return enc.Close()
}

func readValidity(r *bytes.Reader, n int) ([]bool, error) {
	flag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch flag {
	case validityAbsent:
		return nil, nil
	case validityPresent:
	default:
		return nil, errors.WithFields(
			errors.WithStack(errInvalidPage),
			errors.Fields{
				"validity-flag": flag,
			})
	}

	dec, err := encoding.NewHybridDecoder(1)
	if err != nil {
		return nil, err
	}

	if err := dec.InitSize(r); err != nil {
		return nil, errors.Wrap(err, "failed to read validity")
	}

	res := make([]bool, n)
	if err := dec.NextBools(res); err != nil {
		return nil, errors.Wrap(err, "failed to decode validity")
	}

	return res, nil
}

func writeOffsets(w io.Writer, offsets []int32) error {
	enc := &encoding.DeltaBinaryPackEncoder32{}

	if err := enc.Init(w); err != nil {
		return err
	}

	if err := enc.Encode(offsets); err != nil {
		return errors.Wrap(err, "failed to encode offsets")
	}

	return enc.Close()
}

// readOffsets decodes n+1 offsets starting at zero and never decreasing.
func readOffsets(r io.Reader, n int) ([]int32, error) {
	dec := &encoding.DeltaBinaryPackDecoder32{}

	if err := dec.Init(r); err != nil {
		return nil, errors.Wrap(err, "failed to read offsets")
	}

	if dec.Count() != n+1 {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidPage),
			errors.Fields{
				"offsets":  dec.Count(),
				"expected": n + 1,
			})
	}

	res := make([]int32, n+1)
	if err := encoding.DecodeInt32(dec, res); err != nil {
		return nil, errors.Wrap(err, "failed to decode offsets")
	}

	if res[0] != 0 {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidPage),
			errors.Fields{
				"first-offset": res[0],
			})
	}

	for i := 1; i < len(res); i++ {
		if res[i] < res[i-1] {
			return nil, errors.WithFields(
				errors.WithStack(errInvalidPage),
				errors.Fields{
					"offset-index": i,
				})
		}
	}

	return res, nil
}

func readLength(r io.Reader, expected int) (int, error) {
	n, err := encoding.ReadUVarInt32(r)
	if err != nil {
		return 0, err
	}

	if expected >= 0 && int(n) != expected {
		return 0, errors.WithFields(
			errors.WithStack(errInvalidPage),
			errors.Fields{
				"length":   n,
				"expected": expected,
			})
	}

	if n > maxPageValues {
		return 0, errors.WithFields(
			errors.WithStack(errPageTooLarge),
			errors.Fields{
				"length": n,
			})
	}

	return int(n), nil
}
