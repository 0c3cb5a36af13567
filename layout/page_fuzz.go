// +build gofuzz

package layout

import (
	"github.com/hexbee-net/strata/schema"
)

var fuzzLeaves = func() []*schema.Leaf {
	s, err := schema.New(
		schema.NewField("id", schema.Int64Type, false),
		schema.NewField("name", schema.StringType, true),
		schema.NewField("tags", schema.ListOf(schema.StructOf(
			schema.NewField("flag", schema.BooleanType, true),
		), true), true),
	)
	if err != nil {
		panic(err)
	}

	return s.Leaves()
}()

func FuzzReadPage(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	desc := fuzzLeaves[int(data[0])%len(fuzzLeaves)]

	r := NewPageReader(nil)
	if _, err := r.ReadPage(data[1:], desc); err != nil {
		return 0
	}

	return 1
}
