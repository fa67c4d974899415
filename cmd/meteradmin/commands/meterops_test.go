package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meteradmin/internal/domain"
	"meteradmin/internal/meter"
)

func apply(t *testing.T, coll *meter.Collection, ops ...string) error {
	t.Helper()
	for _, s := range ops {
		op, err := parseMeterOp(s)
		require.NoError(t, err, s)
		if err := op(coll); err != nil {
			return err
		}
	}
	return nil
}

func TestMeterOps(t *testing.T) {
	coll := meter.Load(domain.Meters{
		1: {ID: "A", Address: "X"},
		2: {ID: "B", Address: "Y"},
		3: {ID: "C", Address: "Z"},
	})

	require.NoError(t, apply(t, coll,
		"remove:2",
		"set:3:address=jalan baru",
		"add:D|gang sempit",
		"set:1:id=A1",
	))
	assert.Equal(t, domain.Meters{
		1: {ID: "A1", Address: "X"},
		2: {ID: "C", Address: "Jalan Baru"},
		3: {ID: "D", Address: "Gang Sempit"},
	}, coll.FinalizeMap())
}

func TestMeterOps_MissingSlot(t *testing.T) {
	coll := meter.Load(domain.Meters{1: {ID: "A"}})
	assert.Error(t, apply(t, coll, "remove:5"))
	assert.True(t, domain.IsValidation(apply(t, coll, "set:5:id=x")))
}

func TestParseMeterOp_Rejects(t *testing.T) {
	for _, s := range []string{
		"",
		"add",
		"add:|addr",
		"add:noaddress",
		"set:1",
		"set:x:id=1",
		"set:1:colour=red",
		"set:0:id=1",
		"remove:",
		"remove:-1",
		"rename:1",
	} {
		_, err := parseMeterOp(s)
		assert.Error(t, err, s)
	}
}
