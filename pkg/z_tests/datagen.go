package tests

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	datagen "github.com/arjunsk/cometbench/pkg/b_datagen"
	"github.com/arjunsk/cometbench/pkg/y/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefix = "gen_"

// Props builds generator settings under the "gen_" prefix. extra holds
// additional suffix -> value pairs.
func Props(start, end int, extra map[string]string) config.Props {
	p := config.Props{
		prefix + datagen.StartByteKey: fmt.Sprint(start),
		prefix + datagen.EndByteKey:   fmt.Sprint(end),
	}
	for k, v := range extra {
		p[prefix+k] = v
	}
	return p
}

func Prefix() string { return prefix }

// TestByteRange every byte lies in [start, end], including the bytes of a
// short final chunk.
func TestByteRange(
	newGen func() datagen.DataGenerator,
	extra map[string]string,
	t *testing.T,
) {
	for _, bounds := range [][2]int{{0, 1}, {65, 90}, {32, 126}, {0, 255}, {254, 255}} {
		gen := newGen()
		require.NoError(t, gen.InitProps(Props(bounds[0], bounds[1], extra), prefix))

		r := rand.New(rand.NewSource(int64(bounds[0]*256 + bounds[1])))
		for _, n := range []int{0, 1, 127, 128, 129, 300, 1000, 4097} {
			buf := gen.Fill(r, make([]byte, n))
			require.Len(t, buf, n)
			for i, b := range buf {
				if int(b) < bounds[0] || int(b) > bounds[1] {
					t.Fatalf("byte %d at %d outside [%d,%d] (n=%d)", b, i, bounds[0], bounds[1], n)
				}
			}
		}
	}
}

// TestDeterminism two generators fed identically seeded sources produce
// byte-identical output, call after call.
func TestDeterminism(
	newGen func() datagen.DataGenerator,
	extra map[string]string,
	t *testing.T,
) {
	props := Props(32, 126, extra)

	a, b := newGen(), newGen()
	require.NoError(t, a.InitProps(props, prefix))
	require.NoError(t, b.InitProps(props, prefix))

	ra := rand.New(rand.NewSource(42))
	rb := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		n := 100 + i*37
		assert.Equal(t, a.Fill(ra, make([]byte, n)), b.Fill(rb, make([]byte, n)), "fill %d", i)
	}
}

// TestFillInPlace Fill writes into and returns the caller's buffer.
func TestFillInPlace(
	newGen func() datagen.DataGenerator,
	extra map[string]string,
	t *testing.T,
) {
	gen := newGen()
	require.NoError(t, gen.InitProps(Props(65, 90, extra), prefix))

	buf := make([]byte, 333)
	out := gen.Fill(rand.New(rand.NewSource(1)), buf)
	assert.Equal(t, len(buf), len(out))
	assert.True(t, &buf[0] == &out[0])

	empty := gen.Fill(rand.New(rand.NewSource(1)), []byte{})
	assert.Len(t, empty, 0)
}

// TestConfigErrors bad byte bounds and missing or malformed settings are
// configuration errors naming the offending setting.
func TestConfigErrors(
	newGen func() datagen.DataGenerator,
	extra map[string]string,
	t *testing.T,
) {
	cases := []struct {
		props config.Props
		cite  string
	}{
		{Props(-1, 10, extra), "start=-1"},
		{Props(256, 300, extra), "start=256"},
		{Props(0, 256, extra), "end=256"},
		{Props(0, -3, extra), "end=-3"},
		{Props(10, 10, extra), "start/end=10"},
		{Props(20, 10, extra), "start/end=20"},
		{config.Props{prefix + datagen.EndByteKey: "10"}, prefix + datagen.StartByteKey},
		{config.Props{prefix + datagen.StartByteKey: "x", prefix + datagen.EndByteKey: "10"}, prefix + datagen.StartByteKey},
	}
	for _, c := range cases {
		err := newGen().InitProps(c.props, prefix)
		require.Error(t, err, c.cite)

		var ce *config.Error
		require.True(t, errors.As(err, &ce), "%v", err)
		assert.Contains(t, err.Error(), c.cite)
	}
}
