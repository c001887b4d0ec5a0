package motif

import (
	"bytes"
	"math/rand"
	"testing"

	datagen "github.com/arjunsk/cometbench/pkg/b_datagen"
	"github.com/arjunsk/cometbench/pkg/b_datagen/uniform"
	"github.com/arjunsk/cometbench/pkg/y/config"
	"github.com/arjunsk/cometbench/pkg/y/stats"
	tests "github.com/arjunsk/cometbench/pkg/z_tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var half = map[string]string{datagen.UniquenessKey: "0.5"}

func newGen() datagen.DataGenerator { return New() }

func TestByteRange(t *testing.T) {
	tests.TestByteRange(newGen, half, t)
	tests.TestByteRange(newGen, map[string]string{datagen.UniquenessKey: "0"}, t)
	tests.TestByteRange(newGen, map[string]string{datagen.UniquenessKey: "1"}, t)
	tests.TestByteRange(newGen, map[string]string{datagen.UniquenessKey: "0.3", datagen.MotifLenKey: "40"}, t)
}

func TestDeterminism(t *testing.T) {
	tests.TestDeterminism(newGen, half, t)
}

func TestFillInPlace(t *testing.T) {
	tests.TestFillInPlace(newGen, half, t)
}

func TestConfigErrors(t *testing.T) {
	tests.TestConfigErrors(newGen, half, t)
}

func TestInitStartCited(t *testing.T) {
	err := New().InitDefault(-1, 10, 0.5)
	require.Error(t, err)
	assert.True(t, config.IsConfigError(err))
	assert.Contains(t, err.Error(), "start=-1")
}

func TestInitMotifLength(t *testing.T) {
	g := New()
	err := g.Init(0, 10, 0.5, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), datagen.MotifLenKey)

	err = g.InitProps(tests.Props(0, 10, map[string]string{
		datagen.UniquenessKey: "0.5",
		datagen.MotifLenKey:   "abc",
	}), tests.Prefix())
	require.Error(t, err)
	assert.True(t, config.IsConfigError(err))
}

func TestInitPropsMotifLength(t *testing.T) {
	g := New()
	require.NoError(t, g.InitProps(tests.Props(0, 10, map[string]string{
		datagen.UniquenessKey: "0.5",
		datagen.MotifLenKey:   "64",
	}), tests.Prefix()))
	g.Fill(rand.New(rand.NewSource(1)), make([]byte, 10))
	assert.Len(t, g.Motifs(), 64)

	g = New()
	require.NoError(t, g.InitProps(tests.Props(0, 10, half), tests.Prefix()))
	g.Fill(rand.New(rand.NewSource(1)), make([]byte, 10))
	assert.Len(t, g.Motifs(), DefaultMotifBufferSize)

	err := New().InitProps(tests.Props(0, 10, nil), tests.Prefix())
	require.Error(t, err)
	assert.Contains(t, err.Error(), tests.Prefix()+datagen.UniquenessKey)
}

func TestEstMaxCompression(t *testing.T) {
	g := New()
	for start := 0; start < 256; start += 17 {
		for end := start + 1; end < 256; end += 23 {
			for _, u := range []float64{0, 0.1, 0.5, 0.9, 1} {
				require.NoError(t, g.InitDefault(start, end, u))
				est := g.EstMaxCompression()
				assert.GreaterOrEqual(t, est, 0.0)
				assert.LessOrEqual(t, est, 1.0)
			}
		}
	}

	require.NoError(t, g.InitDefault(0, 254, 1.0))
	assert.InDelta(t, 1.0, g.EstMaxCompression(), 1e-12)

	require.NoError(t, g.InitDefault(65, 90, 0.5))
	assert.InDelta(t, 26.0/255.0*0.5, g.EstMaxCompression(), 1e-12)

	require.NoError(t, g.InitDefault(0, 255, 1.0))
	assert.Equal(t, 1.0, g.EstMaxCompression())

	require.NoError(t, g.InitDefault(0, 100, 0))
	assert.Equal(t, 0.0, g.EstMaxCompression())
}

// A-Z, all motif: each fill is one window of the fixed motif buffer.
func TestAllMotifIsMotifSlice(t *testing.T) {
	g := New()
	require.NoError(t, g.Init(65, 90, 0.0, 512))
	r := rand.New(rand.NewSource(7))

	first := g.Fill(r, make([]byte, 300))
	motifs := append([]byte(nil), g.Motifs()...)
	require.Len(t, motifs, 512)

	// 300 bytes span three chunks, each its own window.
	for i := 0; i < 300; i += 128 {
		end := min(300, i+128)
		assert.True(t, bytes.Contains(motifs, first[i:end]), "chunk at %d", i)
	}

	second := g.Fill(r, make([]byte, 300))
	assert.Equal(t, motifs, g.Motifs(), "motif buffer must not change")
	for i := 0; i < 300; i += 128 {
		end := min(300, i+128)
		assert.True(t, bytes.Contains(motifs, second[i:end]), "chunk at %d", i)
	}

	for _, b := range append(first, second...) {
		assert.True(t, b >= 'A' && b <= 'Z')
	}
}

// A buffer no longer than one chunk is a single contiguous motif window.
func TestAllMotifSingleChunk(t *testing.T) {
	g := New()
	require.NoError(t, g.Init(65, 90, 0.0, 100))
	r := rand.New(rand.NewSource(11))

	for i := 0; i < 50; i++ {
		n := 1 + r.Intn(100)
		out := g.Fill(r, make([]byte, n))
		assert.True(t, bytes.Contains(g.Motifs(), out), "n=%d", n)
	}
}

func TestAllFreshBinary(t *testing.T) {
	g := New()
	require.NoError(t, g.InitDefault(0, 1, 1.0))

	out := g.Fill(rand.New(rand.NewSource(3)), make([]byte, 1000))
	ones := 0
	for _, b := range out {
		require.True(t, b == 0 || b == 1)
		ones += int(b)
	}
	// both values occur
	assert.Greater(t, ones, 300)
	assert.Less(t, ones, 700)
}

// With uniqueness 1 the output does not line up with the motif buffer.
func TestAllFreshIgnoresMotifs(t *testing.T) {
	g := New()
	require.NoError(t, g.InitDefault(0, 255, 1.0))
	r := rand.New(rand.NewSource(5))

	hits := 0
	for i := 0; i < 20; i++ {
		out := g.Fill(r, make([]byte, 64))
		if bytes.Contains(g.Motifs(), out[:16]) {
			hits++
		}
	}
	assert.Equal(t, 0, hits)
}

func TestMotifBufferLifecycle(t *testing.T) {
	g := New()
	require.NoError(t, g.InitDefault(32, 126, 0.5))
	assert.Nil(t, g.Motifs())

	r := rand.New(rand.NewSource(9))
	g.Fill(r, make([]byte, 10))
	m := g.Motifs()
	require.Len(t, m, DefaultMotifBufferSize)

	g.Fill(r, make([]byte, 1000))
	assert.True(t, &m[0] == &g.Motifs()[0])

	// re-init drops the buffer
	require.NoError(t, g.InitDefault(32, 126, 0.5))
	assert.Nil(t, g.Motifs())
}

// The motif buffer is drawn from the caller's source on the first fill
// only: motifBytes draws first, then one Float64 per chunk.
func TestRandomConsumption(t *testing.T) {
	src := &countingSource{r: rand.New(rand.NewSource(1))}
	g := New()
	require.NoError(t, g.Init(0, 9, 0.0, 200))

	g.Fill(src, make([]byte, 0))
	assert.Equal(t, 200, src.ints)
	assert.Equal(t, 0, src.floats)

	src.reset()
	g.Fill(src, make([]byte, 300))
	// chunks of 128: 128, 128, 44; each motif chunk draws one offset
	assert.Equal(t, 3, src.floats)
	assert.Equal(t, 3, src.ints)
	for _, n := range src.intArgs {
		assert.True(t, n == 200-128+1 || n == 200-44+1, "offset bound %d", n)
	}
}

// A motif buffer smaller than the default chunk caps the chunk size.
func TestSmallMotifBuffer(t *testing.T) {
	src := &countingSource{r: rand.New(rand.NewSource(2))}
	g := New()
	require.NoError(t, g.Init(0, 9, 0.0, 16))
	g.Fill(src, make([]byte, 0))

	src.reset()
	out := g.Fill(src, make([]byte, 50))
	// 16, 16, 16, 2
	assert.Equal(t, 4, src.floats)
	assert.Equal(t, []int{1, 1, 1, 15}, src.intArgs)
	for i := 0; i < 48; i += 16 {
		assert.Equal(t, g.Motifs(), out[i:i+16])
	}
}

func TestReproducibleAcrossInstances(t *testing.T) {
	run := func() [][]byte {
		g := New()
		require.NoError(t, g.InitDefault(65, 90, 0.3))
		r := rand.New(rand.NewSource(1234))
		var out [][]byte
		for i := 0; i < 5; i++ {
			out = append(out, g.Fill(r, make([]byte, 500)))
		}
		return out
	}
	assert.Equal(t, run(), run())
}

// Reuse of one motif buffer makes the concatenated output of many fills
// far more repetitive than uniform bytes over the same alphabet.
func TestCompressibilityEmerges(t *testing.T) {
	concat := func(gen datagen.DataGenerator, seed int64) []byte {
		r := rand.New(rand.NewSource(seed))
		var all []byte
		for i := 0; i < 64; i++ {
			all = append(all, gen.Fill(r, make([]byte, 256))...)
		}
		return all
	}

	base := uniform.New()
	require.NoError(t, base.Init(32, 126))
	baseline := stats.RepeatRatio(concat(base, 1), 8)

	prev := 1.0
	for _, u := range []float64{0.0, 0.25, 0.5, 0.75} {
		g := New()
		require.NoError(t, g.InitDefault(32, 126, u))
		ratio := stats.RepeatRatio(concat(g, 1), 8)
		assert.Greater(t, ratio, baseline+0.1, "uniqueness %.2f", u)
		assert.Less(t, ratio, prev+0.05, "uniqueness %.2f", u)
		prev = ratio
	}
}

func TestUniquenessOutOfRange(t *testing.T) {
	below := New()
	require.NoError(t, below.InitDefault(65, 90, -3))
	zero := New()
	require.NoError(t, zero.InitDefault(65, 90, 0))
	assert.Equal(t,
		below.Fill(rand.New(rand.NewSource(8)), make([]byte, 700)),
		zero.Fill(rand.New(rand.NewSource(8)), make([]byte, 700)))

	above := New()
	require.NoError(t, above.InitDefault(65, 90, 7))
	one := New()
	require.NoError(t, one.InitDefault(65, 90, 1))
	assert.Equal(t,
		above.Fill(rand.New(rand.NewSource(8)), make([]byte, 700)),
		one.Fill(rand.New(rand.NewSource(8)), make([]byte, 700)))
}

func TestFillBeforeInitPanics(t *testing.T) {
	assert.Panics(t, func() {
		New().Fill(rand.New(rand.NewSource(1)), make([]byte, 10))
	})
}

func BenchmarkFill(b *testing.B) {
	for _, u := range []float64{0, 0.5, 1} {
		g := New()
		if err := g.InitDefault(32, 126, u); err != nil {
			b.Fatal(err)
		}
		r := rand.New(rand.NewSource(1))
		buf := make([]byte, 4096)
		b.Run(g.String(), func(b *testing.B) {
			b.SetBytes(int64(len(buf)))
			for n := 0; n < b.N; n++ {
				g.Fill(r, buf)
			}
		})
	}
}

type countingSource struct {
	r       *rand.Rand
	floats  int
	ints    int
	intArgs []int
}

func (c *countingSource) Float64() float64 {
	c.floats++
	return c.r.Float64()
}

func (c *countingSource) Intn(n int) int {
	c.ints++
	c.intArgs = append(c.intArgs, n)
	return c.r.Intn(n)
}

func (c *countingSource) reset() {
	c.floats, c.ints, c.intArgs = 0, 0, nil
}
