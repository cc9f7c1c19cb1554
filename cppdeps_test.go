package cppdeps_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/silvanshade/cppdeps"
	"github.com/silvanshade/cppdeps/p1689"
)

func withTimeout(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func drain(t *testing.T, it *cppdeps.Iter) ([]p1689.DepInfo, []error) {
	t.Helper()
	var infos []p1689.DepInfo
	var errs []error
	for it.Next() {
		if err := it.Err(); err != nil {
			errs = append(errs, err)
			continue
		}
		infos = append(infos, it.Info())
	}
	return infos, errs
}

func primaryOutputs(infos []p1689.DepInfo) []string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.PrimaryOutput
	}
	return out
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

func linearChainFixtures() []p1689.DepInfo {
	provides := func(name string) p1689.ProvidedModuleDesc {
		return p1689.ByLogicalName(name).Provided().Build()
	}
	requires := func(name string) p1689.RequiredModuleDesc {
		return p1689.ByLogicalName(name).Required().Build()
	}
	bar := p1689.NewDepInfo().PrimaryOutput("bar.o").Provides(provides("bar")).Build()
	fooPart1 := p1689.NewDepInfo().PrimaryOutput("foo-part1.o").Provides(provides("foo:part1")).Build()
	fooPart2 := p1689.NewDepInfo().PrimaryOutput("foo-part2.o").Provides(provides("foo:part2")).Build()
	foo := p1689.NewDepInfo().
		PrimaryOutput("foo.o").
		Provides(provides("foo")).
		Requires(requires("bar")).
		Requires(requires("foo:part1")).
		Requires(requires("foo:part2")).
		Build()
	main := p1689.NewDepInfo().PrimaryOutput("main.o").Requires(requires("bar")).Build()
	return []p1689.DepInfo{bar, fooPart1, fooPart2, foo, main}
}

// TestEndToEndLinearChain is scenario 1 of SPEC_FULL.md §8: dep-infos fed in
// dependency order come back out respecting every provides/requires edge.
func TestEndToEndLinearChain(t *testing.T) {
	t.Parallel()

	b := cppdeps.NewBuilder().WithParallelism(2)
	for _, info := range linearChainFixtures() {
		b.AddDepInfo(info)
	}
	b.Expects(5)

	it, sink := b.Build(withTimeout(t))
	sink.Close()
	defer it.Close()

	infos, errs := drain(t, it)
	require.Empty(t, errs)

	got := primaryOutputs(infos)
	require.Len(t, got, 5)
	assert.Less(t, indexOf(got, "bar.o"), indexOf(got, "foo.o"))
	assert.Less(t, indexOf(got, "foo-part1.o"), indexOf(got, "foo.o"))
	assert.Less(t, indexOf(got, "foo-part2.o"), indexOf(got, "foo.o"))
	assert.Less(t, indexOf(got, "bar.o"), indexOf(got, "main.o"))
}

// TestEndToEndReverseInput is scenario 2: the same set fed in reverse order
// still comes back out respecting the partial order.
func TestEndToEndReverseInput(t *testing.T) {
	t.Parallel()

	fixtures := linearChainFixtures()
	b := cppdeps.NewBuilder()
	for i := len(fixtures) - 1; i >= 0; i-- {
		b.AddDepInfo(fixtures[i])
	}
	b.Expects(len(fixtures))

	it, sink := b.Build(withTimeout(t))
	sink.Close()
	defer it.Close()

	infos, errs := drain(t, it)
	require.Empty(t, errs)

	got := primaryOutputs(infos)
	require.Len(t, got, 5)
	assert.Less(t, indexOf(got, "bar.o"), indexOf(got, "foo.o"))
	assert.Less(t, indexOf(got, "bar.o"), indexOf(got, "main.o"))
}

// TestEndToEndMissingProvider is scenario 3: omitting a provider yields an
// OrderingSolutionBlocked error once input ends.
func TestEndToEndMissingProvider(t *testing.T) {
	t.Parallel()

	requires := func(name string) p1689.RequiredModuleDesc {
		return p1689.ByLogicalName(name).Required().Build()
	}
	main := p1689.NewDepInfo().PrimaryOutput("main.o").Requires(requires("bar")).Build()

	b := cppdeps.NewBuilder().AddDepInfo(main).Expects(1)
	it, sink := b.Build(withTimeout(t))
	sink.Close()
	defer it.Close()

	_, errs := drain(t, it)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "bar")
}

// TestEndToEndCycle is scenario 4: a provides/requires cycle also yields
// OrderingSolutionBlocked.
func TestEndToEndCycle(t *testing.T) {
	t.Parallel()

	provides := func(name string) p1689.ProvidedModuleDesc { return p1689.ByLogicalName(name).Provided().Build() }
	requires := func(name string) p1689.RequiredModuleDesc { return p1689.ByLogicalName(name).Required().Build() }

	foo := p1689.NewDepInfo().PrimaryOutput("foo.o").Provides(provides("foo")).Requires(requires("bar")).Build()
	bar := p1689.NewDepInfo().PrimaryOutput("bar.o").Provides(provides("bar")).Requires(requires("foo")).Build()

	b := cppdeps.NewBuilder().AddDepInfo(foo).AddDepInfo(bar).Expects(2)
	it, sink := b.Build(withTimeout(t))
	sink.Close()
	defer it.Close()

	_, errs := drain(t, it)
	require.Len(t, errs, 1)
}

// TestEndToEndDepDataParsing feeds raw dep-file JSON bytes through the
// parser stage of the pipeline rather than pre-parsed DepInfo values.
func TestEndToEndDepDataParsing(t *testing.T) {
	t.Parallel()

	barJSON := []byte(`{"version":1,"rules":[{"primary-output":"bar.o","provides":[{"logical-name":"bar"}]}]}`)
	fooJSON := []byte(`{"version":1,"rules":[{"primary-output":"foo.o","requires":[{"logical-name":"bar"}]}]}`)

	b := cppdeps.NewBuilder().
		AddDepData("foo.ddi", fooJSON).
		AddDepData("bar.ddi", barJSON).
		Expects(2)

	it, sink := b.Build(withTimeout(t))
	sink.Close()
	defer it.Close()

	infos, errs := drain(t, it)
	require.Empty(t, errs)
	got := primaryOutputs(infos)
	require.Len(t, got, 2)
	assert.Less(t, indexOf(got, "bar.o"), indexOf(got, "foo.o"))
}

// TestEndToEndDuplicateFieldParseError is scenario 6: a malformed dep-file
// surfaces a precise, non-fatal parse error while unrelated items still
// flow through.
func TestEndToEndDuplicateFieldParseError(t *testing.T) {
	t.Parallel()

	dup := []byte(`{"version":1,"version":2,"rules":[]}`)
	good := p1689.NewDepInfo().PrimaryOutput("ok.o").Build()

	b := cppdeps.NewBuilder().
		AddDepData("dup.ddi", dup).
		AddDepInfo(good).
		Expects(2)

	it, sink := b.Build(withTimeout(t))
	sink.Close()
	defer it.Close()

	infos, errs := drain(t, it)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Duplicate field")
	require.Len(t, infos, 1)
	assert.Equal(t, "ok.o", infos[0].PrimaryOutput)
}

// TestConcurrentSinkProducers exercises the many-producer side of the
// pipeline: several goroutines push items through the same Sink
// concurrently while a single Iter drains the result.
func TestConcurrentSinkProducers(t *testing.T) {
	t.Parallel()

	const n = 50
	b := cppdeps.NewBuilder().WithParallelism(4)
	it, sink := b.Build(withTimeout(t))
	defer sink.Close()

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			name := "m" + string(rune('A'+i%26)) + string(rune('0'+i/26))
			info := p1689.NewDepInfo().
				PrimaryOutput(name + ".o").
				Provides(p1689.ByLogicalName(name).Provided().Build()).
				Build()
			return sink.PushDepInfo(context.Background(), info)
		})
	}
	require.NoError(t, g.Wait())
	require.NoError(t, sink.Expect(context.Background(), n))

	infos, errs := drain(t, it)
	require.Empty(t, errs)
	assert.Len(t, infos, n)
}

// TestIterCloseStopsPipelineEarly exercises drop-early semantics: closing
// the Iter before it is exhausted must not hang the test.
func TestIterCloseStopsPipelineEarly(t *testing.T) {
	t.Parallel()

	fixtures := linearChainFixtures()
	b := cppdeps.NewBuilder()
	for _, info := range fixtures {
		b.AddDepInfo(info)
	}

	it, sink := b.Build(withTimeout(t))
	require.True(t, it.Next())
	it.Close()
	sink.Close()
}
