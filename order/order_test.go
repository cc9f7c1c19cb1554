package order_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvanshade/cppdeps/order"
	"github.com/silvanshade/cppdeps/p1689"
)

// requireEquivalent fails the test with a structural diff if expected and
// actual are not equal, the way linker/symbols_test.go compares symbol
// tables.
func requireEquivalent(t *testing.T, expected, actual any) {
	t.Helper()
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Error(diff)
	}
}

func provides(name string) p1689.ProvidedModuleDesc {
	return p1689.ByLogicalName(name).Provided().Build()
}

func requires(name string) p1689.RequiredModuleDesc {
	return p1689.ByLogicalName(name).Required().Build()
}

// drainReady pulls every currently-ready DepInfo out of o, by its
// primary-output, in FIFO readiness order.
func drainReady(o *order.Order) []string {
	var out []string
	for {
		info, ok := o.Next()
		if !ok {
			return out
		}
		out = append(out, info.PrimaryOutput)
	}
}

// indexOf finds s's position in order, or -1.
func indexOf(order []string, s string) int {
	for i, v := range order {
		if v == s {
			return i
		}
	}
	return -1
}

func TestLinearChain(t *testing.T) {
	t.Parallel()

	o := order.New()

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

	for _, info := range []p1689.DepInfo{bar, fooPart1, fooPart2, foo, main} {
		o.Push(info)
	}

	got := drainReady(o)
	require.NoError(t, o.Finish())
	require.Len(t, got, 5)

	assert.Less(t, indexOf(got, "bar.o"), indexOf(got, "foo.o"))
	assert.Less(t, indexOf(got, "foo-part1.o"), indexOf(got, "foo.o"))
	assert.Less(t, indexOf(got, "foo-part2.o"), indexOf(got, "foo.o"))
	assert.Less(t, indexOf(got, "bar.o"), indexOf(got, "main.o"))
}

func TestReverseInput(t *testing.T) {
	t.Parallel()

	o := order.New()

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

	for _, info := range []p1689.DepInfo{main, foo, fooPart2, fooPart1, bar} {
		o.Push(info)
	}

	got := drainReady(o)
	require.NoError(t, o.Finish())
	require.Len(t, got, 5)

	assert.Less(t, indexOf(got, "bar.o"), indexOf(got, "foo.o"))
	assert.Less(t, indexOf(got, "foo-part1.o"), indexOf(got, "foo.o"))
	assert.Less(t, indexOf(got, "foo-part2.o"), indexOf(got, "foo.o"))
	assert.Less(t, indexOf(got, "bar.o"), indexOf(got, "main.o"))
}

func TestMissingProvider(t *testing.T) {
	t.Parallel()

	o := order.New()
	main := p1689.NewDepInfo().PrimaryOutput("main.o").Requires(requires("bar")).Build()
	o.Push(main)

	assert.Empty(t, drainReady(o))
	err := o.Finish()
	require.Error(t, err)

	var oerr *order.Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, order.KindOrderingSolutionBlocked, oerr.Kind)
	assert.Contains(t, oerr.Report.Names, "bar")
}

func TestCycle(t *testing.T) {
	t.Parallel()

	o := order.New()
	foo := p1689.NewDepInfo().PrimaryOutput("foo.o").Provides(provides("foo")).Requires(requires("bar")).Build()
	bar := p1689.NewDepInfo().PrimaryOutput("bar.o").Provides(provides("bar")).Requires(requires("foo")).Build()

	o.Push(foo)
	o.Push(bar)

	assert.Empty(t, drainReady(o))
	err := o.Finish()
	require.Error(t, err)

	var oerr *order.Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, order.KindOrderingSolutionBlocked, oerr.Kind)
}

func TestInfoWithNoRequiresOrProvidesPassesThroughImmediately(t *testing.T) {
	t.Parallel()

	o := order.New()
	info := p1689.NewDepInfo().PrimaryOutput("standalone.o").Build()
	o.Push(info)

	got, ok := o.Next()
	require.True(t, ok)
	requireEquivalent(t, info, got)
	assert.Zero(t, o.Pending())
	require.NoError(t, o.Finish())
}

func TestEmptyRulesProducesZeroOutputs(t *testing.T) {
	t.Parallel()

	o := order.New()
	_, ok := o.Next()
	assert.False(t, ok)
	require.NoError(t, o.Finish())
}

// TestFIFOReadinessOrder checks that when several infos become ready at the
// same instant (released by a single provider's cascade), they are queued
// in the order the cascade visits them, not the order they were pushed.
func TestFIFOReadinessOrder(t *testing.T) {
	t.Parallel()

	o := order.New()

	c1 := p1689.NewDepInfo().PrimaryOutput("c1.o").Requires(requires("root")).Build()
	c2 := p1689.NewDepInfo().PrimaryOutput("c2.o").Requires(requires("root")).Build()
	root := p1689.NewDepInfo().PrimaryOutput("root.o").Provides(provides("root")).Build()

	o.Push(c1)
	o.Push(c2)
	o.Push(root)

	got := drainReady(o)
	require.Equal(t, []string{"root.o", "c1.o", "c2.o"}, got)
	require.NoError(t, o.Finish())
}

// TestIdempotentReordering feeds the same set of infos back into a fresh
// Order in the emitted order and checks the result is the same sequence,
// satisfying the idempotence property of SPEC_FULL.md §8.
func TestIdempotentReordering(t *testing.T) {
	t.Parallel()

	build := func() []p1689.DepInfo {
		bar := p1689.NewDepInfo().PrimaryOutput("bar.o").Provides(provides("bar")).Build()
		foo := p1689.NewDepInfo().PrimaryOutput("foo.o").Provides(provides("foo")).Requires(requires("bar")).Build()
		main := p1689.NewDepInfo().PrimaryOutput("main.o").Requires(requires("foo")).Build()
		return []p1689.DepInfo{main, foo, bar}
	}

	first := order.New()
	for _, info := range build() {
		first.Push(info)
	}
	firstOrder := drainReady(first)
	require.NoError(t, first.Finish())

	second := order.New()
	byOutput := map[string]p1689.DepInfo{}
	for _, info := range build() {
		byOutput[info.PrimaryOutput] = info
	}
	for _, out := range firstOrder {
		second.Push(byOutput[out])
	}
	secondOrder := drainReady(second)
	require.NoError(t, second.Finish())

	assert.Equal(t, firstOrder, secondOrder)
}
