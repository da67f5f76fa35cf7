package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type ambiguityReport struct {
	parent   *Node
	child    *Node
	sibling  *Node
	examples []string
}

func collectAmbiguities(d *Dispatcher) []ambiguityReport {
	var reports []ambiguityReport
	d.FindAmbiguities(func(parent, child, sibling *Node, examples []string) {
		reports = append(reports, ambiguityReport{parent, child, sibling, examples})
	})
	return reports
}

func TestAmbiguityDisjointSiblings(t *testing.T) {
	d := New()
	d.Register(Literal("foo").Executes(one))
	d.Register(Literal("bar").Executes(one))

	require.Empty(t, collectAmbiguities(d))
}

func TestAmbiguityOverlappingArguments(t *testing.T) {
	d := New()
	parent := d.Register(Literal("set").Then(
		Argument("count", Integer()).Executes(one),
		Argument("ratio", Float()).Executes(one),
	))
	count := parent.Child("count")
	ratio := parent.Child("ratio")

	reports := collectAmbiguities(d)
	require.Len(t, reports, 2, "one report per ordered pair")

	require.Same(t, parent, reports[0].parent)
	require.Same(t, count, reports[0].child)
	require.Same(t, ratio, reports[0].sibling)
	require.Equal(t, []string{"-123", "0", "123"}, reports[0].examples,
		"every integer example is valid float input")

	require.Same(t, ratio, reports[1].child)
	require.Same(t, count, reports[1].sibling)
	require.Equal(t, []string{"-1", "0"}, reports[1].examples,
		"only whole-number float examples parse as integers")
}

func TestAmbiguityLiteralShadowedByArgument(t *testing.T) {
	d := New()
	parent := d.Register(Literal("kill").Then(
		Literal("all").Executes(one),
		Argument("target", Word()).Executes(one),
	))

	reports := collectAmbiguities(d)
	require.Len(t, reports, 1, "the literal's token is valid word input, never the reverse")

	require.Same(t, parent.Child("all"), reports[0].child)
	require.Same(t, parent.Child("target"), reports[0].sibling)
	require.Equal(t, []string{"all"}, reports[0].examples)
}

func TestAmbiguityScansNestedLevels(t *testing.T) {
	d := New()
	d.Register(Literal("outer").Then(
		Literal("safe").Executes(one),
		Literal("deep").Then(
			Argument("a", Word()).Executes(one),
			Argument("b", Greedy()).Executes(one),
		),
	))

	reports := collectAmbiguities(d)
	require.NotEmpty(t, reports)
	for _, r := range reports {
		require.Equal(t, "deep", r.parent.Name())
	}
}
