package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImplicationRequiresBothChildren(t *testing.T) {
	leaf := Term("t", nil)

	_, err := Implication("x", nil, leaf)
	assert.Error(t, err)

	_, err = Implication("x", leaf, nil)
	assert.Error(t, err)

	e, err := Implication("x", leaf, leaf)
	require.NoError(t, err)
	assert.Equal(t, KindImplication, e.Kind)
}

func TestIdentityNotStructuralEquality(t *testing.T) {
	a := Term("leaf", "payload")
	b := Term("leaf", "payload")

	assert.True(t, a == a)
	assert.False(t, a == b, "distinct Term calls must not be identity-equal even with identical fields")
}

func TestChildrenByKind(t *testing.T) {
	leaf := Term("leaf", nil)
	and := And("a", []*Expression{leaf, leaf})
	assert.Len(t, and.Children(), 2)

	impl := MustImplication("i", leaf, and)
	assert.Equal(t, []*Expression{leaf, and}, impl.Children())

	assert.Nil(t, leaf.Children())
}

func TestWalkPreOrderAndEarlyStop(t *testing.T) {
	leaf1 := Term("l1", nil)
	leaf2 := Term("l2", nil)
	root := And("root", []*Expression{leaf1, leaf2})

	var visited []string
	Walk(root, func(e *Expression) bool {
		visited = append(visited, e.Name)
		return true
	})
	assert.Equal(t, []string{"root", "l1", "l2"}, visited)

	var stopped []string
	Walk(root, func(e *Expression) bool {
		stopped = append(stopped, e.Name)
		return e.Name != "root"
	})
	assert.Equal(t, []string{"root"}, stopped)
}

func TestSharedSubtreeReferencedByMultipleParents(t *testing.T) {
	shared := Term("shared", nil)
	p1 := And("p1", []*Expression{shared})
	p2 := And("p2", []*Expression{shared})

	assert.Same(t, p1.Operands[0], p2.Operands[0])
}
