package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassType_Names(t *testing.T) {
	inner := &ClassType{
		Base: &ClassType{
			Base: &ClassType{Name: "q"},
			Name: "Outer",
		},
		Name: "Inner",
	}
	assert.Equal(t, []string{"q", "Outer", "Inner"}, inner.Names())
	assert.Equal(t, "q.Outer.Inner", inner.String())

	simple := &ClassType{Name: "Foo"}
	assert.Equal(t, []string{"Foo"}, simple.Names())
	assert.Equal(t, "Foo", simple.String())
}
