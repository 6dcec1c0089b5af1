package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type AttributeTestSuite struct {
	suite.Suite
}

func (s *AttributeTestSuite) Test_NewProtectedAttribute() {
	pa, err := NewProtectedAttribute([]string{"b", "a", "b", "c"}, "a")
	s.NoError(err)
	s.Equal([]string{"a", "b", "c"}, pa.Levels)
	s.Equal("a", pa.Privileged)
	s.Equal(4, pa.Rows())
	s.True(pa.HasLevel("c"))
	s.False(pa.HasLevel("d"))
}

func (s *AttributeTestSuite) Test_NewProtectedAttribute_CopiesValues() {
	raw := []string{"a", "b"}
	pa, err := NewProtectedAttribute(raw, "a")
	s.NoError(err)

	raw[0] = "mutated"
	s.Equal("a", pa.Values[0])
}

func (s *AttributeTestSuite) Test_NewProtectedAttribute_Errors() {
	_, err := NewProtectedAttribute(nil, "a")
	s.ErrorIs(err, ErrMissingParameter)

	_, err = NewProtectedAttribute([]string{"a"}, "")
	s.ErrorIs(err, ErrMissingParameter)

	_, err = NewProtectedAttribute([]string{"a", "b"}, "z")
	s.ErrorIs(err, ErrInvalidLevel)
}

func (s *AttributeTestSuite) Test_GroupRows() {
	pa, err := NewProtectedAttribute([]string{"a", "b", "a"}, "a")
	s.NoError(err)
	s.Equal([]int{0, 2}, pa.GroupRows("a"))
	s.Equal([]int{1}, pa.GroupRows("b"))
	s.Empty(pa.GroupRows("z"))
}

func (s *AttributeTestSuite) Test_Equal() {
	pa1, _ := NewProtectedAttribute([]string{"a", "b"}, "a")
	pa2, _ := NewProtectedAttribute([]string{"a", "b"}, "a")
	pa3, _ := NewProtectedAttribute([]string{"b", "a"}, "a")
	pa4, _ := NewProtectedAttribute([]string{"a", "b"}, "b")

	s.True(pa1.Equal(pa2))
	s.False(pa1.Equal(pa3)) // same level set, different row order
	s.False(pa1.Equal(pa4)) // different privileged level
	s.False(pa1.Equal(nil))
}

func TestAttributeTestSuite(t *testing.T) {
	suite.Run(t, new(AttributeTestSuite))
}
