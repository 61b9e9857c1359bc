package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, KindNull, v.Kind())
	assert.Equal(t, "null", v.String())
}

func TestKindsAreExclusive(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want Kind
	}{
		{"null", Null(), KindNull},
		{"bool", Bool(true), KindBool},
		{"int", Int(7), KindInt},
		{"float", Float(7), KindFloat},
		{"string", String("x"), KindString},
		{"array", Array(Int(1)), KindArray},
		{"object", Object(), KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Kind())
			checks := map[Kind]bool{
				KindNull:   tt.v.IsNull(),
				KindBool:   tt.v.IsBool(),
				KindInt:    tt.v.IsInt(),
				KindFloat:  tt.v.IsFloat(),
				KindString: tt.v.IsString(),
				KindArray:  tt.v.IsArray(),
				KindObject: tt.v.IsObject(),
			}
			for k, active := range checks {
				assert.Equal(t, k == tt.want, active, "kind %s", k)
			}
		})
	}
}

func TestIntAndFloatAreDistinct(t *testing.T) {
	assert.False(t, Equal(Int(1), Float(1)))
	assert.True(t, Equal(Int(1), Int(1)))
	assert.True(t, Equal(Float(1), Float(1)))

	n, ok := Int(3).Number()
	require.True(t, ok)
	assert.Equal(t, 3.0, n)

	_, ok = String("3").Number()
	assert.False(t, ok)
}

func TestSetIndexGrowsWithNulls(t *testing.T) {
	var v Value
	v.SetIndex(3, Int(9))

	require.True(t, v.IsArray())
	require.Equal(t, 4, v.Len())
	for i := 0; i < 3; i++ {
		assert.True(t, v.Index(i).IsNull(), "slot %d", i)
	}
	got, _ := v.Index(3).AsInt()
	assert.Equal(t, int64(9), got)
	assert.True(t, v.Index(10).IsNull())
}

func TestSetReplacesInPlace(t *testing.T) {
	v := Object()
	v.Set("a", Int(1))
	v.Set("b", Int(2))
	v.Set("a", String("again"))

	assert.Equal(t, []string{"a", "b"}, v.Keys())
	got, ok := v.Get("a")
	require.True(t, ok)
	s, _ := got.AsString()
	assert.Equal(t, "again", s)
	assert.Equal(t, `{"a":"again","b":2}`, v.String())
}

func TestSetOnScalarResetsToObject(t *testing.T) {
	v := Int(5)
	v.Set("k", Bool(true))
	assert.True(t, v.IsObject())
	assert.Equal(t, 1, v.Len())
}

func TestInsertedChildrenAreCopies(t *testing.T) {
	child := Object()
	child.Set("x", Int(1))

	parent := Object()
	parent.Set("child", child)
	child.Set("x", Int(2))

	stored, _ := parent.Get("child")
	x, _ := stored.Get("x")
	got, _ := x.AsInt()
	assert.Equal(t, int64(1), got, "parent must not observe later mutation of the inserted value")
}

func TestCloneIsDeep(t *testing.T) {
	orig := Object()
	orig.Set("list", Array(Int(1), Int(2)))

	cp := orig.Clone()
	list, _ := cp.Get("list")
	list.Append(Int(3))
	cp.Set("list", list)

	origList, _ := orig.Get("list")
	assert.Equal(t, 2, origList.Len())
	assert.False(t, Equal(orig, cp))
}

func TestEqualIgnoresMemberOrder(t *testing.T) {
	a := Object()
	a.Set("x", Int(1))
	a.Set("y", Int(2))

	b := Object()
	b.Set("y", Int(2))
	b.Set("x", Int(1))

	assert.True(t, Equal(a, b))

	b.Set("x", Float(1))
	assert.False(t, Equal(a, b))
}

func TestMembersStopsEarly(t *testing.T) {
	v := Object()
	v.Set("a", Int(1))
	v.Set("b", Int(2))
	v.Set("c", Int(3))

	var seen []string
	v.Members(func(key string, _ Value) bool {
		seen = append(seen, key)
		return key != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}
