package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSavedBookSet_Membership(t *testing.T) {
	set := NewSavedBookSet([]SavedBook{
		{BookID: "b2", Title: "Newest"},
		{BookID: "b1", Title: "Older"},
	})

	assert.True(t, set.Has("b1"))
	assert.True(t, set.Has("b2"))
	assert.False(t, set.Has("b3"))
	assert.Equal(t, 2, set.Len())
}

// TestSavedBookSet_PreservesOrder verifies the set keeps the remote
// collection's declared order, most recently added first.
func TestSavedBookSet_PreservesOrder(t *testing.T) {
	set := NewSavedBookSet([]SavedBook{
		{BookID: "b3"},
		{BookID: "b1"},
		{BookID: "b2"},
	})

	assert.Equal(t, []string{"b3", "b1", "b2"}, set.IDs())
}

func TestSavedBookSet_DropsDuplicates(t *testing.T) {
	set := NewSavedBookSet([]SavedBook{
		{BookID: "b1", Title: "first wins"},
		{BookID: "b1", Title: "dropped"},
	})

	assert.Equal(t, 1, set.Len())
	assert.Equal(t, "first wins", set.Books()[0].Title)
}

func TestSavedBookSet_Empty(t *testing.T) {
	set := NewSavedBookSet(nil)

	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.IDs())
	assert.False(t, set.Has("anything"))
}
