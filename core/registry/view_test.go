package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_FocusRefreshes(t *testing.T) {
	reg := seededNotes(t)
	v := NewView(reg, noteProjection("ielts", ""))
	assert.Equal(t, []string{"N0001", "T001", "N0004"}, ids(v.Items()))

	_, err := reg.Create(note{Title: "IELTS speaking"})
	require.NoError(t, err)
	// stale until focused again
	assert.Len(t, v.Items(), 3)

	v.Focus()
	assert.Equal(t, []string{"N0001", "T001", "N0004", "N0005"}, ids(v.Items()))
}

func TestView_SetSearchAndFilter(t *testing.T) {
	v := NewView(seededNotes(t), noteProjection("", ""))

	v.SetSearch("IELTS")
	assert.Equal(t, []string{"N0001", "T001", "N0004"}, ids(v.Items()))

	v.SetFilter("kind", "course")
	assert.Equal(t, []string{"N0001", "N0004"}, ids(v.Items()))

	v.SetFilter("kind", "all")
	v.SetSearch("")
	assert.Len(t, v.Items(), 5)
}

func TestView_Watch(t *testing.T) {
	reg := seededNotes(t)
	v := NewView(reg, noteProjection("", "todo"))

	var changes [][]string
	v.OnChange(func(items []note) { changes = append(changes, ids(items)) })
	v.Watch()
	v.Watch()

	_, err := reg.Create(note{Kind: "todo", Title: "call parents"})
	require.NoError(t, err)
	require.True(t, reg.Delete("T001"))
	assert.Equal(t, []string{"T002"}, ids(v.Items()))

	v.Close()
	_, err = reg.Create(note{Kind: "todo", Title: "ignored"})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"T001", "T002"}, {"T002"}}, changes)
	assert.Equal(t, []string{"T002"}, ids(v.Items()))
}

func TestView_DependOn(t *testing.T) {
	notes := seededNotes(t)
	tags := New(StaticSequence[note]("G", 2))
	_, err := tags.Create(note{Title: "urgent"})
	require.NoError(t, err)

	// every note is displayed with the title of tag G01
	tagTitle := func(note) string {
		tag, _ := tags.Read("G01")
		return tag.Title
	}
	v := NewView(notes, Projection[note]{Search: "urgent", SearchFields: []Field[note]{tagTitle}}).DependOn(tags)
	changes := 0
	v.OnChange(func([]note) { changes++ })
	v.Watch()
	assert.Len(t, v.Items(), 5)

	_, err = tags.Update("G01", note{Title: "later"})
	require.NoError(t, err)
	assert.Empty(t, v.Items())
	assert.Equal(t, 1, changes)

	v.Close()
	_, err = tags.Update("G01", note{Title: "urgent"})
	require.NoError(t, err)
	assert.Empty(t, v.Items())
	assert.Equal(t, 1, changes)
}
