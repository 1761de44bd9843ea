package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_UnmarshalJSON(t *testing.T) {
	t.Run("mongo style id and zoned timestamps", func(t *testing.T) {
		var task Task
		err := json.Unmarshal([]byte(`{"_id":"abc","title":"Read","completed":true,"createdAt":"2024-03-01T10:00:00.000Z","dueDateTime":"2024-03-02T09:30:00Z"}`), &task)
		require.NoError(t, err)

		assert.Equal(t, "abc", task.ID)
		assert.True(t, task.Completed)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), task.CreatedAt.UTC())
		require.NotNil(t, task.DueDateTime)
		assert.Equal(t, 9, task.DueDateTime.UTC().Hour())
	})

	t.Run("plain id and null deadline", func(t *testing.T) {
		var task Task
		err := json.Unmarshal([]byte(`{"id":"7","title":"x","completed":false,"createdAt":"2024-03-01T10:00:00Z","dueDateTime":null}`), &task)
		require.NoError(t, err)

		assert.Equal(t, "7", task.ID)
		assert.Nil(t, task.DueDateTime)
	})

	t.Run("datetime-local deadline", func(t *testing.T) {
		var task Task
		err := json.Unmarshal([]byte(`{"_id":"1","title":"x","dueDateTime":"2024-05-06T14:30"}`), &task)
		require.NoError(t, err)

		require.NotNil(t, task.DueDateTime)
		assert.Equal(t, 14, task.DueDateTime.Hour())
		assert.Equal(t, 30, task.DueDateTime.Minute())
	})

	t.Run("garbage timestamp", func(t *testing.T) {
		var task Task
		err := json.Unmarshal([]byte(`{"_id":"1","createdAt":"yesterday"}`), &task)
		assert.Error(t, err)
	})
}

func TestTask_MarshalUsesUnderscoreID(t *testing.T) {
	data, err := json.Marshal(Task{ID: "z", Title: "t"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"_id":"z"`)
	assert.NotContains(t, string(data), "dueDateTime")
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	assert.True(t, Task{DueDateTime: &past}.IsOverdue(now))
	assert.False(t, Task{DueDateTime: &past, Completed: true}.IsOverdue(now))
	assert.False(t, Task{}.IsOverdue(now))
}

func TestPracticeLink_Valid(t *testing.T) {
	assert.True(t, PracticeLink{Name: "A", URL: "https://a.dev"}.Valid())
	assert.False(t, PracticeLink{Name: "A", URL: "javascript:alert(1)"}.Valid())
	assert.False(t, PracticeLink{Name: "A", URL: "/relative"}.Valid())
	assert.False(t, PracticeLink{URL: "https://a.dev"}.Valid())
}

func TestDefaultPlatforms(t *testing.T) {
	links := DefaultPlatforms()
	require.Len(t, links, 6)
	for _, l := range links {
		assert.True(t, l.Valid(), l.Name)
	}

	links[0].Name = "changed"
	assert.Equal(t, "LeetCode", DefaultPlatforms()[0].Name)
}

func TestUserProfile_DisplayName(t *testing.T) {
	var p *UserProfile
	assert.Equal(t, "Student", p.DisplayName())
	assert.Equal(t, "Student", (&UserProfile{}).DisplayName())
	assert.Equal(t, "Ada", (&UserProfile{Name: "Ada"}).DisplayName())
}

func TestStorageFile(t *testing.T) {
	assert.True(t, StorageFile{Type: "application/PDF"}.IsPDF())
	assert.False(t, StorageFile{}.HasDownload())
	assert.True(t, StorageFile{URL: "https://x"}.HasDownload())
}
