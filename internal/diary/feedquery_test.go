package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListParamsAxis(t *testing.T) {
	tests := []struct {
		name     string
		params   ListParams
		expected Axis
		wantErr  error
	}{
		{
			name:     "no parameters selects global",
			params:   ListParams{},
			expected: AxisGlobal,
		},
		{
			name: "all parameters supplied selects author",
			params: ListParams{
				DisplayName: "alice",
				Friends:     true,
				Nearby:      true,
				Language:    "en",
				ViewerUID:   "u1",
			},
			expected: AxisAuthor,
		},
		{
			name:     "author axis needs no viewer",
			params:   ListParams{DisplayName: "alice"},
			expected: AxisAuthor,
		},
		{
			name:     "friends beats nearby and language",
			params:   ListParams{Friends: true, Nearby: true, Language: "en", ViewerUID: "u1"},
			expected: AxisFriends,
		},
		{
			name:     "nearby beats language",
			params:   ListParams{Nearby: true, Language: "en", ViewerUID: "u1"},
			expected: AxisNearby,
		},
		{
			name:     "language axis",
			params:   ListParams{Language: "de"},
			expected: AxisLanguage,
		},
		{
			name:     "friends without viewer requires authentication",
			params:   ListParams{Friends: true},
			expected: AxisFriends,
			wantErr:  ErrAuthRequired,
		},
		{
			name:     "nearby without viewer requires authentication",
			params:   ListParams{Nearby: true},
			expected: AxisNearby,
			wantErr:  ErrAuthRequired,
		},
		{
			name:     "author axis wins even without viewer",
			params:   ListParams{DisplayName: "alice", Friends: true, Nearby: true},
			expected: AxisAuthor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axis, err := tt.params.Axis()
			assert.Equal(t, tt.expected, axis)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		wantLimit  int
		wantOffset int
	}{
		{name: "first page", page: 1, wantLimit: 20, wantOffset: 0},
		{name: "second page", page: 2, wantLimit: 20, wantOffset: 20},
		{name: "fifth page", page: 5, wantLimit: 20, wantOffset: 80},
		{name: "zero clamps to first page", page: 0, wantLimit: 20, wantOffset: 0},
		{name: "negative clamps to first page", page: -3, wantLimit: 20, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := pageWindow(tt.page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestEntryConditions(t *testing.T) {
	t.Run("global restricts to accounts in good standing", func(t *testing.T) {
		conditions, args := entryConditions(AxisGlobal, "", nil, "", 1)
		require.Len(t, conditions, 2)
		assert.Equal(t, "e.visible = TRUE", conditions[0])
		assert.Equal(t, "u.status IN ($1, $2)", conditions[1])
		assert.Equal(t, []interface{}{"active", "confirmed"}, args)
	})

	t.Run("author filters by resolved author uid only", func(t *testing.T) {
		conditions, args := entryConditions(AxisAuthor, "uid-alice", nil, "", 1)
		require.Len(t, conditions, 2)
		assert.Equal(t, "e.user_uid = $1", conditions[1])
		assert.Equal(t, []interface{}{"uid-alice"}, args)
	})

	t.Run("friends filters by membership set", func(t *testing.T) {
		members := []string{"u2", "u3"}
		conditions, args := entryConditions(AxisFriends, "", members, "", 1)
		require.Len(t, conditions, 2)
		assert.Equal(t, "e.user_uid = ANY($1)", conditions[1])
		require.Len(t, args, 1)
		assert.Equal(t, members, args[0])
	})

	t.Run("language adds the status restriction", func(t *testing.T) {
		conditions, args := entryConditions(AxisLanguage, "", nil, "en", 1)
		require.Len(t, conditions, 3)
		assert.Equal(t, "e.language_code = $1", conditions[1])
		assert.Equal(t, "u.status IN ($2, $3)", conditions[2])
		assert.Equal(t, []interface{}{"en", "active", "confirmed"}, args)
	})

	t.Run("placeholders honor the starting argument index", func(t *testing.T) {
		conditions, args := entryConditions(AxisLanguage, "", nil, "fr", 4)
		require.Len(t, conditions, 3)
		assert.Equal(t, "e.language_code = $4", conditions[1])
		assert.Equal(t, "u.status IN ($5, $6)", conditions[2])
		assert.Len(t, args, 3)
	})
}

func TestServerBaseURL(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SERVER_PROTOCOL", "")
		t.Setenv("SERVER_URL", "")
		assert.Equal(t, "https://localhost:9091", serverBaseURL())
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("SERVER_PROTOCOL", "http")
		t.Setenv("SERVER_URL", "diary.example.com")
		assert.Equal(t, "http://diary.example.com", serverBaseURL())
	})
}
