package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var records = []Record{
	{
		Name:      "Config",
		File:      "src/config.rs",
		Condition: `feature = "internals"`,
		Members: []Member{
			{Name: "name", Visible: true},
			{Name: "secret"},
			{Name: "retries"},
		},
	},
	{Name: "State", File: "src/state.rs", Condition: "test"},
	{Name: "Cache", File: "src/cache.rs", Condition: `feature = "internals"`},
}

func TestHidden(t *testing.T) {
	assert.Equal(t, []string{"secret", "retries"}, records[0].Hidden())
	assert.Empty(t, records[1].Hidden())
}

func TestFind(t *testing.T) {
	r, ok := Find(records, "State")
	assert.True(t, ok)
	assert.Equal(t, "src/state.rs", r.File)

	_, ok = Find(records, "Missing")
	assert.False(t, ok)
}

func TestByCondition(t *testing.T) {
	assert.Equal(t, map[string][]string{
		`feature = "internals"`: {"Config", "Cache"},
		"test":                  {"State"},
	}, ByCondition(records))
}
