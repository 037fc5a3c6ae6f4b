package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modularai/agentcore/core"
)

func TestShortTerm_UnknownUser(t *testing.T) {
	st := NewShortTerm(5)
	assert.Empty(t, st.Get("nobody"))
}

func TestShortTerm_ChronologicalOrder(t *testing.T) {
	st := NewShortTerm(5)
	st.Add("u1", core.RoleUser, "first")
	st.Add("u1", core.RoleAssistant, "second")
	st.Add("u1", core.RoleUser, "third")

	got := st.Get("u1")
	assert.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
	assert.Equal(t, "third", got[2].Content)
}

func TestShortTerm_FIFOEviction(t *testing.T) {
	const capacity = 4
	const extra = 3
	st := NewShortTerm(capacity)
	for i := 0; i < capacity+extra; i++ {
		st.Add("u1", core.RoleUser, fmt.Sprintf("msg-%d", i))
	}

	got := st.Get("u1")
	assert.Len(t, got, capacity)
	// The survivors are the most recent entries, in insertion order.
	for i, msg := range got {
		assert.Equal(t, fmt.Sprintf("msg-%d", extra+i), msg.Content)
	}
}

func TestShortTerm_GetReturnsCopy(t *testing.T) {
	st := NewShortTerm(5)
	st.Add("u1", core.RoleUser, "original")

	got := st.Get("u1")
	got[0].Content = "mutated"

	assert.Equal(t, "original", st.Get("u1")[0].Content)
}

func TestShortTerm_UserIsolation(t *testing.T) {
	st := NewShortTerm(5)
	st.Add("u1", core.RoleUser, "for u1")
	st.Add("u2", core.RoleUser, "for u2")

	assert.Len(t, st.Get("u1"), 1)
	assert.Equal(t, "for u2", st.Get("u2")[0].Content)
}

func TestShortTerm_ConcurrentAccess(t *testing.T) {
	st := NewShortTerm(10)
	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("u%d", i%5)
			st.Add(user, core.RoleUser, fmt.Sprintf("msg-%d", i))
			_ = st.Get(user)
		}(i)
	}
	wg.Wait()

	total := 0
	for i := 0; i < 5; i++ {
		total += st.Len(fmt.Sprintf("u%d", i))
	}
	assert.Equal(t, 25, total)
}
