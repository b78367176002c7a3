package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendTrimsOldestFirst(t *testing.T) {
	b := New(3)
	for i := 0; i < 5; i++ {
		b.Append(1, Turn{Role: RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	got := b.Get(1)
	require.Len(t, got, 3)
	assert.Equal(t, "m2", got[0].Content)
	assert.Equal(t, "m4", got[2].Content)
}

func TestAppendPairKeepsCap(t *testing.T) {
	b := New(4)
	for i := 0; i < 3; i++ {
		b.Append(7,
			Turn{Role: RoleUser, Content: fmt.Sprintf("q%d", i)},
			Turn{Role: RoleAssistant, Content: fmt.Sprintf("a%d", i)},
		)
	}
	got := b.Get(7)
	require.Len(t, got, 4)
	assert.Equal(t, Turn{Role: RoleUser, Content: "q1"}, got[0])
	assert.Equal(t, Turn{Role: RoleAssistant, Content: "a2"}, got[3])
}

func TestGetReturnsCopy(t *testing.T) {
	b := New(2)
	b.Append(1, Turn{Role: RoleUser, Content: "hello"})

	got := b.Get(1)
	got[0].Content = "mutated"
	assert.Equal(t, "hello", b.Get(1)[0].Content)
}

func TestUsersAreIsolated(t *testing.T) {
	b := New(2)
	b.Append(1, Turn{Role: RoleUser, Content: "a"})
	b.Append(2, Turn{Role: RoleUser, Content: "b"})

	assert.Len(t, b.Get(1), 1)

	b.Reset(1)
	assert.Nil(t, b.Get(1))
	assert.Len(t, b.Get(2), 1)
}

func TestDefaultLimit(t *testing.T) {
	b := New(0)
	for i := 0; i < DefaultLimit+4; i++ {
		b.Append(1, Turn{Role: RoleUser, Content: "x"})
	}
	assert.Len(t, b.Get(1), DefaultLimit)
}

func TestOddLimitStartsWithUserTurn(t *testing.T) {
	b := New(3)
	for i := 0; i < 3; i++ {
		b.Append(1,
			Turn{Role: RoleUser, Content: fmt.Sprintf("q%d", i)},
			Turn{Role: RoleAssistant, Content: fmt.Sprintf("a%d", i)},
		)
	}
	got := b.Get(1)
	require.Len(t, got, 2)
	assert.Equal(t, Turn{Role: RoleUser, Content: "q2"}, got[0])
	assert.Equal(t, Turn{Role: RoleAssistant, Content: "a2"}, got[1])
}

func TestConcurrentAppend(t *testing.T) {
	b := New(5)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.Append(int64(i%3), Turn{Role: RoleUser, Content: "x"})
		}(i)
	}
	wg.Wait()

	for id := int64(0); id < 3; id++ {
		assert.LessOrEqual(t, len(b.Get(id)), 5)
	}
}
