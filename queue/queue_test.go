package queue_test

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srikanthkris/hpg-variant/queue"
)

func TestPushPopFIFOSingleProducer(t *testing.T) {
	q := queue.New[int](4, 1)
	go func() {
		for i := 0; i < 10; i++ {
			q.Push(i)
		}
		q.CloseWriter()
	}()

	var got []int
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestPopDrainsItemsFromAllWritersThenReportsClosed(t *testing.T) {
	q := queue.New[int](4, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); q.Push(1); q.CloseWriter() }()
	go func() { defer wg.Done(); q.Push(2); q.CloseWriter() }()
	wg.Wait()

	var sum int
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		sum += v
	}
	assert.Equal(t, 3, sum)
}

func TestMultipleConsumersSeeEveryItem(t *testing.T) {
	const n = 200
	q := queue.New[int](8, 1)
	go func() {
		for i := 0; i < n; i++ {
			q.Push(i)
		}
		q.CloseWriter()
	}()

	var mu sync.Mutex
	var got []int
	var wg sync.WaitGroup
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok := q.Pop()
				if !ok {
					return
				}
				mu.Lock()
				got = append(got, v)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Ints(got)
	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, got)
}

func TestPushBlocksWhileFull(t *testing.T) {
	q := queue.New[int](1, 1)
	q.Push(1)

	pushed := make(chan struct{})
	go func() {
		q.Push(2)
		close(pushed)
	}()

	select {
	case <-pushed:
		t.Fatal("Push should have blocked while queue was full")
	default:
	}

	v, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	<-pushed

	v, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestCloseWriterIsIdempotentPastZero(t *testing.T) {
	q := queue.New[int](1, 1)
	q.CloseWriter()
	q.CloseWriter()
	_, ok := q.Pop()
	assert.False(t, ok)
}
