package main

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

var errUnavailable = errors.New("dictionary unavailable")

type searcher interface {
	Search(ctx context.Context, term string) ([]string, error)
}

// dictionary is a sorted word list searched by prefix. Searches take latency to answer and fail with
// errUnavailable at failureRate.
type dictionary struct {
	words       []string
	latency     time.Duration
	failureRate float64
	limit       int

	mu    sync.Mutex
	faker *gofakeit.Faker
}

var _ searcher = (*dictionary)(nil)

func newDictionary(size int, seed uint64, latency time.Duration, failureRate float64, limit int) *dictionary {
	faker := gofakeit.New(seed)

	words := make([]string, 0, size)
	for range size {
		words = append(words, strings.ToLower(faker.Word()))
	}
	slices.Sort(words)

	return &dictionary{
		words:       slices.Compact(words),
		latency:     latency,
		failureRate: failureRate,
		limit:       limit,
		faker:       faker,
	}
}

func (d *dictionary) Search(ctx context.Context, term string) ([]string, error) {
	select {
	case <-time.After(d.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if d.fails() {
		return nil, errUnavailable
	}
	if term == "" {
		return nil, nil
	}

	start, _ := slices.BinarySearch(d.words, term)
	matches := make([]string, 0, d.limit)
	for _, word := range d.words[start:] {
		if !strings.HasPrefix(word, term) || len(matches) == d.limit {
			break
		}
		matches = append(matches, word)
	}
	return matches, nil
}

func (d *dictionary) fails() bool {
	if d.failureRate <= 0 {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.faker.Float64() < d.failureRate
}
