package main

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrBatchShape     = errors.New("invalid batch shape")
	ErrCorpusTooShort = errors.New("corpus shorter than the skip-gram window")
)

type BatchParams struct {
	BatchSize  int
	NumSkips   int
	SkipWindow int
}

func (p BatchParams) span() int {
	return 2*p.SkipWindow + 1
}

func (p BatchParams) validate() error {
	if p.BatchSize <= 0 || p.NumSkips <= 0 || p.SkipWindow <= 0 {
		return fmt.Errorf("%w: sizes must be positive (batch %d, skips %d, window %d)",
			ErrBatchShape, p.BatchSize, p.NumSkips, p.SkipWindow)
	}
	if p.BatchSize%p.NumSkips != 0 {
		return fmt.Errorf("%w: batch size %d is not a multiple of num skips %d",
			ErrBatchShape, p.BatchSize, p.NumSkips)
	}
	if p.NumSkips > 2*p.SkipWindow {
		return fmt.Errorf("%w: num skips %d exceeds 2*skip window %d",
			ErrBatchShape, p.NumSkips, 2*p.SkipWindow)
	}
	return nil
}

// Batch pairs every center id with one context id. Offsets holds the
// position of the context relative to the center, never zero.
type Batch struct {
	Inputs  []int
	Labels  []int
	Offsets []int
}

func (b Batch) Len() int {
	return len(b.Inputs)
}

// GenerateBatch slides a window of 2*SkipWindow+1 ids over data starting at
// cursor and returns the batch with the cursor for the next call. The window
// wraps to the start of data when it runs off the end.
func GenerateBatch(data []int, cursor int, p BatchParams, rng *rand.Rand) (Batch, int, error) {
	if err := p.validate(); err != nil {
		return Batch{}, cursor, err
	}
	span := p.span()
	if len(data) < span {
		return Batch{}, cursor, fmt.Errorf("%w: %d ids, window %d", ErrCorpusTooShort, len(data), span)
	}

	if cursor < 0 || cursor+span > len(data) {
		cursor = 0
	}
	window := make([]int, span)
	copy(window, data[cursor:cursor+span])
	cursor += span

	context := make([]int, 0, span-1)
	for w := 0; w < span; w++ {
		if w != p.SkipWindow {
			context = append(context, w)
		}
	}

	b := Batch{
		Inputs:  make([]int, p.BatchSize),
		Labels:  make([]int, p.BatchSize),
		Offsets: make([]int, p.BatchSize),
	}
	for i := 0; i < p.BatchSize/p.NumSkips; i++ {
		perm := rng.Perm(len(context))
		for j := 0; j < p.NumSkips; j++ {
			pos := context[perm[j]]
			k := i*p.NumSkips + j
			b.Inputs[k] = window[p.SkipWindow]
			b.Labels[k] = window[pos]
			b.Offsets[k] = pos - p.SkipWindow
		}
		if cursor == len(data) {
			copy(window, data[:span])
			cursor = span
		} else {
			copy(window, window[1:])
			window[span-1] = data[cursor]
			cursor++
		}
	}

	// Step back so the next batch starts where this one's window ended.
	cursor = (cursor + len(data) - span) % len(data)
	return b, cursor, nil
}
