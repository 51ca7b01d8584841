/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package view ties a Match Source to the layout engine. A single load
 * produces one Result; applying it replaces the whole snapshot.
 */
package view

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mikeb26/bracketview/bracket"
	"github.com/mikeb26/bracketview/feed"
	"github.com/mikeb26/bracketview/layout"
)

type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result is the outcome of one load: a tournament or an error, never both.
type Result struct {
	Tournament *bracket.Tournament
	Err        error
}

// Load fetches from src once in the background. Exactly one Result is sent
// on the returned channel, which is then closed.
func Load(ctx context.Context, src bracket.Source) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		t, err := src.Tournament(ctx)
		if err == nil && t == nil {
			err = errors.New("source returned no tournament")
		}
		ch <- Result{Tournament: t, Err: err}
	}()

	return ch
}

// Model is the displayed state. It is not safe for concurrent use; Results
// are applied from a single goroutine.
type Model struct {
	Dims layout.Dimensions
	Mode layout.Mode

	state      State
	tourney    *bracket.Tournament
	layout     *layout.Layout
	connectors []layout.Connector
	err        error
}

func NewModel(dims layout.Dimensions, mode layout.Mode) *Model {
	return &Model{Dims: dims, Mode: mode, state: Loading}
}

// ModeFor picks the layout mode matching how src links its matches.
func ModeFor(src bracket.Source) layout.Mode {
	if _, ok := src.(*bracket.StaticSource); ok {
		return layout.IndexPaired
	}
	return layout.Linked
}

// Apply replaces the snapshot with r. An ErrNoData result leaves the model
// loading; any other error fails it. On success positions and connectors are
// recomputed from scratch.
func (m *Model) Apply(r Result) State {
	switch {
	case errors.Is(r.Err, feed.ErrNoData):
		log.Printf("view.apply: no data yet; still loading")
		m.reset(Loading, nil)
	case r.Err != nil:
		log.Printf("view.apply: load failed: %v", r.Err)
		m.reset(Failed, r.Err)
	default:
		m.reset(Ready, nil)
		m.tourney = r.Tournament
		m.layout = layout.Compute(r.Tournament, m.Dims, m.Mode)
		m.connectors = layout.Connectors(r.Tournament, m.layout)
	}

	return m.state
}

func (m *Model) reset(s State, err error) {
	m.state = s
	m.err = err
	m.tourney = nil
	m.layout = nil
	m.connectors = nil
}

// Run loads from src and applies the result. If ctx ends first the model is
// left untouched and ctx's error is returned.
func (m *Model) Run(ctx context.Context, src bracket.Source) (State, error) {
	select {
	case r := <-Load(ctx, src):
		return m.Apply(r), r.Err
	case <-ctx.Done():
		return m.state, ctx.Err()
	}
}

func (m *Model) State() State {
	return m.state
}

// Err is the failure that put the model in the Failed state.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Tournament() *bracket.Tournament {
	return m.tourney
}

func (m *Model) Layout() *layout.Layout {
	return m.layout
}

func (m *Model) Connectors() []layout.Connector {
	return m.connectors
}
