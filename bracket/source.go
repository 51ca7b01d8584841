/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"context"
)

// Source supplies a whole tournament snapshot.
type Source interface {
	Tournament(ctx context.Context) (*Tournament, error)
}

// StaticSource serves a fixed table. Each call returns an independent copy.
type StaticSource struct {
	Table StaticTable
}

func NewStaticSource(table StaticTable) *StaticSource {
	return &StaticSource{Table: table}
}

func (s *StaticSource) Tournament(ctx context.Context) (*Tournament, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Table.Tournament(), nil
}
