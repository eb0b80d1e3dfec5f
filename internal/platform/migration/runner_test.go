// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-reader/internal/platform/migration"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/yomira", "pgx5://u:p@db:5432/yomira"},
		{"postgresql://db/yomira?sslmode=disable", "pgx5://db/yomira?sslmode=disable"},
		{"pgx5://db/yomira", "pgx5://db/yomira"},
		{"host=db dbname=yomira", "host=db dbname=yomira"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ToPgx5DSN(tt.in))
		})
	}
}
