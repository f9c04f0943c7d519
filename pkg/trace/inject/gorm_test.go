// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package inject

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type menuRow struct {
	ID   uint64
	Slug string
}

func (menuRow) TableName() string {
	return "t_menu"
}

func newTracedDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, RegisterGormPlugin(db, true, true))
	return db, mock
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestGormPlugin_QuerySpan(t *testing.T) {
	recorder := setupRecorder(t)
	db, mock := newTracedDB(t)

	mock.ExpectQuery("SELECT .+ FROM `t_menu`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(1, "main_menu"))

	var rows []menuRow
	require.NoError(t, db.WithContext(context.Background()).Find(&rows).Error)
	require.Len(t, rows, 1)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "gorm.query", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	table, ok := attr(spans[0].Attributes(), "db.sql.table")
	require.True(t, ok)
	assert.Equal(t, "t_menu", table.AsString())
	stmt, ok := attr(spans[0].Attributes(), "db.statement")
	require.True(t, ok)
	assert.Contains(t, stmt.AsString(), "t_menu")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPlugin_ErrorSpan(t *testing.T) {
	recorder := setupRecorder(t)
	db, mock := newTracedDB(t)

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT").WillReturnError(boom)

	var rows []menuRow
	assert.ErrorIs(t, db.Find(&rows).Error, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
