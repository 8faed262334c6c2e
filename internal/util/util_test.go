package util

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, a < b, "ids should sort in creation order")
	assert.True(t, IsULID(a))
	assert.False(t, IsULID("not-a-ulid"))
}

func TestNullConversions(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)
	assert.True(t, StringToNullString("x").Valid)

	empty := ""
	assert.True(t, StringPtrToNullString(&empty).Valid)
	assert.False(t, StringPtrToNullString(nil).Valid)
	assert.Nil(t, NullStringToPtr(sql.NullString{}))
	assert.Equal(t, "x", *NullStringToPtr(sql.NullString{String: "x", Valid: true}))

	n := 42
	assert.Equal(t, sql.NullInt64{Int64: 42, Valid: true}, IntPtrToNullInt64(&n))
	assert.Nil(t, NullInt64ToIntPtr(sql.NullInt64{}))
	assert.Equal(t, 42, *NullInt64ToIntPtr(sql.NullInt64{Int64: 42, Valid: true}))

	now := time.Now()
	assert.False(t, TimeToNullTime(time.Time{}).Valid)
	assert.Equal(t, now, *NullTimeToPtr(TimeToNullTime(now)))
	assert.Nil(t, NullTimeToPtr(sql.NullTime{}))

	assert.Equal(t, 1, BoolToInt(true))
	assert.Equal(t, 0, BoolToInt(false))
}
