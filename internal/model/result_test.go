package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultJSON(t *testing.T) {
	ready, err := json.Marshal(Ready(LinePoint{X: "2020", Values: map[string]NullFloat{"a": {}, "b": Float(0)}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"ready","data":{"x":"2020","values":{"a":null,"b":0}}}`, string(ready))

	empty, err := json.Marshal(Empty[Matrix](errors.New("no data for current filters")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"empty","message":"no data for current filters"}`, string(empty))

	failed, err := json.Marshal(Failed[Matrix](errors.New("boom")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"error","message":"boom"}`, string(failed))
}

func TestResultErase(t *testing.T) {
	r := Ready(GroupedSeries{GroupBy: []string{"tipo"}}).Erase()
	require.True(t, r.IsReady())
	series, ok := (*r.Data).(GroupedSeries)
	require.True(t, ok)
	assert.Equal(t, []string{"tipo"}, series.GroupBy)

	cause := errors.New("bad")
	e := Failed[Matrix](cause).Erase()
	assert.True(t, e.IsError())
	assert.Nil(t, e.Data)
	assert.ErrorIs(t, e.Err, cause)
}

func TestNullFloatRoundTrip(t *testing.T) {
	var n NullFloat
	require.NoError(t, json.Unmarshal([]byte("null"), &n))
	assert.False(t, n.Valid)

	require.NoError(t, json.Unmarshal([]byte("2.5"), &n))
	assert.Equal(t, Float(2.5), n)
}

func TestFieldSpecLabel(t *testing.T) {
	assert.Equal(t, "Carrera", FieldSpec{Field: "carrera", Header: "Carrera"}.Label())
	assert.Equal(t, "carrera", FieldSpec{Field: "carrera"}.Label())
}
