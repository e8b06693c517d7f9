package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Date_arithmetic(t *testing.T) {
	d := NewDate(2026, time.January, 30)

	assert.Equal(t, NewDate(2026, time.February, 2), d.AddDays(3))
	assert.Equal(t, 3, d.DaysUntil(NewDate(2026, time.February, 2)))
	assert.Equal(t, 0, d.DaysUntil(d))
}

func Test_ParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	assert.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.March, 10), d)

	_, err = ParseDate("10/03/2026")
	assert.Error(t, err)
}

func Test_Date_JSON(t *testing.T) {
	type payload struct {
		Day Date `json:"day"`
	}

	data, err := json.Marshal(payload{Day: NewDate(2026, time.March, 10)})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"day":"2026-03-10"}`, string(data))

	var p payload
	assert.NoError(t, json.Unmarshal([]byte(`{"day":"2026-03-10"}`), &p))
	assert.Equal(t, NewDate(2026, time.March, 10), p.Day)

	// null and empty are the zero date
	assert.NoError(t, json.Unmarshal([]byte(`{"day":null}`), &p))
}

func Test_Date_mapKey(t *testing.T) {
	// Date is used as a map key by the day index; two constructions of the
	// same civil day must collide.
	m := map[Date]int{}
	m[NewDate(2026, time.March, 10)]++
	m[DateOf(time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC))]++
	assert.Equal(t, map[Date]int{NewDate(2026, time.March, 10): 2}, m)
}
