package etag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
)

func sampleResult(id uint, value int64) entity.Result {
	return entity.Result{
		ID:         id,
		Value:      value,
		RecordedAt: time.Date(2020, 2, 3, 10, 11, 12, 0, time.UTC),
		UserID:     7,
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	r := sampleResult(1, 321)

	first, err := Fingerprint(r)
	require.NoError(t, err)
	second, err := Fingerprint(r)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 32)
}

func TestFingerprintChangesWithContent(t *testing.T) {
	a, err := Fingerprint(sampleResult(1, 321))
	require.NoError(t, err)
	b, err := Fingerprint(sampleResult(1, 322))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestFingerprintOrderSensitiveForCollections(t *testing.T) {
	first := []entity.Result{sampleResult(1, 100), sampleResult(2, 900)}
	second := []entity.Result{sampleResult(2, 900), sampleResult(1, 100)}

	a, err := Fingerprint(first)
	require.NoError(t, err)
	b, err := Fingerprint(second)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestFingerprintTimezoneNormalized(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	utc := entity.Result{ID: 1, Value: 5, RecordedAt: time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC), UserID: 2}
	cet := entity.Result{ID: 1, Value: 5, RecordedAt: time.Date(2020, 1, 1, 13, 0, 0, 0, loc), UserID: 2}

	a, err := Fingerprint(utc)
	require.NoError(t, err)
	b, err := Fingerprint(cet)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestMatch(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		current string
		want    bool
	}{
		{"empty header", "", "abc", false},
		{"exact", "abc", "abc", true},
		{"quoted", `"abc"`, "abc", true},
		{"weak", `W/"abc"`, "abc", true},
		{"wildcard", "*", "abc", true},
		{"list with match", `"xyz", "abc"`, "abc", true},
		{"list without match", `"xyz", "def"`, "abc", false},
		{"mismatch", "wrong-etag", "abc", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Match(tc.header, tc.current))
		})
	}
}
