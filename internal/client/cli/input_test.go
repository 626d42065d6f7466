package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetTextWithDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := GetTextWithDefault(rdr("\n"), "Логин", "maria", &out)
	require.NoError(t, err)
	assert.Equal(t, "maria", got)
	assert.Contains(t, out.String(), "Логин [maria]")

	got, err = GetTextWithDefault(rdr("ivan\n"), "Логин", "maria", &out)
	require.NoError(t, err)
	assert.Equal(t, "ivan", got)
}

func TestGetChoice(t *testing.T) {
	opts := []string{"10:00", "11:00", "12:00"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"by number", "2\n", "11:00"},
		{"by value", "12:00\n", "12:00"},
		{"default", "\n", "10:00"},
		{"retry after bad answer", "9\n13:00\n3\n", "12:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetChoice(rdr(tt.input), "Время", opts, "10:00", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "*1. 10:00")
		})
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("12345"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("12345"), pw)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := parseID([]string{"7"}, "book")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	for _, args := range [][]string{nil, {"x"}, {"0"}, {"-3"}} {
		_, err := parseID(args, "book")
		var ue *usageError
		require.ErrorAs(t, err, &ue, "%v", args)
	}
}
