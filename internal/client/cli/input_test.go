package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))

	s, err := GetSimpleText(reader, "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", s)
	assert.Contains(t, out.String(), "Enter text")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("no newline"))

	s, err := GetSimpleText(reader, "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "no newline", s)
}

func TestGetSimpleText_EOFWithNoInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(reader, "Enter text", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetOptionalText(t *testing.T) {
	var out bytes.Buffer

	s, err := GetOptionalText(bufio.NewReader(strings.NewReader("Kim\n")), "Name", &out)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Kim", *s)

	s, err = GetOptionalText(bufio.NewReader(strings.NewReader("\n")), "Name", &out)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestGetInt(t *testing.T) {
	var out bytes.Buffer

	n, err := GetInt(bufio.NewReader(strings.NewReader("42\n")), "Age", &out)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = GetInt(bufio.NewReader(strings.NewReader("abc\n")), "Age", &out)
	assert.Error(t, err)
}

func TestGetOptionalInt(t *testing.T) {
	var out bytes.Buffer

	n, err := GetOptionalInt(bufio.NewReader(strings.NewReader("26\n")), "Age", &out)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 26, *n)

	n, err = GetOptionalInt(bufio.NewReader(strings.NewReader("\n")), "Age", &out)
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = GetOptionalInt(bufio.NewReader(strings.NewReader("abc\n")), "Age", &out)
	assert.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret"), nil
	}
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	pw, err := GetPassword(&out, "Password")
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Contains(t, out.String(), "Password: ")
}
