package mux

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_remoteAddr(t *testing.T) {
	r := &http.Request{RemoteAddr: "127.0.0.1:5000"}
	assert.Equal(t, "127.0.0.1", remoteAddr(r))

	r.RemoteAddr = "[::1]:5000"
	assert.Equal(t, "[::1]", remoteAddr(r))
}

func Test_parsePaginationOptions(t *testing.T) {
	req := func(queryString string) *http.Request {
		req, _ := http.NewRequest(http.MethodGet, "https://example.domain/"+queryString, nil)
		return req
	}

	a := assert.New(t)

	start, rows, err := parsePaginationOptions(req(""))
	a.NoError(err)
	a.Equal(int64(0), start)
	a.Equal(defaultRows, rows)

	start, rows, err = parsePaginationOptions(req("?start=10&rows=25"))
	a.NoError(err)
	a.Equal(int64(10), start)
	a.Equal(25, rows)

	_, _, err = parsePaginationOptions(req("?start=-1"))
	a.EqualError(err, "start cannot be less than zero")

	_, _, err = parsePaginationOptions(req("?rows=0"))
	a.EqualError(err, "rows must be greater than zero")

	_, _, err = parsePaginationOptions(req("?rows=101"))
	a.EqualError(err, "rows cannot be greater than 100")

	_, _, err = parsePaginationOptions(req("?rows=bad"))
	a.Error(err)
}
