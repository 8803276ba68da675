package colors

import (
	"net/http"

	"github.com/fatih/color"
)

var (
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
)

// Status colors an http status code, red for client/server errors & green otherwise
func Status(code int) string {
	if code >= http.StatusBadRequest {
		return Red(code)
	}
	return Green(code)
}

// Method colors an http method by what it does to the address book:
// reads are cyan, writes yellow & deletes red
func Method(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return Cyan(method)
	case http.MethodDelete:
		return Red(method)
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return Yellow(method)
	}
	return method
}
