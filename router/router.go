package router

import (
	"context"
	"net/http"
	"strings"
)

// Router registers handlers for "METHOD /path" route strings and serves
// HTTP. A route string without a method registers for GET.
type Router interface {
	http.Handler

	Handle(route string, handler http.Handler)
	HandleFunc(route string, handler func(http.ResponseWriter, *http.Request))
}

// Param is a single URL parameter, consisting of a key and a value.
type Param struct {
	Key   string
	Value string
}

type Params []Param

// ByName returns the value of the first Param whose key matches name.
func (ps Params) ByName(name string) string {
	for _, p := range ps {
		if p.Key == name {
			return p.Value
		}
	}
	return ""
}

// ParamGeter extracts URL parameters from a request context, hiding the
// concrete router implementation from the handlers.
type ParamGeter interface {
	Get(ctx context.Context) Params
}

// SplitRoute separates a "METHOD /path" route string. A bare "/path"
// yields method GET.
func SplitRoute(route string) (method string, path string) {
	method, path, found := strings.Cut(route, " ")
	if !found {
		return http.MethodGet, route
	}
	return method, path
}
