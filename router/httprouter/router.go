package httprouter

import (
	"context"
	"net/http"

	"github.com/albashop/alba/router"
	jshttprouter "github.com/julienschmidt/httprouter"
)

// Implementation of the router interface
type Router struct {
	rt *jshttprouter.Router
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

func (r *Router) Handle(route string, handler http.Handler) {
	method, path := router.SplitRoute(route)
	r.rt.Handler(method, path, handler)
}

func (r *Router) HandleFunc(route string, handler func(http.ResponseWriter, *http.Request)) {
	r.Handle(route, http.HandlerFunc(handler))
}

func New() router.Router {
	return &Router{rt: jshttprouter.New()}
}

// Implementation of the router/ParamGeter interface
type jsParams struct{}

func (js *jsParams) Get(ctx context.Context) router.Params {
	pms, _ := ctx.Value(jshttprouter.ParamsKey).(jshttprouter.Params)

	var params router.Params
	for _, v := range pms {
		params = append(params, router.Param{Key: v.Key, Value: v.Value})
	}
	return params
}

func NewParamGeter() router.ParamGeter {
	return &jsParams{}
}
