package providers

import (
	"net/http"
	"strings"

	"jobdash/internal/structures"
)

var readMethods = []string{http.MethodGet, http.MethodHead}

// RouterProviderInterface collects the read-only views served in watch mode.
type RouterProviderInterface interface {
	Get(pattern string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
}

// Get registers handler for GET and HEAD on pattern.
func (rp *RouterProvider) Get(pattern string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Url:     pattern,
		Handler: allowMethods(readMethods, handler),
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func allowMethods(methods []string, handler http.Handler) http.Handler {
	allow := strings.Join(methods, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, m := range methods {
			if r.Method == m {
				handler.ServeHTTP(w, r)
				return
			}
		}
		w.Header().Set("Allow", allow)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
}
