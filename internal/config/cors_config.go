package config

import (
	"sort"
	"strings"
)

type Cors struct {
	origins AllowedOrigins
}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	if _, ok := a["*"]; ok {
		return true
	}
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	sort.Strings(origins)
	return strings.Join(origins, ", ")
}

// NewCors builds the CORS section from a comma separated origin list.
// The demo page is served from localhost by default.
func NewCors(originList string) Cors {
	origins := AllowedOrigins{}
	for _, origin := range strings.Split(originList, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins[origin] = nullValue{}
		}
	}
	if len(origins) == 0 {
		origins["http://localhost:3000"] = nullValue{}
	}
	return Cors{origins: origins}
}

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	return c.origins
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, DELETE, OPTIONS"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
