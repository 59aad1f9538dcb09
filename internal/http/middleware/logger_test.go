package middleware

import "testing"

func TestRouteModule(t *testing.T) {
	cases := map[string]string{
		"/api/auth/login":       "auth",
		"/api/inventory":        "inventory",
		"/api/orders/7/status":  "orders",
		"/api/reports/stock":    "reports",
		"/api/":                 "-",
		"/health":               "-",
		"/":                     "-",
		"/apiary/anything/else": "-",
	}
	for path, want := range cases {
		if got := routeModule(path); got != want {
			t.Fatalf("routeModule(%q) = %q, want %q", path, got, want)
		}
	}
}
