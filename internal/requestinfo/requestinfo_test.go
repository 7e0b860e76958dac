package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const chromeMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.6422.60 Safari/537.36"

func TestEnrichAttachesInfo(t *testing.T) {
	var got *RequestInfo
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cms/contents/pages/home", nil)
	req.Header.Set("User-Agent", chromeMac)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("RequestInfo not attached")
	}
	if got.UA.Browser != "Chrome" || got.UA.Device != "Desktop" || got.UA.IsBot {
		t.Fatalf("UA = %+v", got.UA)
	}
	if got.UA.PrimaryLang != "en-gb" {
		t.Fatalf("lang = %q", got.UA.PrimaryLang)
	}
	if got.Geo.IP.String() != "203.0.113.7" {
		t.Fatalf("ip = %v", got.Geo.IP)
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:5555"
	if ip := ClientIP(req); ip.String() != "198.51.100.4" {
		t.Fatalf("ClientIP = %v", ip)
	}
}

func TestInitGeoEmptyPathDisables(t *testing.T) {
	if err := InitGeo(""); err != nil {
		t.Fatalf("InitGeo: %v", err)
	}
	if err := InitGeo("/nonexistent/GeoLite2-City.mmdb"); err == nil {
		t.Fatal("expected open error")
	}
}
