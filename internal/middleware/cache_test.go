package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/config"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Custom", "a")
	hdr.Add("X-Custom", "b")
	body := []byte(`{"message":"ok"}`)

	bs, err := encodePayload(http.StatusCreated, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decodePayload rejected its own encoding")
	}
	if status != http.StatusCreated {
		t.Errorf("status = %d, want %d", status, http.StatusCreated)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", gotHdr.Get("Content-Type"))
	}
	if vals := gotHdr.Values("X-Custom"); len(vals) != 2 {
		t.Errorf("X-Custom values = %v", vals)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	if _, _, _, ok := decodePayload([]byte("short")); ok {
		t.Fatal("decodePayload accepted truncated input")
	}
	if _, _, _, ok := decodePayload([]byte{0, 0, 0, 200, 0, 0, 0, 99, 'x'}); ok {
		t.Fatal("decodePayload accepted header length past the buffer")
	}
}

func TestCacheKeyStable(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	e := echo.New()

	ctxFor := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/rooms")
		return c
	}

	k1 := cacheKeyFrom(cfg, ctxFor("/v1/rooms?x=1"))
	k2 := cacheKeyFrom(cfg, ctxFor("/v1/rooms?x=1"))
	k3 := cacheKeyFrom(cfg, ctxFor("/v1/rooms?x=2"))
	if k1 != k2 {
		t.Errorf("identical requests produced different keys: %q vs %q", k1, k2)
	}
	if k1 == k3 {
		t.Error("different query strings produced the same key")
	}
}
