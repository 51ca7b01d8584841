/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoryCachedHttpClient(t *testing.T) {
	var hits int32
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		gotUA.Store(r.Header.Get("User-Agent"))
		// origin tries to disable caching; the client overrides this
		w.Header().Set("Cache-Control", "no-store")
		fmt.Fprint(w, `{"status":true,"data":[]}`)
	}))
	defer srv.Close()

	client := NewMemoryCachedHttpClient(5 * time.Minute)
	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("Get #%d: %v", i, err)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil || len(data) == 0 {
			t.Fatalf("Get #%d: empty body (err %v)", i, err)
		}
		if i > 0 && resp.Header.Get("X-From-Cache") != "1" {
			t.Errorf("Get #%d: object not cached", i)
		}
	}

	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("origin hit %d times; want 1", n)
	}
	if ua, _ := gotUA.Load().(string); ua != UserAgent {
		t.Errorf("User-Agent = %q; want %q", ua, UserAgent)
	}
}
