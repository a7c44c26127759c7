package nets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/evchain/modes"
)

func TestIsLocalAddr(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Call(func(
		isLocalAddr IsLocalAddr,
	) {
		for addr, expected := range map[string]bool{
			"127.0.0.1:10000": true,
			"localhost":       true,
			"192.168.1.2:80":  true,
			"[::1]:80":        true,
			"8.8.8.8:53":      false,
			"1.1.1.1":         false,
		} {
			yes, err := isLocalAddr(addr)
			if err != nil {
				t.Fatal(err)
			}
			if yes != expected {
				t.Fatalf("%s: got %v", addr, yes)
			}
		}
	})
}

func TestOpen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/page.html" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `<p on="click">x</p>`)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte("<p></p>"), 0644); err != nil {
		t.Fatal(err)
	}

	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Call(func(
		open Open,
		proxyAddr ProxyAddr,
	) {
		if proxyAddr != "" {
			t.Fatal("no proxy in tests")
		}
		ctx := context.Background()

		r, err := open(ctx, server.URL+"/page.html")
		if err != nil {
			t.Fatal(err)
		}
		content, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != `<p on="click">x</p>` {
			t.Fatalf("got %s", content)
		}

		if _, err := open(ctx, server.URL+"/nope"); err == nil {
			t.Fatal("should error")
		}

		r, err = open(ctx, path)
		if err != nil {
			t.Fatal(err)
		}
		r.Close()
		if _, err := open(ctx, path+".nope"); err == nil {
			t.Fatal("should error")
		}
	})
}
