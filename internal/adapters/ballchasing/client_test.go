package ballchasing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "tok-123")
}

func TestPing(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "tok-123" {
			t.Fatalf("auth header %q", got)
		}
		_, _ = w.Write([]byte(`{"steam_id":"7656"}`))
	})

	id, err := c.Ping(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if id != "7656" {
		t.Fatalf("steam id %q", id)
	}
}

func TestSearchReplaysQuery(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/replays" {
			t.Fatalf("path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("playlist") != "private" || q.Get("uploader") != "7656" ||
			q.Get("count") != "50" || q.Get("sort-by") != "created" || q.Get("sort-dir") != "desc" {
			t.Fatalf("query %v", q)
		}
		_, _ = w.Write([]byte(`{"list":[{"id":"r1","duration":310,"blue":{"goals":2},"orange":{"goals":1}}],"count":1}`))
	})

	page, err := c.SearchReplays(context.Background(), SearchFilter{
		Playlist: "private", Uploader: "7656", Count: 50, SortBy: "created", SortDir: "desc",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.List) != 1 || page.List[0].ID != "r1" || page.List[0].Blue.Goals != 2 {
		t.Fatalf("page %+v", page)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no such group"}`))
	})

	_, err := c.ListGroups(context.Background(), "missing", "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "no such group") {
		t.Fatalf("service message lost: %v", err)
	}
}

func TestCreateGroupPayload(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/groups" {
			t.Fatalf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["name"] != "MD 02 vs Beta" || body["parent"] != "rs" ||
			body["team_identification"] != "by-player-clusters" || body["player_identification"] != "by-id" {
			t.Fatalf("payload %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"g99"}`))
	})

	g, err := c.CreateGroup(context.Background(), "MD 02 vs Beta", "rs", "by-player-clusters", "by-id")
	if err != nil {
		t.Fatal(err)
	}
	if g.ID != "g99" || g.Name != "MD 02 vs Beta" {
		t.Fatalf("group %+v", g)
	}
}

func TestPatchReplay(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/replays/r1" {
			t.Fatalf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["title"] != "Game 1" {
			t.Fatalf("payload %v", body)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.PatchReplay(context.Background(), "r1", map[string]string{"title": "Game 1"}); err != nil {
		t.Fatal(err)
	}
}

func TestUploadReplayFresh(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatal(err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if hdr.Filename != "r1.replay" {
			t.Fatalf("filename %q", hdr.Filename)
		}
		q := r.URL.Query()
		if q.Get("group") != "dest" || q.Get("visibility") != "public" {
			t.Fatalf("query %v", q)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"new-1"}`))
	})

	res, err := c.UploadReplay(context.Background(), "r1.replay", strings.NewReader("data"), "dest", "public")
	if err != nil {
		t.Fatal(err)
	}
	if res.ID != "new-1" || res.Duplicate {
		t.Fatalf("result %+v", res)
	}
}

func TestUploadReplayDuplicate(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"id":"existing-1","error":"duplicate replay"}`))
	})

	res, err := c.UploadReplay(context.Background(), "r1.replay", strings.NewReader("data"), "dest", "public")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Duplicate || res.ID != "existing-1" {
		t.Fatalf("result %+v", res)
	}
}

func TestDownloadReplay(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/replays/r1/file" {
			t.Fatalf("path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte("binary-replay-bytes"))
	})

	raw, err := c.DownloadReplay(context.Background(), "r1")
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "binary-replay-bytes" {
		t.Fatalf("body %q", raw)
	}
}
