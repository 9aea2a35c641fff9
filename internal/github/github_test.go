package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func newTestClient(server *httptest.Server, token string) *Client {
	return &Client{
		token:   token,
		apiURL:  server.URL,
		httpCli: server.Client(),
	}
}

func TestParsePRURL(t *testing.T) {
	tests := []struct {
		url     string
		want    PRRef
		wantErr bool
	}{
		{url: "https://github.com/octo/app/pull/42", want: PRRef{"octo", "app", 42}},
		{url: "https://github.com/octo/app.js/pull/7/files", want: PRRef{"octo", "app.js", 7}},
		{url: "  https://github.com/o/r/pull/1  ", want: PRRef{"o", "r", 1}},
		{url: "https://github.com/octo/app/issues/42", wantErr: true},
		{url: "http://github.com/octo/app/pull/42", wantErr: true},
		{url: "https://gitlab.com/octo/app/pull/42", wantErr: true},
		{url: "https://github.com/octo/app/pull/0", wantErr: true},
		{url: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePRURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePRURL(%q) err = %v, wantErr %v", tt.url, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParsePRURL(%q) = %+v, want %+v", tt.url, got, tt.want)
		}
	}
}

func TestGetPullRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		switch r.URL.Path {
		case "/repos/octo/app/pulls/42":
			w.Write([]byte(`{"title":"Add loader","body":"Loads things"}`))
		case "/repos/octo/app/pulls/42/files":
			if r.URL.Query().Get("per_page") != "100" {
				t.Errorf("per_page = %q", r.URL.Query().Get("per_page"))
			}
			w.Write([]byte(`[
				{"filename":"app.py","status":"added","additions":2,"deletions":0,"patch":"@@ -0,0 +1,2 @@\n+import os\n+x = 1"},
				{"filename":"logo.png","status":"added","additions":0,"deletions":0}
			]`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := newTestClient(server, "test-token")
	pr, err := c.GetPullRequest(context.Background(), PRRef{"octo", "app", 42})
	if err != nil {
		t.Fatalf("GetPullRequest error: %v", err)
	}
	if pr.RepoName != "octo/app" || pr.Number != 42 {
		t.Errorf("ref = %s #%d", pr.RepoName, pr.Number)
	}
	if pr.Title != "Add loader" || pr.Body != "Loads things" {
		t.Errorf("title/body = %q / %q", pr.Title, pr.Body)
	}
	if len(pr.Files) != 2 {
		t.Fatalf("Files = %d, want 2", len(pr.Files))
	}
	if pr.Files[0].Additions != 2 || pr.Files[0].Patch == "" {
		t.Errorf("file[0] = %+v", pr.Files[0])
	}
	if pr.Files[1].Patch != "" {
		t.Errorf("binary file patch = %q, want empty", pr.Files[1].Patch)
	}
}

func TestGetPRFiles_Pagination(t *testing.T) {
	pages := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pages++
		n := filesPerPage
		if page == 2 {
			n = 3
		}
		files := make([]PRFile, n)
		for i := range files {
			files[i] = PRFile{Filename: fmt.Sprintf("p%d_f%d.py", page, i)}
		}
		json.NewEncoder(w).Encode(files)
	}))
	defer server.Close()

	c := newTestClient(server, "")
	files, err := c.GetPRFiles(context.Background(), PRRef{"o", "r", 1})
	if err != nil {
		t.Fatalf("GetPRFiles error: %v", err)
	}
	if len(files) != filesPerPage+3 {
		t.Errorf("files = %d, want %d", len(files), filesPerPage+3)
	}
	if pages != 2 {
		t.Errorf("pages requested = %d, want 2", pages)
	}
	if files[0].Filename != "p1_f0.py" || files[len(files)-1].Filename != "p2_f2.py" {
		t.Errorf("order = %s .. %s", files[0].Filename, files[len(files)-1].Filename)
	}
}

func TestGetPullRequest_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("Authorization should be absent, got %q", h)
		}
		if r.URL.Path == "/repos/o/r/pulls/1" {
			w.Write([]byte(`{"title":"t"}`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(server, "")
	if c.HasToken() {
		t.Error("HasToken should be false")
	}
	pr, err := c.GetPullRequest(context.Background(), PRRef{"o", "r", 1})
	if err != nil {
		t.Fatalf("GetPullRequest error: %v", err)
	}
	if len(pr.Files) != 0 {
		t.Errorf("Files = %v, want empty", pr.Files)
	}
}

func TestGetPullRequest_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantAuth bool
		wantNF   bool
	}{
		{"not found", http.StatusNotFound, false, true},
		{"unauthorized", http.StatusUnauthorized, true, false},
		{"forbidden", http.StatusForbidden, true, false},
		{"server error", http.StatusBadGateway, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message":"nope"}`))
			}))
			defer server.Close()

			_, err := newTestClient(server, "t").GetPullRequest(context.Background(), PRRef{"o", "r", 9})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := IsAuthError(err); got != tt.wantAuth {
				t.Errorf("IsAuthError = %v, want %v (%v)", got, tt.wantAuth, err)
			}
			if got := errors.Is(err, ErrNotFound); got != tt.wantNF {
				t.Errorf("errors.Is(ErrNotFound) = %v, want %v", got, tt.wantNF)
			}
			var apiErr *APIError
			if !tt.wantNF && (!errors.As(err, &apiErr) || apiErr.Message != "nope") {
				t.Errorf("APIError = %+v", apiErr)
			}
		})
	}
}

func TestPostComment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/repos/octo/app/issues/42/comments" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		var body commentRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Body != "## report" {
			t.Errorf("Body = %q", body.Body)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	c := newTestClient(server, "test-token")
	if err := c.PostComment(context.Background(), PRRef{"octo", "app", 42}, "## report"); err != nil {
		t.Fatalf("PostComment error: %v", err)
	}
}

func TestPostComment_RequiresToken(t *testing.T) {
	c := &Client{apiURL: "http://127.0.0.1:0", httpCli: http.DefaultClient}
	if err := c.PostComment(context.Background(), PRRef{"o", "r", 1}, "x"); err == nil {
		t.Fatal("expected error without token")
	}
}

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"HTTPS", "https://github.com/dshills/prscore.git", "dshills", "prscore", false},
		{"HTTPS no .git", "https://github.com/dshills/prscore", "dshills", "prscore", false},
		{"SSH", "git@github.com:dshills/prscore.git", "dshills", "prscore", false},
		{"SSH dotted repo", "git@github.com:dshills/prscore.io.git", "dshills", "prscore.io", false},
		{"invalid", "not-a-url", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRemoteURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if owner != tt.wantOwner {
				t.Errorf("owner = %q, want %q", owner, tt.wantOwner)
			}
			if repo != tt.wantRepo {
				t.Errorf("repo = %q, want %q", repo, tt.wantRepo)
			}
		})
	}
}

func TestNewClient_Env(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "abc")
	t.Setenv("GITHUB_API_URL", "https://ghe.example.com/api/v3/")
	c := NewClient()
	if !c.HasToken() {
		t.Error("token should be read from env")
	}
	if c.apiURL != "https://ghe.example.com/api/v3" {
		t.Errorf("apiURL = %q", c.apiURL)
	}
}
