package forkify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultAPIURL {
		t.Fatalf("base = %q, want %q", u.String(), DefaultAPIURL)
	}

	u, err = parseBaseURL("example.com/api/v2/recipes/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "/api/v2/recipes" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpointsAndAttachesKey(t *testing.T) {
	t.Parallel()

	var gotSearch url.Values
	var gotUpload NewRecipe
	var gotKeys []string
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotKeys = append(gotKeys, r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/recipes/abc123":
			_, _ = io.WriteString(w, `{"status":"success","data":{"recipe":{
				"id":"abc123","title":"Pizza","publisher":"Chef","source_url":"http://src",
				"image_url":"http://img","servings":4,"cooking_time":"45",
				"ingredients":[{"quantity":2,"unit":"kg","description":"flour"},{"quantity":null,"unit":"","description":"salt"}]}}}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/recipes":
			gotSearch = r.URL.Query()
			_, _ = io.WriteString(w, `{"status":"success","results":2,"data":{"recipes":[
				{"id":"1","title":"A","publisher":"P","image_url":"i1"},
				{"id":"2","title":"B","publisher":"P","image_url":"i2","key":"k"}]}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/recipes":
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				http.Error(w, "bad content type", http.StatusBadRequest)
				return
			}
			_ = json.NewDecoder(r.Body).Decode(&gotUpload)
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"status":"success","data":{"recipe":{"id":"new","title":"Mine","servings":2,"cooking_time":10,"key":"secret","ingredients":[]}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/recipes/", "secret", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	recipe, err := c.FetchRecipe(ctx, "abc123")
	if err != nil {
		t.Fatalf("FetchRecipe returned error: %v", err)
	}
	two := 2.0
	want := &Recipe{
		ID:          "abc123",
		Title:       "Pizza",
		Publisher:   "Chef",
		SourceURL:   "http://src",
		ImageURL:    "http://img",
		Servings:    4,
		CookingTime: 45,
		Ingredients: []Ingredient{
			{Quantity: &two, Unit: "kg", Description: "flour"},
			{Quantity: nil, Unit: "", Description: "salt"},
		},
	}
	if diff := cmp.Diff(want, recipe); diff != "" {
		t.Fatalf("FetchRecipe mismatch (-want +got):\n%s", diff)
	}

	results, err := c.SearchRecipes(ctx, "pizza pie")
	if err != nil {
		t.Fatalf("SearchRecipes returned error: %v", err)
	}
	if len(results) != 2 || results[1].Key != "k" {
		t.Fatalf("SearchRecipes = %#v, want 2 results with key on the second", results)
	}
	if gotSearch.Get("search") != "pizza pie" {
		t.Fatalf("search query = %v, want search=pizza pie", gotSearch)
	}

	created, err := c.CreateRecipe(ctx, NewRecipe{Title: "Mine", Servings: 2, CookingTime: 10})
	if err != nil {
		t.Fatalf("CreateRecipe returned error: %v", err)
	}
	if created.ID != "new" || created.Key != "secret" {
		t.Fatalf("CreateRecipe = %#v, want id=new key=secret", created)
	}
	if gotUpload.Title != "Mine" || gotUpload.Servings != 2 || gotUpload.CookingTime != 10 {
		t.Fatalf("uploaded payload = %#v", gotUpload)
	}

	for i, k := range gotKeys {
		if k != "secret" {
			t.Fatalf("request %d key = %q, want secret", i, k)
		}
	}
	if !strings.HasPrefix(gotUserAgent, "forkify/") {
		t.Fatalf("User-Agent = %q, want forkify/*", gotUserAgent)
	}
}

func TestClient_UploadBodyUsesSnakeCase(t *testing.T) {
	t.Parallel()

	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"status":"success","data":{"recipe":{"id":"x"}}}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	q := 0.5
	_, err = c.CreateRecipe(context.Background(), NewRecipe{
		Title:       "T",
		ImageURL:    "img",
		SourceURL:   "src",
		Servings:    3,
		Publisher:   "me",
		CookingTime: 20,
		Ingredients: []Ingredient{{Quantity: &q, Unit: "cup", Description: "milk"}, {Description: "salt"}},
	})
	if err != nil {
		t.Fatalf("CreateRecipe returned error: %v", err)
	}
	for _, key := range []string{"title", "image_url", "source_url", "servings", "publisher", "cooking_time", "ingredients"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("upload body missing %q: %v", key, body)
		}
	}
	ings, _ := body["ingredients"].([]any)
	if len(ings) != 2 {
		t.Fatalf("ingredients = %v, want 2 entries", body["ingredients"])
	}
	second, _ := ings[1].(map[string]any)
	if v, ok := second["quantity"]; !ok || v != nil {
		t.Fatalf("null quantity not preserved: %v", second)
	}
}

func TestClient_ClassifiesErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"status":"fail","message":"No recipe found"}`)
		case "/bad":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"status":"fail","message":"Invalid _id: bad"}`)
		case "/soft":
			_, _ = io.WriteString(w, `{"status":"fail","message":"quota exceeded"}`)
		case "/garbage":
			_, _ = io.WriteString(w, `{not-json`)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "k", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.FetchRecipe(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FetchRecipe(missing) error = %v, want ErrNotFound", err)
	}

	_, err = c.FetchRecipe(ctx, "bad")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("FetchRecipe(bad) error = %v, want ErrNetwork", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "Invalid _id: bad" {
		t.Fatalf("FetchRecipe(bad) error = %#v, want APIError 400 with message", err)
	}

	_, err = c.FetchRecipe(ctx, "soft")
	if !errors.Is(err, ErrApplication) {
		t.Fatalf("FetchRecipe(soft) error = %v, want ErrApplication", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("FetchRecipe(soft) error = %q, want API message", err.Error())
	}

	_, err = c.FetchRecipe(ctx, "garbage")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchRecipe(garbage) error = %v, want decode response error", err)
	}

	_, err = c.FetchRecipe(ctx, "other")
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchRecipe(other) error = %v, want status 500 error", err)
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, "", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.SearchRecipes(context.Background(), "pizza")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("SearchRecipes error = %v, want ErrNetwork", err)
	}
}

func TestClient_FetchRecipeRequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", "", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchRecipe(context.Background(), "  "); err == nil {
		t.Fatalf("FetchRecipe returned nil error, want error")
	}
}

func TestInt_AcceptsNumbersAndStrings(t *testing.T) {
	cases := []struct {
		in   string
		want Int
	}{
		{`4`, 4},
		{`"4"`, 4},
		{`" 12 "`, 12},
		{`""`, 0},
		{`null`, 0},
		{`2.0`, 2},
	}
	for _, tc := range cases {
		var got Int
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Unmarshal(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
	var bad Int
	if err := json.Unmarshal([]byte(`"four"`), &bad); err == nil {
		t.Fatalf("Unmarshal(four) returned nil error, want error")
	}
}
