package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListPrices_RequestShape(t *testing.T) {
	var gotAuth, gotVersion, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Paddle-Api-Version")
		gotQuery = r.URL.RawQuery
		if r.URL.Path != "/prices" {
			t.Errorf("path = %s, want /prices", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[],"meta":{"pagination":{"per_page":50,"next":"","has_more":false}}}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "pdl_live_key"})
	if _, err := c.ListPrices(context.Background(), "", 50); err != nil {
		t.Fatalf("ListPrices() error = %v", err)
	}

	if gotAuth != "Bearer pdl_live_key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotVersion != "1" {
		t.Errorf("Paddle-Api-Version = %q, want default 1", gotVersion)
	}
	if gotQuery != "per_page=50&order_by=id%5BASC%5D" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestListPrices_CursorForwarded(t *testing.T) {
	var gotAfter string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAfter = r.URL.Query().Get("after")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[],"meta":{"pagination":{"per_page":200,"next":"","has_more":false}}}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "pdl_test"})
	if _, err := c.ListPrices(context.Background(), "pri_42", 0); err != nil {
		t.Fatalf("ListPrices() error = %v", err)
	}
	if gotAfter != "pri_42" {
		t.Errorf("after = %q, want pri_42", gotAfter)
	}
}

func TestListPrices_NextCursorExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data":[{"id":"pri_1"}],
			"meta":{"pagination":{"per_page":1,"next":"https://api.paddle.com/prices?after=pri_1&per_page=1","has_more":true}}
		}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "pdl_test"})
	page, err := c.ListPrices(context.Background(), "", 1)
	if err != nil {
		t.Fatalf("ListPrices() error = %v", err)
	}

	if page.NextCursor != "pri_1" {
		t.Errorf("NextCursor = %q, want pri_1 (trailing params stripped)", page.NextCursor)
	}
	if !page.HasMore {
		t.Error("HasMore should be true")
	}
	if len(page.Items) != 1 {
		t.Errorf("Items = %d, want 1", len(page.Items))
	}
}

func TestListPrices_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "pdl_bad"})
	if _, err := c.ListPrices(context.Background(), "", 0); err == nil {
		t.Error("expected error on 403 response")
	}
}

func TestListNotificationSettings_FollowsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("after") == "ntfset_1" {
			fmt.Fprint(w, `{
				"data":[{"id":"ntfset_2","type":"url","active":true}],
				"meta":{"pagination":{"per_page":1,"next":"","has_more":false}}
			}`)
			return
		}
		fmt.Fprint(w, `{
			"data":[{"id":"ntfset_1","type":"url","active":true}],
			"meta":{"pagination":{"per_page":1,"next":"https://api.paddle.com/notification-settings?after=ntfset_1","has_more":true}}
		}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "pdl_test"})
	settings, err := c.ListNotificationSettings(context.Background())
	if err != nil {
		t.Fatalf("ListNotificationSettings() error = %v", err)
	}

	if len(settings) != 2 {
		t.Fatalf("settings = %d, want 2", len(settings))
	}
	if settings[0].ID != "ntfset_1" || settings[1].ID != "ntfset_2" {
		t.Errorf("settings order = %s, %s", settings[0].ID, settings[1].ID)
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{APIKey: "pdl_test"})
	if c.baseURL != "https://api.paddle.com" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
	if c.apiVersion != "1" {
		t.Errorf("apiVersion = %q", c.apiVersion)
	}

	c = New(Config{BaseURL: "https://sandbox-api.paddle.com/", APIKey: "pdl_test", APIVersion: "2"})
	if c.baseURL != "https://sandbox-api.paddle.com" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
	if c.apiVersion != "2" {
		t.Errorf("apiVersion = %q", c.apiVersion)
	}
}
