package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLookupFoodHit(t *testing.T) {
	food := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/product/12345678.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"status":1,"product":{"product_name":"Azam Soda","categories":"Beverages, Sodas","brands":"Azam","image_url":"http://img"}}`))
	}))
	defer food.Close()

	client := NewBarcodeClient(food.URL, "http://127.0.0.1:0", time.Second, zerolog.Nop())
	result, err := client.Lookup(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if result.Name != "Azam Soda" {
		t.Errorf("name = %q", result.Name)
	}
	if result.Category != "Beverages" {
		t.Errorf("category = %q, want first taxonomy segment", result.Category)
	}
	if result.Brand != "Azam" {
		t.Errorf("brand = %q", result.Brand)
	}
}

func TestLookupFallsBackToCatalog(t *testing.T) {
	food := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":0}`))
	}))
	defer food.Close()
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("upc") != "12345678" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"code":"OK","items":[{"title":"Blue Pen","category":"Office","brand":"Bic","images":["http://img"]}]}`))
	}))
	defer catalog.Close()

	client := NewBarcodeClient(food.URL, catalog.URL, time.Second, zerolog.Nop())
	result, err := client.Lookup(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if result.Name != "Blue Pen" || result.Brand != "Bic" {
		t.Errorf("result = %+v", result)
	}
	if result.ImageURL != "http://img" {
		t.Errorf("image_url = %q", result.ImageURL)
	}
}

func TestLookupNotFoundInBothSources(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFound.Close()

	client := NewBarcodeClient(notFound.URL, notFound.URL, time.Second, zerolog.Nop())
	_, err := client.Lookup(context.Background(), "12345678")
	if !errors.Is(err, ErrBarcodeNotFound) {
		t.Fatalf("err = %v, want ErrBarcodeNotFound", err)
	}
}

func TestLookupTimeoutIsDistinctFromNotFound(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"status":1,"product":{"product_name":"X"}}`))
	}))
	defer slow.Close()

	client := NewBarcodeClient(slow.URL, slow.URL, 50*time.Millisecond, zerolog.Nop())
	_, err := client.Lookup(context.Background(), "12345678")
	if !errors.Is(err, ErrLookupTimeout) {
		t.Fatalf("err = %v, want ErrLookupTimeout", err)
	}
}
