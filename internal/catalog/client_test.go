package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func jsonDecode(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func TestBranchesDecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/branches", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"statusCode": 200,
			"message": "ok",
			"code": "SUCCESS",
			"data": [
				{"id": "B1", "name": "Downtown", "address": "1 Main St"},
				{"id": "B2", "name": "Riverside", "address": "9 Quay Rd"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	branches, err := client.Branches(context.Background())
	assert.NoError(t, err)
	assert.Len(t, branches, 2)
	assert.Equal(t, "Downtown", branches[0].Name)
}

func TestMoviesAtBranchUnwrapsItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movies/get-with-branches/B1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"items": [{"id": "M1", "name": "Dune", "duration": 155, "ageLimit": 13}]}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	movies, err := client.MoviesAtBranch(context.Background(), "B1")
	assert.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.Equal(t, 155, movies[0].Duration)
}

func TestShowTimesByMovieAndBranchQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/show-time/get-with-branch", r.URL.Path)
		assert.Equal(t, "M1", r.URL.Query().Get("movieId"))
		assert.Equal(t, "B1", r.URL.Query().Get("branchId"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"items": [
				{"dayOfWeek": {"name": "Friday", "value": "2025-02-07T00:00:00Z"},
				 "times": [{"id": "S1", "time": "19:30"}]}
			]}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	days, err := client.ShowTimesByMovieAndBranch(context.Background(), "M1", "B1")
	assert.NoError(t, err)
	assert.Len(t, days, 1)
	assert.Equal(t, "2025-02-07", days[0].DateValue())
	assert.Equal(t, "19:30", days[0].Times[0].Time)
}

func TestNon2xxReturnsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	_, err := client.Branches(context.Background())
	assert.Error(t, err)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "upstream down")
}

func TestUnsuccessfulEnvelopeIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "message": "voucher not found", "data": null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	_, err := client.CheckVoucher(context.Background(), "nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "voucher not found")
}

func TestCheckVoucherNormalizesCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		assert.NoError(t, jsonDecode(r, &body))
		assert.Equal(t, "SUMMER10", body["code"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": "V1", "code": "SUMMER10", "discountPercent": 10}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	voucher, err := client.CheckVoucher(context.Background(), "  summer10 ")
	assert.NoError(t, err)
	assert.Equal(t, "SUMMER10", voucher.Code)
	assert.NotNil(t, voucher.DiscountPercent)
	assert.Equal(t, 10.0, *voucher.DiscountPercent)
}

func TestRefreshmentsPaging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/refreshments", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"items": [{"id": "r1", "name": "Popcorn", "price": 45000}],
				"meta": {"limit": 10, "offset": 0, "total": 1, "totalPages": 1}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	page, err := client.Refreshments(context.Background(), 10, 0)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Meta.Total)
}
