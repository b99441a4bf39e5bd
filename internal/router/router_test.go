package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"open-baby-backend/internal/router"
)

func TestHTTP_BottleFeedCRUDAndStats(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Crear dos tomas de biberón (la segunda 3.5h después)
	firstID := createEvent(t, ts.URL, "/events/feed/bottle", map[string]any{
		"time_start": "2024-01-01T08:00:00Z",
		"amount_ml":  120,
		"is_formula": false,
	})
	secondID := createEvent(t, ts.URL, "/events/feed/bottle", map[string]any{
		"time_start": "2024-01-01T11:30:00Z",
		"amount_ml":  150,
		"is_formula": true,
	})
	if firstID == secondID {
		t.Fatalf("expected distinct ids, got %q twice", firstID)
	}

	// 2) Get devuelve el registro completo con defaults aplicados
	{
		st, body := doReq(t, ts.URL, "GET", "/events/feed/bottle/"+firstID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get, got %d body=%s", st, string(body))
		}
		var got map[string]any
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["name"] != "feed_bottle" {
			t.Fatalf("expected discriminator feed_bottle, got %v", got["name"])
		}
		if got["description"] != "Bottle feed event" {
			t.Fatalf("expected default description, got %v", got["description"])
		}
		if got["amount_ml"] != float64(120) {
			t.Fatalf("expected amount 120, got %v", got["amount_ml"])
		}
	}

	// 3) List pagina y ordena descendente por time_start
	{
		st, body := doReq(t, ts.URL, "GET", "/events/feed/bottle?limit=1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var resp struct {
			Total  int              `json:"total"`
			Events []map[string]any `json:"events"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Total != 2 {
			t.Fatalf("expected total 2, got %d", resp.Total)
		}
		if len(resp.Events) != 1 {
			t.Fatalf("expected 1 event in page, got %d", len(resp.Events))
		}
		if resp.Events[0]["id"] != secondID {
			t.Fatalf("expected most recent first, got %v", resp.Events[0]["id"])
		}
	}

	// 4) La estadística de tomas devuelve los deltas consecutivos
	{
		st, body := doReq(t, ts.URL, "GET", "/stats/feeds?start_date=2024-01-01T00:00:00Z&end_date=2024-01-02T00:00:00Z", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 stats, got %d body=%s", st, string(body))
		}
		var stats []struct {
			AmountML                 int     `json:"amount_ml"`
			TimeSinceLastFeedMinutes float64 `json:"time_since_last_feed_minutes"`
		}
		if err := json.Unmarshal(body, &stats); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(stats) != 2 {
			t.Fatalf("expected 2 statistics, got %d", len(stats))
		}
		if stats[0].TimeSinceLastFeedMinutes != 0 {
			t.Fatalf("expected 0 minutes for first feed, got %v", stats[0].TimeSinceLastFeedMinutes)
		}
		if stats[1].TimeSinceLastFeedMinutes != 210.0 {
			t.Fatalf("expected 210 minutes, got %v", stats[1].TimeSinceLastFeedMinutes)
		}
	}

	// 5) Update reemplaza todos los campos salvo el id
	{
		st, body := doReq(t, ts.URL, "PUT", "/events/feed/bottle/"+firstID, map[string]any{
			"time_start": "2024-01-01T08:05:00Z",
			"amount_ml":  130,
			"is_formula": true,
			"notes":      "warmed up",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		var got map[string]any
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["id"] != firstID {
			t.Fatalf("id changed on update: %v", got["id"])
		}
		if got["amount_ml"] != float64(130) {
			t.Fatalf("expected amount 130, got %v", got["amount_ml"])
		}
	}

	// 6) Delete saca el evento de gets y listados posteriores
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/events/feed/bottle/"+firstID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/events/feed/bottle/"+firstID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/events/feed/bottle", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var resp struct {
			Total int `json:"total"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Total != 1 {
			t.Fatalf("expected total 1 after delete, got %d", resp.Total)
		}
	}
}

func TestHTTP_GenericEventSurface(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	diaperID := createEvent(t, ts.URL, "/events/diaper", map[string]any{
		"time_start":            "2024-02-01T07:00:00Z",
		"diaper_type":           "poop",
		"diaper_contents_color": "yellow",
	})

	// La superficie genérica ve la proyección base de la variante
	{
		st, body := doReq(t, ts.URL, "GET", "/events/"+diaperID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 generic get, got %d body=%s", st, string(body))
		}
		var got map[string]any
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["name"] != "diaper_change" {
			t.Fatalf("expected discriminator diaper_change, got %v", got["name"])
		}
	}

	// PUT genérico con tipo distinto al guardado => 400
	{
		st, _ := doReq(t, ts.URL, "PUT", "/events/"+diaperID, map[string]any{
			"name":       "pump",
			"time_start": "2024-02-01T07:00:00Z",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 on type mismatch, got %d", st)
		}
	}

	// PUT genérico consistente actualiza los campos base
	{
		st, _ := doReq(t, ts.URL, "PUT", "/events/"+diaperID, map[string]any{
			"name":       "diaper_change",
			"time_start": "2024-02-01T07:10:00Z",
			"notes":      "all good",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 generic update, got %d", st)
		}
	}

	// DELETE genérico borra también la fila de la variante
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/events/"+diaperID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 generic delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/events/diaper/"+diaperID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 on variant after generic delete, got %d", st)
		}
	}
}

func TestHTTP_ValidationAndNotFound(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// amount negativo => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/events/feed/bottle", map[string]any{
			"time_start": "2024-01-01T08:00:00Z",
			"amount_ml":  -5,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 negative amount, got %d", st)
		}
	}

	// time_end anterior a time_start => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/events/pump", map[string]any{
			"time_start": "2024-01-01T08:00:00Z",
			"time_end":   "2024-01-01T07:00:00Z",
			"amount_ml":  50,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 time_end before time_start, got %d", st)
		}
	}

	// lado desconocido => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/events/feed/breast", map[string]any{
			"time_start": "2024-01-01T08:00:00Z",
			"side":       "front",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unknown side, got %d", st)
		}
	}

	// contenido de pañal sin caca => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/events/diaper", map[string]any{
			"time_start":            "2024-01-01T08:00:00Z",
			"diaper_type":           "pee",
			"diaper_contents_color": "yellow",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 contents without poop, got %d", st)
		}
	}

	// ids nunca creados => 404 en get/update/delete
	for _, tc := range []struct{ method, path string }{
		{"GET", "/events/feed/bottle/nope"},
		{"PUT", "/events/feed/bottle/nope"},
		{"DELETE", "/events/feed/bottle/nope"},
		{"GET", "/events/nope"},
	} {
		var body map[string]any
		if tc.method == "PUT" {
			body = map[string]any{"time_start": "2024-01-01T08:00:00Z", "amount_ml": 100}
		}
		st, _ := doReq(t, ts.URL, tc.method, tc.path, body)
		if st != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, st)
		}
	}
}

func TestHTTP_BreastFeedDefaultSide(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	id := createEvent(t, ts.URL, "/events/feed/breast", map[string]any{
		"time_start": "2024-01-01T08:00:00Z",
	})

	st, body := doReq(t, ts.URL, "GET", "/events/feed/breast/"+id, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get, got %d", st)
	}
	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["side"] != "both" {
		t.Fatalf("expected default side both, got %v", got["side"])
	}
}

func createEvent(t *testing.T, baseURL, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create at %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("expected assigned id in create response")
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
