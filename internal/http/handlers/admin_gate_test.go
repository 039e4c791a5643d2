package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestAdminGateAnonymous(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("anonymous /admin expected redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/login" {
		t.Fatalf("expected redirect to login, got %q", loc)
	}

	// API writes get a JSON 401 instead of a redirect
	body := bytes.NewReader([]byte(`{"name":"X"}`))
	req := httptest.NewRequest("POST", "/api/v1/products", body)
	req.Header.Set("Content-Type", "application/json")
	respAPI, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if respAPI.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous API write expected 401, got %d", respAPI.StatusCode)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	tok := mintCSRF(t, app)

	resp, err := app.Test(formPost("/admin/login",
		"csrf="+tok+"&password=definitely-wrong",
		&http.Cookie{Name: "csrf_", Value: tok}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password expected 401, got %d", resp.StatusCode)
	}
	if cookieValue(resp, "admin_sid") != "" {
		t.Fatal("session cookie set on failed login")
	}
}

func TestAdminFormCrud(t *testing.T) {
	app := newTestApp(t)
	adminCookie := adminLogin(t, app)
	tok := mintCSRF(t, app)
	csrfCookie := &http.Cookie{Name: "csrf_", Value: tok}

	// Dashboard lists the catalog
	reqDash := httptest.NewRequest("GET", "/admin", nil)
	reqDash.AddCookie(adminCookie)
	respDash, err := app.Test(reqDash)
	if err != nil {
		t.Fatal(err)
	}
	if respDash.StatusCode != http.StatusOK {
		t.Fatalf("dashboard expected 200, got %d", respDash.StatusCode)
	}
	dash, _ := io.ReadAll(respDash.Body)
	if !strings.Contains(string(dash), "Box Logo Tee") {
		t.Fatal("dashboard missing seeded product")
	}

	// Create via the form
	form := url.Values{
		"csrf":     {tok},
		"name":     {"Straight Denim"},
		"category": {"pants"},
		"price":    {"1600"},
		"image":    {"/media/seed/straight-denim.jpg"},
		"sizes":    {"30, 32, 34"},
		"rating":   {"4.5"},
		"reviews":  {"3"},
	}
	respCreate, err := app.Test(formPost("/admin/products", form.Encode(), csrfCookie, adminCookie))
	if err != nil {
		t.Fatal(err)
	}
	if respCreate.StatusCode != http.StatusFound {
		body, _ := io.ReadAll(respCreate.Body)
		t.Fatalf("create expected redirect, got %d body=%s", respCreate.StatusCode, body)
	}

	respList, err := app.Test(httptest.NewRequest("GET", "/api/v1/products?category=pants", nil))
	if err != nil {
		t.Fatal(err)
	}
	list, _ := io.ReadAll(respList.Body)
	if !strings.Contains(string(list), "Straight Denim") {
		t.Fatal("created product missing from the catalog")
	}

	// Invalid input re-renders the form with field errors and writes nothing
	bad := url.Values{
		"csrf":     {tok},
		"name":     {"Broken"},
		"category": {"pants"},
		"price":    {"0"},
		"image":    {"/media/seed/x.jpg"},
	}
	respBad, err := app.Test(formPost("/admin/products", bad.Encode(), csrfCookie, adminCookie))
	if err != nil {
		t.Fatal(err)
	}
	if respBad.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid create expected 400, got %d", respBad.StatusCode)
	}
	page, _ := io.ReadAll(respBad.Body)
	if !strings.Contains(string(page), "price must be greater than 0") {
		t.Fatal("field error missing from re-rendered form")
	}
	respList2, err := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	if err != nil {
		t.Fatal(err)
	}
	all, _ := io.ReadAll(respList2.Body)
	if strings.Contains(string(all), "Broken") {
		t.Fatal("rejected product was written")
	}

	// Delete via the form
	del := url.Values{"csrf": {tok}}
	respDel, err := app.Test(formPost("/admin/products/7/delete", del.Encode(), csrfCookie, adminCookie))
	if err != nil {
		t.Fatal(err)
	}
	if respDel.StatusCode != http.StatusFound {
		t.Fatalf("delete expected redirect, got %d", respDel.StatusCode)
	}
}

func TestAPIProductCrud(t *testing.T) {
	app := newTestApp(t)
	adminCookie := adminLogin(t, app)

	jsonReq := func(method, path string, payload any) *http.Request {
		var body io.Reader
		if payload != nil {
			b, _ := json.Marshal(payload)
			body = bytes.NewReader(b)
		}
		req := httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(adminCookie)
		return req
	}

	create := map[string]any{
		"name":     "Beanie",
		"category": "accessories",
		"price":    350,
		"image":    "/media/seed/beanie.jpg",
		"rating":   4.0,
		"reviews":  1,
	}
	resp, err := app.Test(jsonReq("POST", "/api/v1/products", create))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("create expected 201, got %d body=%s", resp.StatusCode, body)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID != 7 {
		t.Fatalf("expected next id 7, got %d", created.ID)
	}

	update := map[string]any{
		"name":     "Wool Beanie",
		"category": "accessories",
		"price":    400,
		"image":    "/media/seed/beanie.jpg",
		"rating":   4.0,
		"reviews":  1,
	}
	respUpd, err := app.Test(jsonReq("PUT", "/api/v1/products/7", update))
	if err != nil {
		t.Fatal(err)
	}
	if respUpd.StatusCode != http.StatusNoContent {
		t.Fatalf("update expected 204, got %d", respUpd.StatusCode)
	}

	respMiss, err := app.Test(jsonReq("PUT", "/api/v1/products/999", update))
	if err != nil {
		t.Fatal(err)
	}
	if respMiss.StatusCode != http.StatusNotFound {
		t.Fatalf("update of missing product expected 404, got %d", respMiss.StatusCode)
	}

	// Validation errors come back field-scoped
	invalid := map[string]any{
		"name":     "Bad",
		"category": "accessories",
		"price":    100,
		"image":    "/media/seed/x.jpg",
		"sizes":    []string{"M"},
	}
	respInv, err := app.Test(jsonReq("POST", "/api/v1/products", invalid))
	if err != nil {
		t.Fatal(err)
	}
	if respInv.StatusCode != http.StatusBadRequest {
		t.Fatalf("sized accessory expected 400, got %d", respInv.StatusCode)
	}
	var fieldErrs struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(respInv.Body).Decode(&fieldErrs); err != nil {
		t.Fatal(err)
	}
	if _, ok := fieldErrs.Errors["sizes"]; !ok {
		t.Fatalf("expected a sizes field error, got %v", fieldErrs.Errors)
	}

	respDel, err := app.Test(jsonReq("DELETE", "/api/v1/products/7", nil))
	if err != nil {
		t.Fatal(err)
	}
	if respDel.StatusCode != http.StatusNoContent {
		t.Fatalf("delete expected 204, got %d", respDel.StatusCode)
	}
	respDel2, err := app.Test(jsonReq("DELETE", "/api/v1/products/7", nil))
	if err != nil {
		t.Fatal(err)
	}
	if respDel2.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete expected 404, got %d", respDel2.StatusCode)
	}
}

func TestAdminLogout(t *testing.T) {
	app := newTestApp(t)
	adminCookie := adminLogin(t, app)
	tok := mintCSRF(t, app)

	respOut, err := app.Test(formPost("/admin/logout", "csrf="+tok,
		&http.Cookie{Name: "csrf_", Value: tok}, adminCookie))
	if err != nil {
		t.Fatal(err)
	}
	if respOut.StatusCode != http.StatusFound {
		t.Fatalf("logout expected redirect, got %d", respOut.StatusCode)
	}

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(adminCookie)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("stale session expected redirect, got %d", resp.StatusCode)
	}
}
