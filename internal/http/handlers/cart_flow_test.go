package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestStorefrontPages(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("home expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Box Logo Tee") {
		t.Fatal("seeded product missing from home page")
	}

	resp2, err := app.Test(httptest.NewRequest("GET", "/product/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("detail expected 200, got %d", resp2.StatusCode)
	}

	resp3, err := app.Test(httptest.NewRequest("GET", "/product/999", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp3.StatusCode != http.StatusNotFound {
		t.Fatalf("missing product expected 404, got %d", resp3.StatusCode)
	}

	resp4, err := app.Test(httptest.NewRequest("GET", "/?category=bogus", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp4.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad category filter expected 400, got %d", resp4.StatusCode)
	}

	resp5, err := app.Test(httptest.NewRequest("GET", "/?category=tees&sort=price_asc", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp5.StatusCode != http.StatusOK {
		t.Fatalf("filtered home expected 200, got %d", resp5.StatusCode)
	}
}

func TestCartAddMergeCheckout(t *testing.T) {
	app := newTestApp(t)
	tok := mintCSRF(t, app)
	csrfCookie := &http.Cookie{Name: "csrf_", Value: tok}

	add := url.Values{"csrf": {tok}, "productId": {"1"}, "size": {"M"}}
	resp, err := app.Test(formPost("/cart", add.Encode(), csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("cart add expected redirect, got %d", resp.StatusCode)
	}
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("sid not set after cart add")
	}
	sidCookie := &http.Cookie{Name: "sid", Value: sid}

	// Same (id, size) merges into one line
	if _, err := app.Test(formPost("/cart", add.Encode(), csrfCookie, sidCookie)); err != nil {
		t.Fatal(err)
	}

	reqCart := httptest.NewRequest("GET", "/cart", nil)
	reqCart.AddCookie(sidCookie)
	respCart, err := app.Test(reqCart)
	if err != nil {
		t.Fatal(err)
	}
	page, _ := io.ReadAll(respCart.Body)
	s := string(page)
	if !strings.Contains(s, "Box Logo Tee") {
		t.Fatal("cart page missing added item")
	}
	if !strings.Contains(s, "Cart (2)") {
		t.Fatalf("expected merged quantity 2 in header, page=%s", s)
	}
	if !strings.Contains(s, "Rs 1000") {
		t.Fatal("expected line total Rs 1000 for two units at 500")
	}
	if strings.Count(s, "Box Logo Tee") != 2 { // img alt + item cell
		t.Fatal("expected a single merged cart line")
	}

	ship := url.Values{
		"csrf":   {tok},
		"name":   {"Ali Raza"},
		"phone":  {"03001234567"},
		"street": {"12 Main Road"},
		"city":   {"Lahore"},
		"postal": {"54000"},
	}
	respOrder, err := app.Test(formPost("/checkout", ship.Encode(), csrfCookie, sidCookie))
	if err != nil {
		t.Fatal(err)
	}
	if respOrder.StatusCode != http.StatusSeeOther {
		body, _ := io.ReadAll(respOrder.Body)
		t.Fatalf("checkout expected 303, got %d body=%s", respOrder.StatusCode, body)
	}
	loc := respOrder.Header.Get("Location")
	if !strings.HasPrefix(loc, "https://wa.me/923001234567?text=") {
		t.Fatalf("unexpected dispatch link %q", loc)
	}

	// Cart is cleared once the order is handed off
	reqAfter := httptest.NewRequest("GET", "/cart", nil)
	reqAfter.AddCookie(sidCookie)
	respAfter, err := app.Test(reqAfter)
	if err != nil {
		t.Fatal(err)
	}
	after, _ := io.ReadAll(respAfter.Body)
	if !strings.Contains(string(after), "Your cart is empty") {
		t.Fatal("cart not cleared after checkout")
	}
}

func TestCartRejectsBadKey(t *testing.T) {
	app := newTestApp(t)
	tok := mintCSRF(t, app)
	csrfCookie := &http.Cookie{Name: "csrf_", Value: tok}

	bad := url.Values{"csrf": {tok}, "productId": {"abc"}, "size": {"M"}}
	resp, err := app.Test(formPost("/cart", bad.Encode(), csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad product id expected 400, got %d", resp.StatusCode)
	}
}

func TestCheckoutValidation(t *testing.T) {
	app := newTestApp(t)
	tok := mintCSRF(t, app)
	csrfCookie := &http.Cookie{Name: "csrf_", Value: tok}

	add := url.Values{"csrf": {tok}, "productId": {"2"}, "size": {"S"}}
	respAdd, err := app.Test(formPost("/cart", add.Encode(), csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	sidCookie := &http.Cookie{Name: "sid", Value: cookieValue(respAdd, "sid")}

	ship := url.Values{
		"csrf":   {tok},
		"name":   {"Ali Raza"},
		"phone":  {"not-a-phone"},
		"street": {"12 Main Road"},
		"city":   {"Lahore"},
		"postal": {"54000"},
	}
	resp, err := app.Test(formPost("/checkout", ship.Encode(), csrfCookie, sidCookie))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad phone expected 400, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "phone") {
		t.Fatal("expected the failing field named in the page")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	app := newTestApp(t)
	tok := mintCSRF(t, app)
	csrfCookie := &http.Cookie{Name: "csrf_", Value: tok}

	ship := url.Values{
		"csrf":   {tok},
		"name":   {"Ali Raza"},
		"phone":  {"03001234567"},
		"street": {"12 Main Road"},
		"city":   {"Lahore"},
		"postal": {"54000"},
	}
	resp, err := app.Test(formPost("/checkout", ship.Encode(), csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/cart" {
		t.Fatalf("empty cart checkout expected redirect to /cart, got %d %q",
			resp.StatusCode, resp.Header.Get("Location"))
	}

	// The form page itself also bounces back
	respForm, err := app.Test(httptest.NewRequest("GET", "/checkout", nil))
	if err != nil {
		t.Fatal(err)
	}
	if respForm.StatusCode != http.StatusFound {
		t.Fatalf("empty cart form expected redirect, got %d", respForm.StatusCode)
	}
}

func TestCartPostWithoutToken(t *testing.T) {
	app := newTestApp(t)

	add := url.Values{"productId": {"1"}, "size": {"M"}}
	resp, err := app.Test(formPost("/cart", add.Encode()))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("missing csrf expected 403, got %d", resp.StatusCode)
	}
}
