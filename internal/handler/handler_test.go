package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/ressourcerie/internal/config"
	"github.com/deppfellow/ressourcerie/internal/domain"
	"github.com/deppfellow/ressourcerie/internal/errs"
	"github.com/deppfellow/ressourcerie/internal/handler"
	"github.com/deppfellow/ressourcerie/internal/repository"
	"github.com/deppfellow/ressourcerie/internal/router"
	"github.com/deppfellow/ressourcerie/internal/server"
	"github.com/deppfellow/ressourcerie/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			CORSAllowedOrigins: []string{"*"},
		},
		Storage:       config.StorageConfig{Driver: config.StorageDriverMemory},
		Observability: config.DefaultObservabilityConfig(),
	}
	logger := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &logger}

	repos, err := repository.NewRepositories(s)
	if err != nil {
		t.Fatalf("repositories: %v", err)
	}
	services, err := service.NewServices(s, repos)
	if err != nil {
		t.Fatalf("services: %v", err)
	}
	return router.NewRouter(s, handler.NewHandlers(s, services))
}

type client struct {
	t      *testing.T
	router *echo.Echo
}

func (c client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

// call performs the request, checks the status and decodes the body into out.
func (c client) call(method, path string, body any, wantStatus int, out any) {
	c.t.Helper()

	rec := c.do(method, path, body)
	if rec.Code != wantStatus {
		c.t.Fatalf("%s %s: expected status %d, got %d: %s", method, path, wantStatus, rec.Code, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			c.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
}

func (c client) fail(method, path string, body any, wantStatus int, wantCode string) errs.HTTPError {
	c.t.Helper()

	var httpErr errs.HTTPError
	c.call(method, path, body, wantStatus, &httpErr)
	if httpErr.Code != wantCode {
		c.t.Fatalf("%s %s: expected code %s, got %s (%s)", method, path, wantCode, httpErr.Code, httpErr.Message)
	}
	return httpErr
}

type world struct {
	owner    domain.Association
	other    domain.Association
	rep      domain.Member
	m2       domain.Member
	category domain.Category
	offer    domain.Offer
}

func seed(c client) world {
	var w world
	c.call(http.MethodPost, "/api/v1/associations", map[string]any{"name": "A"}, http.StatusCreated, &w.owner)
	c.call(http.MethodPost, "/api/v1/associations", map[string]any{"name": "B"}, http.StatusCreated, &w.other)
	c.call(http.MethodPost, fmt.Sprintf("/api/v1/associations/%d/members", w.owner.ID),
		map[string]any{"name": "Rep", "email": "rep@example.org"}, http.StatusCreated, &w.rep)
	c.call(http.MethodPost, fmt.Sprintf("/api/v1/associations/%d/members", w.other.ID),
		map[string]any{"name": "M2"}, http.StatusCreated, &w.m2)
	c.call(http.MethodPost, "/api/v1/categories", map[string]any{"name": "Furniture"}, http.StatusCreated, &w.category)
	c.call(http.MethodPost, "/api/v1/offers", map[string]any{
		"contact_member_id": w.rep.ID,
		"name":              "Table",
		"price":             "50",
		"category_ids":      []int64{w.category.ID},
	}, http.StatusCreated, &w.offer)
	return w
}

func TestExchangeOverHTTP(t *testing.T) {
	c := client{t: t, router: newTestRouter(t)}
	w := seed(c)

	if w.offer.Status != domain.OfferStatusOpen || w.offer.AssociationID != w.owner.ID {
		t.Fatalf("unexpected offer %+v", w.offer)
	}
	if !w.offer.Price.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected price 50, got %s", w.offer.Price)
	}

	var demand domain.Demand
	c.call(http.MethodPost, "/api/v1/demands", map[string]any{"offer_id": w.offer.ID, "member_id": w.m2.ID}, http.StatusCreated, &demand)

	var rank handler.RankResponse
	c.call(http.MethodGet, fmt.Sprintf("/api/v1/demands/%d/rank", demand.ID), nil, http.StatusOK, &rank)
	if rank.Rank == nil || *rank.Rank != 1 {
		t.Fatalf("expected rank 1, got %v", rank.Rank)
	}

	var validated handler.ValidateOfferResponse
	c.call(http.MethodPost, fmt.Sprintf("/api/v1/offers/%d/validate", w.offer.ID),
		map[string]any{"contact_member_id": w.rep.ID}, http.StatusOK, &validated)
	if validated.Approved == nil || validated.Approved.ID != demand.ID || validated.Approved.Status != domain.DemandStatusApproved {
		t.Fatalf("expected demand %d approved, got %+v", demand.ID, validated.Approved)
	}

	var closed domain.Offer
	c.call(http.MethodGet, fmt.Sprintf("/api/v1/offers/%d", w.offer.ID), nil, http.StatusOK, &closed)
	if closed.Status != domain.OfferStatusClosed || closed.ClosedAt == nil {
		t.Fatalf("expected closed offer, got %+v", closed)
	}

	var archived domain.Offer
	c.call(http.MethodPost, fmt.Sprintf("/api/v1/offers/%d/archive", w.offer.ID), nil, http.StatusOK, &archived)
	if archived.Status != domain.OfferStatusArchived {
		t.Fatalf("expected archived offer, got %s", archived.Status)
	}

	var wins map[string]int
	c.call(http.MethodGet, "/api/v1/stats/wins", nil, http.StatusOK, &wins)
	if wins[fmt.Sprint(w.other.ID)] != 1 || wins[fmt.Sprint(w.owner.ID)] != 0 {
		t.Fatalf("unexpected wins %v", wins)
	}

	var counts map[string]int
	c.call(http.MethodGet, "/api/v1/stats/offers", nil, http.StatusOK, &counts)
	if counts[fmt.Sprint(w.owner.ID)] != 1 || counts[fmt.Sprint(w.other.ID)] != 0 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestErrorMapping(t *testing.T) {
	c := client{t: t, router: newTestRouter(t)}
	w := seed(c)

	t.Run("blank name is an invalid argument", func(t *testing.T) {
		c := client{t: t, router: c.router}
		c.fail(http.MethodPost, "/api/v1/associations", map[string]any{"name": "   "}, http.StatusBadRequest, "INVALID_ARGUMENT")
	})

	t.Run("missing name fails request validation", func(t *testing.T) {
		c := client{t: t, router: c.router}
		httpErr := c.fail(http.MethodPost, "/api/v1/categories", map[string]any{}, http.StatusBadRequest, "BAD_REQUEST")
		if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "name" {
			t.Fatalf("expected name field error, got %+v", httpErr.Errors)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		c := client{t: t, router: c.router}
		c.fail(http.MethodPost, fmt.Sprintf("/api/v1/associations/%d/members", w.owner.ID),
			map[string]any{"name": "X", "email": "not-an-address"}, http.StatusBadRequest, "BAD_REQUEST")
	})

	t.Run("non positive id", func(t *testing.T) {
		c := client{t: t, router: c.router}
		c.fail(http.MethodPost, "/api/v1/associations/-1/members", map[string]any{"name": "X"}, http.StatusBadRequest, "INVALID_ARGUMENT")
	})

	t.Run("unknown offer", func(t *testing.T) {
		c := client{t: t, router: c.router}
		c.fail(http.MethodGet, "/api/v1/offers/999", nil, http.StatusNotFound, "NOT_FOUND")
	})

	t.Run("missing categories are listed", func(t *testing.T) {
		c := client{t: t, router: c.router}
		httpErr := c.fail(http.MethodPost, "/api/v1/offers", map[string]any{
			"contact_member_id": w.rep.ID,
			"name":              "Chair",
			"price":             10,
			"category_ids":      []int64{w.category.ID, 77},
		}, http.StatusNotFound, "NOT_FOUND")
		if len(httpErr.MissingIDs) != 1 || httpErr.MissingIDs[0] != 77 {
			t.Fatalf("expected missing id 77, got %v", httpErr.MissingIDs)
		}
	})

	t.Run("other association cannot validate", func(t *testing.T) {
		c := client{t: t, router: c.router}
		c.fail(http.MethodPost, fmt.Sprintf("/api/v1/offers/%d/validate", w.offer.ID),
			map[string]any{"contact_member_id": w.m2.ID}, http.StatusConflict, "INVALID_STATE")
	})

	t.Run("duplicate pending demand", func(t *testing.T) {
		c := client{t: t, router: c.router}
		body := map[string]any{"offer_id": w.offer.ID, "member_id": w.m2.ID}
		c.call(http.MethodPost, "/api/v1/demands", body, http.StatusCreated, nil)
		c.fail(http.MethodPost, "/api/v1/demands", body, http.StatusConflict, "INVALID_STATE")
	})

	t.Run("malformed category filter", func(t *testing.T) {
		c := client{t: t, router: c.router}
		c.fail(http.MethodGet, "/api/v1/offers?category_id=abc", nil, http.StatusBadRequest, "BAD_REQUEST")
	})

	t.Run("malformed path id", func(t *testing.T) {
		c := client{t: t, router: c.router}
		c.fail(http.MethodGet, "/api/v1/demands/abc", nil, http.StatusBadRequest, "BAD_REQUEST")
	})

	t.Run("unknown route", func(t *testing.T) {
		c := client{t: t, router: c.router}
		c.fail(http.MethodGet, "/api/v1/nowhere", nil, http.StatusNotFound, "NOT_FOUND")
	})
}

func TestOffersAndDemandsReads(t *testing.T) {
	c := client{t: t, router: newTestRouter(t)}
	w := seed(c)

	var other domain.Category
	c.call(http.MethodPost, "/api/v1/categories", map[string]any{"name": "Books"}, http.StatusCreated, &other)

	rec := c.do(http.MethodGet, fmt.Sprintf("/api/v1/offers?category_id=%d", other.ID), nil)
	if rec.Code != http.StatusOK || string(bytes.TrimSpace(rec.Body.Bytes())) != "[]" {
		t.Fatalf("expected an empty list for Books, got %d %s", rec.Code, rec.Body.String())
	}

	var byCategory []domain.Offer
	c.call(http.MethodGet, fmt.Sprintf("/api/v1/offers?category_id=%d", w.category.ID), nil, http.StatusOK, &byCategory)
	if len(byCategory) != 1 || byCategory[0].ID != w.offer.ID {
		t.Fatalf("expected the table, got %+v", byCategory)
	}

	var categories []domain.Category
	c.call(http.MethodGet, "/api/v1/categories", nil, http.StatusOK, &categories)
	if len(categories) != 2 || categories[0].Name != "Furniture" {
		t.Fatalf("unexpected categories %+v", categories)
	}

	var demand domain.Demand
	c.call(http.MethodPost, "/api/v1/demands", map[string]any{"offer_id": w.offer.ID, "member_id": w.m2.ID}, http.StatusCreated, &demand)

	var cancelled domain.Demand
	c.call(http.MethodPost, fmt.Sprintf("/api/v1/demands/%d/cancel", demand.ID), nil, http.StatusOK, &cancelled)
	if cancelled.Status != domain.DemandStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/demands/%d/rank", demand.ID), nil)
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte(`"rank":null`)) {
		t.Fatalf("expected null rank, got %d %s", rec.Code, rec.Body.String())
	}

	var demands []domain.Demand
	c.call(http.MethodGet, fmt.Sprintf("/api/v1/offers/%d/demands", w.offer.ID), nil, http.StatusOK, &demands)
	if len(demands) != 1 || demands[0].ID != demand.ID {
		t.Fatalf("unexpected demands %+v", demands)
	}

	var association domain.Association
	c.call(http.MethodPut, fmt.Sprintf("/api/v1/associations/%d/representer", w.owner.ID),
		map[string]any{"member_id": w.rep.ID}, http.StatusOK, &association)
	if association.RepresenterID == nil || *association.RepresenterID != w.rep.ID {
		t.Fatalf("expected representer %d, got %v", w.rep.ID, association.RepresenterID)
	}

	var member domain.Member
	c.call(http.MethodGet, fmt.Sprintf("/api/v1/members/%d", w.rep.ID), nil, http.StatusOK, &member)
	if member.Email != "rep@example.org" {
		t.Fatalf("unexpected member %+v", member)
	}
}

func TestCreateOfferSkipsNullCategoryIDs(t *testing.T) {
	c := client{t: t, router: newTestRouter(t)}
	w := seed(c)

	var offer domain.Offer
	c.call(http.MethodPost, "/api/v1/offers", map[string]any{
		"contact_member_id": w.rep.ID,
		"name":              "Chair",
		"price":             "12",
		"category_ids":      []any{nil, w.category.ID},
	}, http.StatusCreated, &offer)
	if len(offer.CategoryIDs) != 1 || offer.CategoryIDs[0] != w.category.ID {
		t.Fatalf("expected categories [%d], got %v", w.category.ID, offer.CategoryIDs)
	}

	rec := c.do(http.MethodGet, fmt.Sprintf("/api/v1/offers/%d/demands", offer.ID), nil)
	if rec.Code != http.StatusOK || string(bytes.TrimSpace(rec.Body.Bytes())) != "[]" {
		t.Fatalf("expected an empty demand list, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestStatusAndRequestID(t *testing.T) {
	c := client{t: t, router: newTestRouter(t)}

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}

	var body struct {
		Status  string `json:"status"`
		Storage string `json:"storage"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "healthy" || body.Storage != config.StorageDriverMemory {
		t.Fatalf("unexpected status body %+v", body)
	}
}
