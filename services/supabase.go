package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// SupabaseError carries a PostgREST failure so handlers can forward the
// downstream status code and body verbatim.
type SupabaseError struct {
	Status int
	Body   string
}

func (e *SupabaseError) Error() string {
	return fmt.Sprintf("supabase: status %d: %s", e.Status, e.Body)
}

// Supabase issues PostgREST requests against a single project. Queries
// authenticate as the caller via Auth, or as the service via FromService;
// the apikey header is always set.
type Supabase struct {
	baseURL    string
	anonKey    string
	serviceKey string
	client     *http.Client
}

func NewSupabase(baseURL, anonKey, serviceKey string) *Supabase {
	return &Supabase{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		serviceKey: serviceKey,
		client:     &http.Client{},
	}
}

// From starts a query against a table with the anon apikey. Call Auth to
// attach the caller's bearer token.
func (s *Supabase) From(table string) *SupabaseQuery {
	return &SupabaseQuery{sb: s, table: table, apiKey: s.anonKey, params: url.Values{}}
}

// FromService starts a query with the elevated service credential. The
// service key doubles as the bearer token, bypassing row-level security.
func (s *Supabase) FromService(table string) *SupabaseQuery {
	return &SupabaseQuery{sb: s, table: table, apiKey: s.serviceKey, bearer: s.serviceKey, params: url.Values{}}
}

// SupabaseQuery accumulates filters and executes one PostgREST request.
// Filter values are carried through url.Values, so they reach the wire
// escaped no matter what the caller passes.
type SupabaseQuery struct {
	sb     *Supabase
	table  string
	apiKey string
	bearer string
	params url.Values
	prefer string
}

func (q *SupabaseQuery) Auth(token string) *SupabaseQuery {
	q.bearer = token
	return q
}

func (q *SupabaseQuery) Select(columns string) *SupabaseQuery {
	q.params.Set("select", columns)
	return q
}

func (q *SupabaseQuery) Eq(column, value string) *SupabaseQuery {
	q.params.Add(column, "eq."+value)
	return q
}

func (q *SupabaseQuery) Gte(column, value string) *SupabaseQuery {
	q.params.Add(column, "gte."+value)
	return q
}

func (q *SupabaseQuery) Lte(column, value string) *SupabaseQuery {
	q.params.Add(column, "lte."+value)
	return q
}

func (q *SupabaseQuery) OrderAsc(column string) *SupabaseQuery {
	q.params.Add("order", column+".asc")
	return q
}

// Returning asks PostgREST to echo written rows back.
func (q *SupabaseQuery) Returning() *SupabaseQuery {
	q.prefer = "return=representation"
	return q
}

func (q *SupabaseQuery) Get(ctx context.Context, out interface{}) error {
	return q.do(ctx, http.MethodGet, nil, out)
}

func (q *SupabaseQuery) Insert(ctx context.Context, payload, out interface{}) error {
	return q.do(ctx, http.MethodPost, payload, out)
}

func (q *SupabaseQuery) Patch(ctx context.Context, payload interface{}) error {
	return q.do(ctx, http.MethodPatch, payload, nil)
}

func (q *SupabaseQuery) Delete(ctx context.Context) error {
	return q.do(ctx, http.MethodDelete, nil, nil)
}

func (q *SupabaseQuery) do(ctx context.Context, method string, payload, out interface{}) error {
	endpoint := q.sb.baseURL + "/rest/v1/" + q.table
	if len(q.params) > 0 {
		endpoint += "?" + q.params.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", q.apiKey)
	if q.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+q.bearer)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if q.prefer != "" {
		req.Header.Set("Prefer", q.prefer)
	}

	resp, err := q.sb.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SupabaseError{Status: resp.StatusCode, Body: string(raw)}
	}
	if out != nil && len(raw) > 0 {
		return json.Unmarshal(raw, out)
	}
	return nil
}
