package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fairsplit/fairsplit/internal/expense"
	"github.com/fairsplit/fairsplit/internal/expense/split"
	"github.com/fairsplit/fairsplit/internal/group"
	"github.com/fairsplit/fairsplit/internal/settlement"
	"github.com/fairsplit/fairsplit/pkg/response"
)

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

type envelope struct {
	Success bool               `json:"success"`
	Data    json.RawMessage    `json:"data"`
	Error   *response.APIError `json:"error"`
}

func newTestRouter() http.Handler {
	groupRepo := group.NewMemoryRepository()
	expenseRepo := expense.NewMemoryRepository()

	groupService := group.NewService(groupRepo, expenseRepo, group.DefaultLimits)
	expenseService := expense.NewService(expenseRepo, groupService, split.NewSplitStrategyFactory())
	settlementService := settlement.NewService(expenseService)

	return NewRouter(Handlers{
		Groups:      group.NewHandler(groupService),
		Expenses:    expense.NewHandler(expenseService),
		Settlements: settlement.NewHandler(settlementService),
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s response: %v\n%s", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func createGroup(t *testing.T, h http.Handler, body string) group.GroupResponse {
	t.Helper()
	rec, env := do(t, h, http.MethodPost, "/api/groups", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var g group.GroupResponse
	if err := json.Unmarshal(env.Data, &g); err != nil {
		t.Fatalf("decode group: %v", err)
	}
	return g
}

func TestHealth(t *testing.T) {
	rec, _ := do(t, newTestRouter(), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter()
	do(t, h, http.MethodGet, "/health", "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fairsplit_http_requests_total") {
		t.Error("/metrics does not expose fairsplit_http_requests_total")
	}
}

func TestCreateGroupValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:       "missing name",
			body:       `{"participants":["Alice"]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
			wantField:  "groupName",
		},
		{
			name:       "empty participants",
			body:       `{"groupName":"Trip","participants":[]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
			wantField:  "participants",
		},
		{
			name:       "unknown field",
			body:       `{"groupName":"Trip","participants":["A"],"owner":"x"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "duplicate participant",
			body:       `{"groupName":"Trip","participants":["A","A"]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, newTestRouter(), http.MethodPost, "/api/groups", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Fatalf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
			if tt.wantField == "" {
				return
			}
			for _, f := range env.Error.Fields {
				if f.Field == tt.wantField {
					return
				}
			}
			t.Errorf("fields %+v do not mention %s", env.Error.Fields, tt.wantField)
		})
	}
}

func TestGroupLifecycle(t *testing.T) {
	h := newTestRouter()
	g := createGroup(t, h, `{"groupName":"Apartment","participants":["Henry","Iris"]}`)

	if g.ParticipantCount != 2 || !g.TotalExpense.IsZero() {
		t.Errorf("created group = %+v", g)
	}

	rec, _ := do(t, h, http.MethodPost, "/api/groups/"+g.ID+"/expenses",
		`{"description":"Rent","amount":2000,"paidBy":"Henry"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add expense status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec, env := do(t, h, http.MethodGet, "/api/groups/"+g.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get group status = %d", rec.Code)
	}
	var got group.GroupResponse
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode group: %v", err)
	}
	if !got.TotalExpense.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("totalExpense = %s, want 2000", got.TotalExpense)
	}

	rec, env = do(t, h, http.MethodGet, "/api/groups", "")
	var all []group.GroupResponse
	if err := json.Unmarshal(env.Data, &all); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("list groups status = %d, err = %v", rec.Code, err)
	}
	if len(all) != 1 {
		t.Errorf("listed %d groups, want 1", len(all))
	}

	rec, _ = do(t, h, http.MethodDelete, "/api/groups/"+g.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec, _ = do(t, h, http.MethodGet, "/api/groups/"+g.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestExpenseEndpoints(t *testing.T) {
	h := newTestRouter()
	g := createGroup(t, h, `{"groupName":"Trip","participants":["Alice","Bob","Charlie"]}`)
	path := "/api/groups/" + g.ID + "/expenses"

	rec, env := do(t, h, http.MethodPost, path, `{"description":"Dinner","amount":100,"paidBy":"Alice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created expense.ExpenseResponse
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode expense: %v", err)
	}
	if created.SplitType != split.SplitTypeEqual {
		t.Errorf("splitType = %s, want EQUAL", created.SplitType)
	}
	if !created.SplitDetails["Charlie"].Equal(decimal.RequireFromString("33.34")) {
		t.Errorf("Charlie share = %s, want 33.34", created.SplitDetails["Charlie"])
	}

	rejects := []struct {
		body   string
		status int
	}{
		{`{"description":"x","amount":10,"paidBy":"Mallory"}`, http.StatusBadRequest},
		{`{"description":"x","amount":-10,"paidBy":"Alice"}`, http.StatusBadRequest},
		{`{"description":"x","amount":10,"paidBy":"Alice","date":"2999-01-01"}`, http.StatusBadRequest},
		{`{"description":"x","amount":10,"paidBy":"Alice","date":"01/01/2024"}`, http.StatusBadRequest},
		{`{"amount":10,"paidBy":"Alice"}`, http.StatusBadRequest},
	}
	for _, r := range rejects {
		if rec, _ := do(t, h, http.MethodPost, path, r.body); rec.Code != r.status {
			t.Errorf("POST %s status = %d, want %d", r.body, rec.Code, r.status)
		}
	}

	rec, env = do(t, h, http.MethodGet, path, "")
	var list []expense.ExpenseResponse
	if err := json.Unmarshal(env.Data, &list); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, err = %v", rec.Code, err)
	}
	if len(list) != 1 {
		t.Errorf("listed %d expenses, want 1", len(list))
	}

	if rec, _ := do(t, h, http.MethodGet, "/api/groups/missing/expenses", ""); rec.Code != http.StatusNotFound {
		t.Errorf("list for missing group status = %d, want 404", rec.Code)
	}
}

func TestSettlementsEndpoint(t *testing.T) {
	h := newTestRouter()
	g := createGroup(t, h, `{"groupName":"Apartment","participants":["Henry","Iris"]}`)
	path := "/api/groups/" + g.ID

	rec, env := do(t, h, http.MethodGet, path+"/settlements", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("empty settlements status = %d", rec.Code)
	}
	if !strings.Contains(string(env.Data), `"settlements":[]`) {
		t.Errorf("empty group settlements = %s, want an empty array", env.Data)
	}

	do(t, h, http.MethodPost, path+"/expenses", `{"description":"Rent","amount":2000,"paidBy":"Henry"}`)

	rec, env = do(t, h, http.MethodGet, path+"/settlements", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("settlements status = %d", rec.Code)
	}
	var report settlement.Report
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Settlements) != 1 {
		t.Fatalf("settlements = %+v, want one", report.Settlements)
	}
	s := report.Settlements[0]
	if s.From != "Iris" || s.To != "Henry" || !s.Amount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("settlement = %+v, want Iris -> Henry 1000", s)
	}
	if !report.MemberBalances["Iris"].NetBalance.Equal(decimal.NewFromInt(-1000)) {
		t.Errorf("Iris net = %s, want -1000", report.MemberBalances["Iris"].NetBalance)
	}
	if !strings.Contains(string(env.Data), `"amount":1000`) {
		t.Errorf("amount should be a JSON number: %s", env.Data)
	}

	if rec, _ := do(t, h, http.MethodGet, "/api/groups/missing/settlements", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing group status = %d, want 404", rec.Code)
	}
}
