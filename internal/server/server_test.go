package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-uigen/pkg/orchestrator"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	orc := orchestrator.New(orchestrator.WithLogger(zerolog.Nop()))
	return New(orc, zerolog.Nop(), Config{})
}

func createSession(t *testing.T, srv *Server) string {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("create session returned empty id")
	}
	return resp.SessionID
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("body = %q, want ok status", rec.Body.String())
	}
}

func TestCatalogIsMarkdown(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Fatalf("content type = %q, want markdown", ct)
	}
	if !strings.Contains(rec.Body.String(), "# Component Catalog") {
		t.Fatal("catalog body missing heading")
	}
}

func TestRunPlanAndPreview(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	id := createSession(t, srv)

	plan := `{
		"modificationType": "new",
		"layout": "stack",
		"theme": "light",
		"components": [
			{"type": "Heading", "props": {"level": 2}, "children": ["Revenue"]}
		]
	}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+id+"/plans", bytes.NewBufferString(plan))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("run plan status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp planResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode plan response: %v", err)
	}
	if !resp.Valid {
		t.Fatalf("plan reported invalid: %v", resp.Errors)
	}
	if !strings.Contains(resp.Code, "Heading") {
		t.Fatal("generated code missing Heading component")
	}
	if len(resp.Document) == 0 {
		t.Fatal("response missing document")
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+id+"/preview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("preview content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Revenue") {
		t.Fatal("preview missing heading text")
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+id+"/code", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("code status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "export default") {
		t.Fatal("code endpoint missing module body")
	}
}

func TestRunPlanInvalidComponent(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	id := createSession(t, srv)

	plan := `{"modificationType": "new", "components": [{"type": "Widget9000"}]}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+id+"/plans", bytes.NewBufferString(plan)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var resp planResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Valid {
		t.Fatal("invalid plan reported valid")
	}
	if len(resp.Errors) == 0 {
		t.Fatal("invalid plan carried no errors")
	}

	// the session must not pick up the rejected document
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+id+"/preview", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("preview after invalid plan status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRunPlanUnknownSession(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/nope/plans", strings.NewReader("{}")))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestValidateEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	doc := `{"layout": "stack", "theme": "light", "components": [{"type": "Text", "children": ["hello"]}]}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/validate", strings.NewReader(doc)))
	if rec.Code != http.StatusOK {
		t.Fatalf("valid doc status = %d, body = %s", rec.Code, rec.Body.String())
	}

	bad := `{"components": [{"type": "Blink"}]}`
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/validate", strings.NewReader(bad)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid doc status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rec.Body.String(), "Blink") {
		t.Fatal("validation error should name the unknown component")
	}
}

func TestRenderEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	source := `export default function App() {
  return (
    <Card title="Status">
      <Text>All good</Text>
    </Card>
  );
}`
	body, _ := json.Marshal(renderRequest{Source: source})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/render", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.HTML, "All good") {
		t.Fatal("rendered HTML missing card text")
	}
}

func TestRenderEndpointBlocksEval(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	body, _ := json.Marshal(renderRequest{Source: `export default function App() { eval("x"); return (<Text text="hi" />); }`})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/render", bytes.NewReader(body)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Stage != "analyze" {
		t.Fatalf("stage = %q, want analyze", resp.Stage)
	}
	if len(resp.Issues) == 0 {
		t.Fatal("blocked render carried no issues")
	}
}
