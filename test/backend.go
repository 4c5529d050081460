package test

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// StubBackend is an in-memory fake of the hosted backend. It implements
// just enough of the record API, the completion endpoint and the storage
// endpoint for gateway tests: eq. filters, representation-returning writes
// and canned completion answers.
type StubBackend struct {
	mu     sync.Mutex
	tables map[string][]map[string]any

	// AIAnswer is returned as the completion content.
	AIAnswer string

	// FailWith forces every request to fail with the given status.
	FailWith int
}

// NewStubBackend creates an empty stub.
func NewStubBackend() *StubBackend {
	return &StubBackend{
		tables:   map[string][]map[string]any{},
		AIAnswer: "{}",
	}
}

// Seed inserts rows into a table, assigning IDs where missing.
func (s *StubBackend) Seed(table string, rows ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		if _, ok := row["id"]; !ok {
			row["id"] = uuid.NewString()
		}
		s.tables[table] = append(s.tables[table], row)
	}
}

// Rows returns a copy of a table's rows.
func (s *StubBackend) Rows(table string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]map[string]any, len(s.tables[table]))
	copy(rows, s.tables[table])
	return rows
}

func (s *StubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.FailWith != 0 {
		w.WriteHeader(s.FailWith)
		return
	}

	switch {
	case strings.HasPrefix(r.URL.Path, "/rest/v1/"):
		s.records(w, r)
	case r.URL.Path == "/ai/v1/chat/completions":
		s.complete(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/storage/"):
		w.WriteHeader(http.StatusCreated)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *StubBackend) records(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		if table == "" {
			w.Write([]byte(`[]`))
			return
		}

		writeJSON(w, s.match(table, r))
	case http.MethodPost:
		var rows []map[string]any
		body, _ := readRows(r)
		for _, row := range body {
			if _, ok := row["id"]; !ok {
				row["id"] = uuid.NewString()
			}
			s.tables[table] = append(s.tables[table], row)
			rows = append(rows, row)
		}

		w.WriteHeader(http.StatusCreated)
		writeJSON(w, rows)
	case http.MethodPatch:
		var patch map[string]any
		json.NewDecoder(r.Body).Decode(&patch)

		matched := s.match(table, r)
		for _, row := range matched {
			for k, v := range patch {
				row[k] = v
			}
		}

		writeJSON(w, matched)
	case http.MethodDelete:
		matched := s.match(table, r)
		kept := make([]map[string]any, 0, len(s.tables[table]))
		for _, row := range s.tables[table] {
			if !contains(matched, row) {
				kept = append(kept, row)
			}
		}
		s.tables[table] = kept

		writeJSON(w, matched)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// match returns the rows of a table matching the eq. filters of a request.
func (s *StubBackend) match(table string, r *http.Request) []map[string]any {
	matched := []map[string]any{}

	for _, row := range s.tables[table] {
		ok := true
		for key, values := range r.URL.Query() {
			if key == "order" {
				continue
			}

			for _, value := range values {
				want, isEq := strings.CutPrefix(value, "eq.")
				if !isEq {
					// Range filters (gte./lte.) are not evaluated, the
					// stub returns a superset and the handler under
					// test does the math.
					continue
				}

				have, present := row[key]
				if !present || toString(have) != want {
					ok = false
				}
			}
		}

		if ok {
			matched = append(matched, row)
		}
	}

	return matched
}

func (s *StubBackend) complete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": s.AIAnswer}},
		},
	})
}

func readRows(r *http.Request) ([]map[string]any, error) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err == nil {
		return rows, nil
	}

	var row map[string]any
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, err
	}

	return []map[string]any{row}, nil
}

func writeJSON(w http.ResponseWriter, data any) {
	_ = json.NewEncoder(w).Encode(data)
}

func toString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	default:
		encoded, _ := json.Marshal(v)
		return string(encoded)
	}
}

func contains(rows []map[string]any, row map[string]any) bool {
	for _, r := range rows {
		if r["id"] == row["id"] {
			return true
		}
	}

	return false
}
