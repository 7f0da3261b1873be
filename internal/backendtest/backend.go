// Package backendtest runs an in-memory stand-in for the REST backend, for tests.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// Password accepted for every registered user.
const Password = "senha123"

// Backend is an httptest server speaking the backend's REST dialect.
type Backend struct {
	*httptest.Server

	mu        sync.Mutex
	users     map[string]bool   // username -> exists
	tokens    map[string]string // token -> username
	nextID    int64
	reminders map[int64]map[string]any
	diary     map[int64]map[string]any
	contacts  map[int64]map[string]any
	chat      []map[string]string
	requests  []string
}

// New starts a backend with one user. Close it with b.Close.
func New(username string) *Backend {
	b := &Backend{
		users:     map[string]bool{username: true},
		tokens:    map[string]string{},
		reminders: map[int64]map[string]any{},
		diary:     map[int64]map[string]any{},
		contacts:  map[int64]map[string]any{},
	}

	r := mux.NewRouter()
	r.Use(b.record)
	r.HandleFunc("/api/auth/login/", b.login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/register/", b.register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout/", b.guarded(b.logout)).Methods(http.MethodPost)

	for name, store := range map[string]map[int64]map[string]any{
		"lembretes": b.reminders,
		"diario":    b.diary,
		"contatos":  b.contacts,
	} {
		r.HandleFunc("/api/"+name+"/", b.guarded(b.list(store))).Methods(http.MethodGet)
		r.HandleFunc("/api/"+name+"/", b.guarded(b.create(store))).Methods(http.MethodPost)
		r.HandleFunc("/api/"+name+"/{id:[0-9]+}/", b.guarded(b.get(store))).Methods(http.MethodGet)
		r.HandleFunc("/api/"+name+"/{id:[0-9]+}/", b.guarded(b.patch(store))).Methods(http.MethodPatch)
		r.HandleFunc("/api/"+name+"/{id:[0-9]+}/", b.guarded(b.remove(store))).Methods(http.MethodDelete)
	}
	r.HandleFunc("/api/chat/", b.guarded(b.history)).Methods(http.MethodGet)
	r.HandleFunc("/api/chat/", b.guarded(b.ask)).Methods(http.MethodPost)

	b.Server = httptest.NewServer(r)
	return b
}

// Requests returns "METHOD path" for every request served so far.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// Reminders returns the stored reminder payloads ordered by id.
func (b *Backend) Reminders() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sorted(b.reminders)
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *Backend) guarded(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Token ")
		b.mu.Lock()
		_, ok := b.tokens[token]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token inválido."})
			return
		}
		h(w, r)
	}
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var in struct{ Username, Password string }
	_ = json.NewDecoder(r.Body).Decode(&in)
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.users[in.Username] || in.Password != Password {
		writeJSON(w, http.StatusBadRequest, map[string]any{"non_field_errors": []string{"Credenciais inválidas."}})
		return
	}
	token := "tok-" + in.Username
	b.tokens[token] = in.Username
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user_id": 1, "email": in.Username + "@example.com", "username": in.Username})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var in map[string]string
	_ = json.NewDecoder(r.Body).Decode(&in)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.users[in["username"]] {
		writeJSON(w, http.StatusBadRequest, map[string]any{"username": []string{"Usuário já existe."}})
		return
	}
	b.users[in["username"]] = true
	writeJSON(w, http.StatusCreated, map[string]any{"user_id": len(b.users), "email": in["email"]})
}

func (b *Backend) logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Token ")
	b.mu.Lock()
	delete(b.tokens, token)
	b.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody reads a JSON or multipart body into a flat map. File parts keep their name.
func decodeBody(r *http.Request) map[string]any {
	out := map[string]any{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return out
		}
		for k, v := range r.MultipartForm.Value {
			out[k] = v[0]
		}
		if v, ok := out["is_emergencia"].(string); ok {
			out["is_emergencia"] = v == "true"
		}
		for k, f := range r.MultipartForm.File {
			out[k] = "/media/" + f[0].Filename
		}
		return out
	}
	_ = json.NewDecoder(r.Body).Decode(&out)
	return out
}

func sorted(store map[int64]map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(store))
	for _, v := range store {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i]["id"].(int64) < out[j]["id"].(int64) })
	return out
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (b *Backend) list(store map[int64]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, sorted(store))
	}
}

func (b *Backend) create(store map[int64]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := decodeBody(r)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.nextID++
		in["id"] = b.nextID
		if _, ok := in["concluido"]; !ok && r.URL.Path == "/api/lembretes/" {
			in["concluido"] = false
		}
		if r.URL.Path == "/api/diario/" {
			in["data_criacao"] = time.Now().Format(time.RFC3339)
		}
		store[b.nextID] = in
		writeJSON(w, http.StatusCreated, in)
	}
}

func (b *Backend) get(store map[int64]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		item, ok := store[pathID(r)]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Não encontrado."})
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (b *Backend) patch(store map[int64]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := decodeBody(r)
		b.mu.Lock()
		defer b.mu.Unlock()
		item, ok := store[pathID(r)]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Não encontrado."})
			return
		}
		for k, v := range in {
			item[k] = v
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (b *Backend) remove(store map[int64]map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := store[pathID(r)]; !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Não encontrado."})
			return
		}
		delete(store, pathID(r))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (b *Backend) history(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.chat)
}

// ask answers every message with "Você disse: <message>".
func (b *Backend) ask(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)
	answer := "Você disse: " + in.Message
	b.mu.Lock()
	b.chat = append(b.chat,
		map[string]string{"role": "user", "content": in.Message},
		map[string]string{"role": "assistant", "content": answer},
	)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"resposta": answer})
}
