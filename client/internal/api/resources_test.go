package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client/internal/types"
)

func TestReminders_CRUD(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/lembretes/":
			_, _ = io.WriteString(w, `[{"id":1,"titulo":"Tomar remédio","data_hora":"2024-11-05T08:00:00","tipo":"medicamento"}]`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/lembretes/1/":
			_, _ = io.WriteString(w, `{"id":1,"titulo":"Tomar remédio","data_hora":"2024-11-05T08:00:00","tipo":"medicamento"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/lembretes/":
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in["data_hora"] != "2024-11-05T08:00:00" || in["tipo"] != "medicamento" || in["titulo"] != "Tomar remédio" {
				t.Errorf("unexpected create body %v", in)
			}
			if _, ok := in["concluido"]; ok {
				t.Errorf("concluido must be omitted when unset")
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":2,"titulo":"Tomar remédio","data_hora":"2024-11-05T08:00:00","tipo":"medicamento"}`)
		case r.Method == http.MethodPatch && r.URL.Path == "/api/lembretes/2/":
			_, _ = io.WriteString(w, `{"id":2,"titulo":"Almoço","data_hora":"2024-11-05T12:00:00","tipo":"refeicao","concluido":true}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/lembretes/2/":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	ctx := context.Background()
	c := testConn(srv, "tok")

	list, err := ListReminders(ctx, c)
	if err != nil || len(list) != 1 || list[0].Type != types.ReminderMedication {
		t.Fatalf("ListReminders unexpected: got=%+v err=%v", list, err)
	}
	one, err := GetReminder(ctx, c, 1)
	if err != nil || one.Title != "Tomar remédio" || one.DueAt.Hour() != 8 {
		t.Fatalf("GetReminder unexpected: got=%+v err=%v", one, err)
	}
	created, err := CreateReminder(ctx, c, types.ReminderInput{Title: "Tomar remédio", DueAt: "2024-11-05T08:00:00", Type: types.ReminderMedication})
	if err != nil || created.ID != 2 {
		t.Fatalf("CreateReminder unexpected: got=%+v err=%v", created, err)
	}
	done := true
	updated, err := UpdateReminder(ctx, c, 2, types.ReminderInput{Title: "Almoço", DueAt: "2024-11-05T12:00:00", Type: types.ReminderMeal, Done: &done})
	if err != nil || !updated.Done || updated.Type != types.ReminderMeal {
		t.Fatalf("UpdateReminder unexpected: got=%+v err=%v", updated, err)
	}
	if err := DeleteReminder(ctx, c, 2); err != nil {
		t.Fatalf("DeleteReminder: %v", err)
	}
}

func TestReminders_InvalidID(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	c := testConn(srv, "tok")
	if _, err := GetReminder(context.Background(), c, 0); err == nil {
		t.Fatal("expected validation error for GetReminder")
	}
	if err := DeleteReminder(context.Background(), c, -1); err == nil {
		t.Fatal("expected validation error for DeleteReminder")
	}
}

func TestReminders_NonOKStatuses(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusBadRequest)
		case http.MethodGet:
			w.WriteHeader(http.StatusInternalServerError)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	c := testConn(srv, "tok")
	if _, err := CreateReminder(context.Background(), c, types.ReminderInput{}); err == nil || err.Error() != "Erro ao criar lembrete." {
		t.Fatalf("unexpected CreateReminder error %v", err)
	}
	if _, err := ListReminders(context.Background(), c); err == nil || err.Error() != "Erro ao carregar lembretes." {
		t.Fatalf("unexpected ListReminders error %v", err)
	}
	if err := DeleteReminder(context.Background(), c, 5); err == nil || err.Error() != "Erro ao excluir lembrete." {
		t.Fatalf("unexpected DeleteReminder error %v", err)
	}
}

func TestDiary_TextEntryIsJSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["texto"] != "Hoje caminhei no parque." {
			t.Errorf("unexpected body %v", in)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":10,"texto":"Hoje caminhei no parque.","foto":null,"audio":null,"data_criacao":"2024-11-05T10:00:00Z"}`)
	}))
	defer srv.Close()
	got, err := CreateDiaryEntry(context.Background(), testConn(srv, "tok"), types.DiaryInput{Text: "Hoje caminhei no parque."})
	if err != nil || got.ID != 10 || got.Photo != "" {
		t.Fatalf("CreateDiaryEntry unexpected: got=%+v err=%v", got, err)
	}
}

func TestDiary_AttachmentIsMultipart(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary=") {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("audio")
		if err != nil {
			t.Errorf("audio part: %v", err)
		} else {
			b, _ := io.ReadAll(f)
			if string(b) != "OGG" || hdr.Filename != "nota.ogg" {
				t.Errorf("unexpected audio part %q %q", b, hdr.Filename)
			}
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":11,"audio":"/media/diario_audios/nota.ogg","data_criacao":"2024-11-05T10:00:00Z"}`)
	}))
	defer srv.Close()
	in := types.DiaryInput{Audio: &types.Attachment{Filename: "nota.ogg", Content: strings.NewReader("OGG")}}
	got, err := CreateDiaryEntry(context.Background(), testConn(srv, "tok"), in)
	if err != nil || got.Audio == "" {
		t.Fatalf("CreateDiaryEntry unexpected: got=%+v err=%v", got, err)
	}
}

func TestDiary_ListAndDelete(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":1,"texto":"a","data_criacao":"2024-11-05T10:00:00Z"},{"id":2,"foto":"/m/x.jpg","data_criacao":"2024-11-06T10:00:00Z"}]`)
		case http.MethodDelete:
			if r.URL.Path != "/api/diario/2/" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()
	c := testConn(srv, "tok")
	got, err := ListDiaryEntries(context.Background(), c)
	if err != nil || len(got) != 2 || got[1].Photo != "/m/x.jpg" {
		t.Fatalf("ListDiaryEntries unexpected: got=%+v err=%v", got, err)
	}
	if err := DeleteDiaryEntry(context.Background(), c, 2); err != nil {
		t.Fatalf("DeleteDiaryEntry: %v", err)
	}
}

func TestContacts_JSONAndMultipart(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.Header.Get("Content-Type") == "application/json":
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in["nome"] != "Ana" || in["is_emergencia"] != true {
				t.Errorf("unexpected body %v", in)
			}
			for _, k := range []string{"tipo", "observacoes", "relacao", "foto"} {
				if _, ok := in[k]; ok {
					t.Errorf("field %q must not be sent", k)
				}
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":1,"nome":"Ana","telefone":"11999990000","is_emergencia":true}`)
		case r.Method == http.MethodPatch:
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parse multipart: %v", err)
			}
			if r.FormValue("is_emergencia") != "false" || r.FormValue("nome") != "Ana Maria" {
				t.Errorf("unexpected form %v", r.MultipartForm.Value)
			}
			_, _ = io.WriteString(w, `{"id":1,"nome":"Ana Maria","telefone":"11999990000","is_emergencia":false,"foto":"/m/ana.jpg"}`)
		case r.Method == http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":1,"nome":"Ana","telefone":"11999990000","is_emergencia":true}]`)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
	}))
	defer srv.Close()
	ctx := context.Background()
	c := testConn(srv, "tok")

	created, err := CreateContact(ctx, c, types.ContactInput{Name: "Ana", Phone: "11999990000", Emergency: true})
	if err != nil || !created.Emergency {
		t.Fatalf("CreateContact unexpected: got=%+v err=%v", created, err)
	}
	photo := &types.Attachment{Filename: "ana.jpg", Content: strings.NewReader("JPEG")}
	updated, err := UpdateContact(ctx, c, 1, types.ContactInput{Name: "Ana Maria", Phone: "11999990000", Photo: photo})
	if err != nil || updated.Photo != "/m/ana.jpg" {
		t.Fatalf("UpdateContact unexpected: got=%+v err=%v", updated, err)
	}
	list, err := ListContacts(ctx, c)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListContacts unexpected: got=%+v err=%v", list, err)
	}
	if err := DeleteContact(ctx, c, 1); err != nil {
		t.Fatalf("DeleteContact: %v", err)
	}
}

func TestChat_HistoryAndSend(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"role":"user","content":"oi"},{"role":"assistant","content":"Olá!"}]`)
		case http.MethodPost:
			var in types.ChatRequest
			_ = json.NewDecoder(r.Body).Decode(&in)
			_, _ = io.WriteString(w, `{"resposta":"Você disse: `+in.Message+`"}`)
		}
	}))
	defer srv.Close()
	c := testConn(srv, "tok")
	hist, err := ChatHistory(context.Background(), c)
	if err != nil || len(hist) != 2 || hist[1].Sender() != types.SenderBot {
		t.Fatalf("ChatHistory unexpected: got=%+v err=%v", hist, err)
	}
	answer, err := SendChatMessage(context.Background(), c, "bom dia")
	if err != nil || answer != "Você disse: bom dia" {
		t.Fatalf("SendChatMessage unexpected: got=%q err=%v", answer, err)
	}
}

func TestAuth_RegisterSendsProfileFields(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["nome_completo"] != "Maria da Silva" || in["data_nascimento"] != "1950-03-02" {
			t.Errorf("unexpected body %v", in)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"token":"t","user_id":1,"email":"m@x.com"}`)
	}))
	defer srv.Close()
	got, err := Register(context.Background(), testConn(srv, ""), types.RegisterRequest{
		Username: "maria", Email: "m@x.com", Password: "p", FullName: "Maria da Silva", BirthDate: "1950-03-02",
	})
	if err != nil || got.Token != "t" {
		t.Fatalf("Register unexpected: got=%+v err=%v", got, err)
	}
}

func TestAuth_RegisterFieldError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"username":["Um usuário com este nome de usuário já existe."]}`)
	}))
	defer srv.Close()
	_, err := Register(context.Background(), testConn(srv, ""), types.RegisterRequest{Username: "maria"})
	if err == nil || err.Error() != "Um usuário com este nome de usuário já existe." {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestAuth_LogoutIsBestEffort(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"boom"}`)
	}))
	defer srv.Close()
	if err := Logout(context.Background(), testConn(srv, "tok")); err != nil {
		t.Fatalf("backend failure must not surface: %v", err)
	}
	if err := Logout(context.Background(), testConn(srv, "")); err != nil {
		t.Fatalf("logout without token must be a no-op: %v", err)
	}
	c := Conn{HTTP: &http.Client{Transport: &errRT{}}, BaseURL: "http://example.invalid", Tokens: staticTokens("tok")}
	if err := Logout(context.Background(), c); err == nil {
		t.Fatal("expected transport error to be returned")
	}
}
