package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/calendar"
	"github.com/trezcool/ratiba/core/event"
	"github.com/trezcool/ratiba/core/user"
	exportsvc "github.com/trezcool/ratiba/services/export"
	logsvc "github.com/trezcool/ratiba/services/logger"
	dummydb "github.com/trezcool/ratiba/storage/database/dummy"
)

type testEnv struct {
	conf   *core.Config
	app    *Server
	usrSvc *user.Service
	calSvc *calendar.Service
	evtSvc *event.Service
}

func newTestConfig() *core.Config {
	return &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "Ratiba",
		SecretKey: "secret",
		Server: core.ServerConfig{
			JWTExpirationDelta: 10 * time.Minute,
		},
	}
}

func setup(t *testing.T) testEnv {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	conf := newTestConfig()

	usrSvc := user.NewService(dummydb.NewUserRepository(db))
	calSvc := calendar.NewService(dummydb.NewCalendarRepository(db))
	evtSvc := event.NewService(dummydb.NewEventRepository(db))

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	calendar.InitValidators(validate, translator)
	event.InitValidators(validate, translator)

	app := NewServer(ServerDeps{
		Conf:        conf,
		Logger:      logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
		UserSvc:     usrSvc,
		CalendarSvc: calSvc,
		EventSvc:    evtSvc,
		Printer:     exportsvc.NewPrinter(conf),
		Validate:    validate,
		Translator:  translator,
	})

	return testEnv{conf: conf, app: app, usrSvc: usrSvc, calSvc: calSvc, evtSvc: evtSvc}
}

func (env testEnv) createUser(t *testing.T, uname, role string) user.User {
	usr, err := env.usrSvc.Create(context.Background(), user.NewUser{
		Username: uname,
		Role:     role,
		Password: "Str0ngPassword!",
	})
	if err != nil {
		t.Fatalf("createUser(): %v", err)
	}
	return usr
}

func (env testEnv) createCalendar(t *testing.T, name string) calendar.Calendar {
	cal, err := env.calSvc.CreateCalendar(context.Background(), calendar.NewCalendar{
		Name:  name,
		Level: calendar.LevelMedio,
	})
	if err != nil {
		t.Fatalf("createCalendar(): %v", err)
	}
	return cal
}

func (env testEnv) createTerm(t *testing.T, calID, name string, start, end core.Date) calendar.Term {
	term, err := env.calSvc.CreateTerm(context.Background(), calendar.NewTerm{
		CalendarID: calID,
		Name:       name,
		Start:      start,
		End:        end,
	})
	if err != nil {
		t.Fatalf("createTerm(): %v", err)
	}
	return term
}

func (env testEnv) createEvent(t *testing.T, calID string, typ event.Type, title string, start, end core.Date) event.Event {
	evt, err := env.evtSvc.Create(context.Background(), event.NewEvent{
		CalendarID: calID,
		Start:      start,
		End:        end,
		Type:       typ,
		Title:      title,
	})
	if err != nil {
		t.Fatalf("createEvent(): %v", err)
	}
	return evt
}

func (env testEnv) getToken(t *testing.T, usr user.User) string {
	token, err := GenerateToken(env.conf, GetUserClaims(env.conf, usr))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marshal(t *testing.T, v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal(): %v", err)
	}
	return data
}
