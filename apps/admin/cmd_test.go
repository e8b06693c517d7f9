package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/ratiba/core/calendar"
	"github.com/trezcool/ratiba/core/event"
	"github.com/trezcool/ratiba/core/user"
	dummydb "github.com/trezcool/ratiba/storage/database/dummy"
)

func setup(t *testing.T) *commandLine {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	logger = log.New(io.Discard, "", 0)

	return &commandLine{
		usrSvc: user.NewService(dummydb.NewUserRepository(db)),
		calSvc: calendar.NewService(dummydb.NewCalendarRepository(db)),
		evtSvc: event.NewService(dummydb.NewEventRepository(db)),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	migrateRunFunc = func(db *sqlx.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s requires a VERSION argument", command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "up-to without version", args: []string{"migrate", "up-to"}, wantErrStr: "up-to requires a VERSION argument"},
		{name: "up-to with bad version", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to", args: []string{"migrate", "down-to", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			checkCLIErr(t, tt, err)
		})
	}
}

func Test_commandLine_adduser(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("Str0ngPassword!"), nil }

	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "create", args: []string{"adduser", "-username", "kim", "-role", "admin"}},
		{name: "update existing", args: []string{"adduser", "-username", "kim", "-role", "editor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			checkCLIErr(t, tt, err)
		})
	}

	usr, err := cli.usrSvc.GetByUsername(context.Background(), "kim")
	assert.NoError(t, err)
	assert.Equal(t, user.RoleEditor, usr.Role)
	assert.NoError(t, usr.CheckPassword("Str0ngPassword!"))
}

func Test_commandLine_adduser_emptyPassword(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return nil, nil }

	err := cli.run([]string{"admin", "adduser", "-username", "kim"})
	assert.Equal(t, errHelp, err)
}

func Test_commandLine_resetpassword(t *testing.T) {
	cli := setup(t)

	if _, err := cli.usrSvc.Create(context.Background(), user.NewUser{
		Username: "kim",
		Role:     user.RoleViewer,
		Password: "OldPassword1",
	}); err != nil {
		t.Fatalf("creating user: %v", err)
	}

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("NewPassword1"), nil }

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "unknown user", args: []string{"resetpassword", "-username", "ghost"}, wantErr: user.ErrNotFound},
		{name: "ok", args: []string{"resetpassword", "-username", "kim"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			checkCLIErr(t, tt, err)
		})
	}

	usr, err := cli.usrSvc.GetByUsername(context.Background(), "kim")
	assert.NoError(t, err)
	assert.NoError(t, usr.CheckPassword("NewPassword1"))
	assert.Error(t, usr.CheckPassword("OldPassword1"))
}

func Test_commandLine_export_unknownCalendar(t *testing.T) {
	cli := setup(t)

	// nothing created yet: the "no data" state wins over "not found"
	err := cli.run([]string{"admin", "export", "-calendar", "Não existe"})
	assert.Equal(t, calendar.ErrNoCalendars, err)

	if _, err := cli.calSvc.CreateCalendar(context.Background(), calendar.NewCalendar{
		Name:  "Calendário 2026",
		Level: calendar.LevelMedio,
	}); err != nil {
		t.Fatalf("creating calendar: %v", err)
	}

	err = cli.run([]string{"admin", "export", "-calendar", "Não existe"})
	assert.Equal(t, calendar.ErrNotFound, err)
}

func Test_commandLine_unknownCommand(t *testing.T) {
	cli := setup(t)

	assert.Equal(t, errHelp, cli.run([]string{"admin"}))
	assert.Equal(t, errHelp, cli.run([]string{"admin", "lol"}))
}

func checkCLIErr(t *testing.T, tt cliTest, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, err)
	case tt.wantErrStr != "":
		assert.EqualError(t, err, tt.wantErrStr)
	default:
		assert.NoError(t, err)
	}
}
