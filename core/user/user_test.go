package user_test

import (
	"context"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/user"
	dummydb "github.com/trezcool/ratiba/storage/database/dummy"
)

func setup(t *testing.T) (*user.Service, *validator.Validate) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	svc := user.NewService(dummydb.NewUserRepository(db))

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return svc, validate
}

func Test_NewUser_Validate(t *testing.T) {
	svc, validate := setup(t)

	existing := user.NewUser{Username: "kim", Role: user.RoleViewer, Password: "Str0ngPassword!"}
	if err := existing.Validate(validate, svc); err != nil {
		t.Fatalf("validating existing user: %v", err)
	}
	if _, err := svc.Create(context.Background(), existing); err != nil {
		t.Fatalf("creating existing user: %v", err)
	}

	tests := []struct {
		name    string
		data    user.NewUser
		wantErr bool
	}{
		{name: "valid", data: user.NewUser{Username: "awa", Role: user.RoleEditor, Password: "Str0ngPassword!"}},
		{name: "username too short", data: user.NewUser{Username: "ab", Role: user.RoleViewer, Password: "Str0ngPassword!"}, wantErr: true},
		{name: "bad username chars", data: user.NewUser{Username: "a!b@c", Role: user.RoleViewer, Password: "Str0ngPassword!"}, wantErr: true},
		{name: "unknown role", data: user.NewUser{Username: "newbie", Role: "boss", Password: "Str0ngPassword!"}, wantErr: true},
		{name: "short password", data: user.NewUser{Username: "newbie", Role: user.RoleViewer, Password: "short"}, wantErr: true},
		{name: "duplicate username", data: user.NewUser{Username: "KIM", Role: user.RoleViewer, Password: "Str0ngPassword!"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate(validate, svc)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_User_password(t *testing.T) {
	var usr user.User
	assert.NoError(t, usr.SetPassword("Str0ngPassword!"))
	assert.NoError(t, usr.CheckPassword("Str0ngPassword!"))
	assert.Error(t, usr.CheckPassword("nope"))
}

func Test_User_roles(t *testing.T) {
	admin := user.User{Role: user.RoleAdmin}
	editor := user.User{Role: user.RoleEditor}
	viewer := user.User{Role: user.RoleViewer}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanEditEvents())
	assert.False(t, editor.IsAdmin())
	assert.True(t, editor.CanEditEvents())
	assert.False(t, viewer.CanEditEvents())
}

func Test_Service_EnsureDefaultAdmin(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	conf := &core.Config{
		DefaultAdmin: core.DefaultAdminConfig{Username: "admin", Password: "admin123"},
	}

	assert.NoError(t, svc.EnsureDefaultAdmin(ctx, conf))

	usr, err := svc.GetByUsername(ctx, "admin")
	assert.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, usr.Role)
	assert.True(t, usr.IsActive)
	assert.NoError(t, usr.CheckPassword("admin123"))

	// idempotent: a second run must not reset the account
	if _, err := svc.Update(ctx, usr.ID, user.UpdateUser{Password: "ChangedPassword1"}); err != nil {
		t.Fatalf("updating admin: %v", err)
	}
	assert.NoError(t, svc.EnsureDefaultAdmin(ctx, conf))

	usr, err = svc.GetByUsername(ctx, "admin")
	assert.NoError(t, err)
	assert.NoError(t, usr.CheckPassword("ChangedPassword1"))
}
