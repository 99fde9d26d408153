package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasahq/darasa/core/school"
)

func Test_accountApi_login(t *testing.T) {
	env := setup(t)
	env.createUser(t, "head", []string{school.RoleAdmin}, "")

	rec := env.do(http.MethodPost, "/v1/users/login", "", []byte(`{"username":"head","password":"s3cr3tpass"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Token)

	// the fresh token works
	rec = env.do(http.MethodGet, "/v1/users", res.Token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// wrong password
	rec = env.do(http.MethodPost, "/v1/users/login", "", []byte(`{"username":"head","password":"nope"}`))
	checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marshallObj(t, httpErr{Error: "authentication failed"})}, rec)

	// unknown user
	rec = env.do(http.MethodPost, "/v1/users/login", "", []byte(`{"username":"ghost","password":"s3cr3tpass"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// deactivated account
	usr, _ := env.createUser(t, "gone", []string{school.RoleReceptionist}, "")
	usr.IsActive = false
	_, err := env.accountSvc.UpdateOrCreate(usr)
	require.NoError(t, err)
	rec = env.do(http.MethodPost, "/v1/users/login", "", []byte(`{"username":"gone","password":"s3cr3tpass"}`))
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marshallObj(t, httpErr{Error: "account deactivated"})}, rec)
}

func Test_accountApi_refreshToken(t *testing.T) {
	env := setup(t)
	_, token := env.createUser(t, "head", []string{school.RoleAdmin}, "")

	rec := env.do(http.MethodPost, "/v1/users/token-refresh", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Token)

	rec = env.do(http.MethodPost, "/v1/users/token-refresh", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_accountApi_create(t *testing.T) {
	env := setup(t)
	_, adminToken := env.createUser(t, "head", []string{school.RoleAdmin}, "")
	_, deskToken := env.createUser(t, "desk", []string{school.RoleReceptionist}, "")

	body := []byte(`{
		"name": "New Teacher",
		"username": "teach",
		"email": "teach@school.test",
		"password": "s3cr3tpass",
		"password_confirm": "s3cr3tpass",
		"roles": ["faculty"],
		"faculty_code": "F02"
	}`)

	rec := env.do(http.MethodPost, "/v1/users/register", deskToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code, "only admin creates accounts")

	rec = env.do(http.MethodPost, "/v1/users/register", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password_hash", "hashes never leave the server")
	var created struct {
		ID          string   `json:"id"`
		Username    string   `json:"username"`
		Roles       []string `json:"roles"`
		FacultyCode string   `json:"faculty_code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "teach", created.Username)
	assert.Equal(t, "f02", created.FacultyCode)

	// mismatched confirmation
	rec = env.do(http.MethodPost, "/v1/users/register", adminToken,
		[]byte(`{"name":"X","username":"xxxx","password":"s3cr3tpass","password_confirm":"different","roles":["admin"]}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// listing is admin-only and hides hashes
	rec = env.do(http.MethodGet, "/v1/users", deskToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/v1/users", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password_hash")
	var users []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 3)

	rec = env.do(http.MethodGet, "/v1/users/"+created.ID, adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(http.MethodGet, "/v1/users/nope", adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
