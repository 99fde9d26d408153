package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasahq/darasa/core/school"
)

func Test_studentApi_register(t *testing.T) {
	env := setup(t)
	_, deskToken := env.createUser(t, "desk", []string{school.RoleReceptionist}, "")
	_, facToken := env.createUser(t, "teach", []string{school.RoleFaculty}, "F01")

	body := []byte(`{"studentName":"Asha Rao","fatherName":"Vikram Rao","studentClass":"5","studentRoll":"12","totalFee":10000}`)

	// no token
	rec := env.do(http.MethodPost, "/v1/students", "", body)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)}, rec)

	// faculty may not register students
	rec = env.do(http.MethodPost, "/v1/students", facToken, body)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marshallObj(t, httpErr{Error: "permission denied"})}, rec)

	// receptionist registers
	rec = env.do(http.MethodPost, "/v1/students", deskToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var stu school.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stu))
	assert.Equal(t, "CB25-05-12", stu.Code)
	assert.Equal(t, 10000, stu.CurrentDue)

	// duplicate registration returns the existing record
	rec = env.do(http.MethodPost, "/v1/students", deskToken, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var conflict struct {
		Error    string         `json:"error"`
		Existing school.Student `json:"existing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conflict))
	assert.Equal(t, "a student with this code is already registered", conflict.Error)
	assert.Equal(t, stu.Code, conflict.Existing.Code)

	// field validation errors come back keyed by json name
	rec = env.do(http.MethodPost, "/v1/students", deskToken, []byte(`{"studentName":"X"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fldErrs map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fldErrs))
	assert.Contains(t, fldErrs, "fatherName")
	assert.Contains(t, fldErrs, "studentClass")
	assert.Contains(t, fldErrs, "studentRoll")

	// bad class code is a validation failure, not a fault
	rec = env.do(http.MethodPost, "/v1/students", deskToken,
		[]byte(`{"studentName":"X","fatherName":"Y","studentClass":"12","studentRoll":"1"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_studentApi_queryRetrieve(t *testing.T) {
	env := setup(t)
	_, deskToken := env.createUser(t, "desk", []string{school.RoleReceptionist}, "")

	register := func(name, father, class, roll string, fee int) school.Student {
		body := marshallObj(t, map[string]interface{}{
			"studentName": name, "fatherName": father, "studentClass": class, "studentRoll": roll, "totalFee": fee,
		})
		rec := env.do(http.MethodPost, "/v1/students", deskToken, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var stu school.Student
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stu))
		return stu
	}
	asha := register("Asha Rao", "Vikram Rao", "5", "12", 10000)
	binu := register("Binu Thomas", "Jose Thomas", "nursery", "7", 8000)

	rec := env.do(http.MethodGet, "/v1/students", deskToken)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, []school.Student{asha, binu})}, rec)

	rec = env.do(http.MethodGet, "/v1/students?class=5", deskToken)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, []school.Student{asha})}, rec)

	rec = env.do(http.MethodGet, "/v1/students?search=thomas", deskToken)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, []school.Student{binu})}, rec)

	rec = env.do(http.MethodGet, "/v1/students/"+binu.Code, deskToken)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, binu)}, rec)

	rec = env.do(http.MethodGet, "/v1/students/CB25-05-99", deskToken)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "not found"})}, rec)
}

func Test_studentApi_updateDestroy(t *testing.T) {
	env := setup(t)
	_, adminToken := env.createUser(t, "head", []string{school.RoleAdmin}, "")
	_, deskToken := env.createUser(t, "desk", []string{school.RoleReceptionist}, "")

	rec := env.do(http.MethodPost, "/v1/students", deskToken,
		[]byte(`{"studentName":"Asha Rao","fatherName":"Vikram Rao","studentClass":"5","studentRoll":"12","totalFee":10000}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	var stu school.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stu))

	rec = env.do(http.MethodPut, "/v1/students/"+stu.Code, deskToken, []byte(`{"studentName":"Asha R Rao","totalFee":12000}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated school.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Asha R Rao", updated.Name)
	assert.Equal(t, 12000, updated.CurrentDue)

	// destroy is admin-only
	rec = env.do(http.MethodDelete, "/v1/students/"+stu.Code, deskToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodDelete, "/v1/students/"+stu.Code, adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodGet, "/v1/students/"+stu.Code, adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_studentApi_feeSummary(t *testing.T) {
	env := setup(t)
	_, deskToken := env.createUser(t, "desk", []string{school.RoleReceptionist}, "")

	rec := env.do(http.MethodPost, "/v1/students", deskToken,
		[]byte(`{"studentName":"Asha Rao","fatherName":"Vikram Rao","studentClass":"5","studentRoll":"12","totalFee":10000}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	var stu school.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stu))

	rec = env.do(http.MethodPost, "/v1/fees/certificates", deskToken,
		[]byte(fmt.Sprintf(`{"studentCode":%q,"amountPaid":4000}`, stu.Code)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/v1/students/"+stu.Code+"/fees", deskToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Summary struct {
			CurrentDue int `json:"currentDue"`
			TotalPaid  int `json:"totalPaid"`
		} `json:"summary"`
		Certificates []school.FeeCertificate `json:"certificates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 6000, res.Summary.CurrentDue)
	assert.Equal(t, 4000, res.Summary.TotalPaid)
	assert.Len(t, res.Certificates, 1)
}
