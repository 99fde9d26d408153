package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasahq/darasa/core/school"
)

const mathQuiz = `{
	"classCode": "5",
	"title": "Fractions quiz",
	"subject": "Maths",
	"questions": [
		{"text": "1/2 + 1/2 = ?", "options": ["1", "2", "1/4", "0"], "correctAnswer": "a"},
		{"text": "1/2 of 8 = ?", "options": ["2", "4", "6", "8"], "correctAnswer": "B"}
	]
}`

func Test_assignmentApi_lifecycle(t *testing.T) {
	env := setup(t)
	_, facToken := env.createUser(t, "teach", []string{school.RoleFaculty}, "F01")
	_, deskToken := env.createUser(t, "desk", []string{school.RoleReceptionist}, "")

	// creating needs a faculty or admin token
	rec := env.do(http.MethodPost, "/v1/assignments", "", []byte(mathQuiz))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = env.do(http.MethodPost, "/v1/assignments", deskToken, []byte(mathQuiz))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPost, "/v1/assignments", facToken, []byte(mathQuiz))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var asg school.Assignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &asg))
	assert.Equal(t, "b", asg.Questions[1].CorrectAnswer, "answer keys are normalized to lower case")

	// the public listing never leaks the answer key
	rec = env.do(http.MethodGet, "/v1/assignments?class=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "correctanswer")

	rec = env.do(http.MethodGet, "/v1/assignments/"+asg.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "correctanswer")

	// students submit without a token
	rec = env.do(http.MethodPost, "/v1/assignments/"+asg.ID+"/submissions", "",
		[]byte(`{"studentCode":"CB25-05-12","answers":["a","c"]}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res school.AssignmentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 50, res.Percentage)

	// resubmission overwrites
	rec = env.do(http.MethodPost, "/v1/assignments/"+asg.ID+"/submissions", "",
		[]byte(`{"studentCode":"CB25-05-12","answers":["a","b"]}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	// wrong answer count is rejected
	rec = env.do(http.MethodPost, "/v1/assignments/"+asg.ID+"/submissions", "",
		[]byte(`{"studentCode":"CB25-05-12","answers":["a"]}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// results are for staff only
	rec = env.do(http.MethodGet, "/v1/assignments/"+asg.ID+"/results", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/v1/assignments/"+asg.ID+"/results", facToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var results []school.AssignmentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Percentage)

	// deactivation closes submissions
	rec = env.do(http.MethodPost, "/v1/assignments/"+asg.ID+"/deactivate", facToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(http.MethodPost, "/v1/assignments/"+asg.ID+"/submissions", "",
		[]byte(`{"studentCode":"CB25-05-13","answers":["a","b"]}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodDelete, "/v1/assignments/"+asg.ID, facToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(http.MethodGet, "/v1/assignments/"+asg.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
