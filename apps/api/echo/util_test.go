package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/assignment"
	"github.com/trezcool/langcenter/core/attendance"
	"github.com/trezcool/langcenter/core/certificate"
	"github.com/trezcool/langcenter/core/class"
	"github.com/trezcool/langcenter/core/course"
	"github.com/trezcool/langcenter/core/finance"
	"github.com/trezcool/langcenter/core/material"
	"github.com/trezcool/langcenter/core/schedule"
	"github.com/trezcool/langcenter/core/user"
	emailsvc "github.com/trezcool/langcenter/services/email"
	logsvc "github.com/trezcool/langcenter/services/logger"
	"github.com/trezcool/langcenter/services/spreadsheet"
)

type testApp struct {
	Server
	deps  Deps
	mails *emailsvc.ConsoleServiceMock
}

// setup returns a server over freshly seeded registries.
func setup(t *testing.T) testApp {
	t.Helper()

	conf := &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "Language Center",
		Server:   core.ServerConfig{DisableReqLogs: true},
	}
	logger := logsvc.NewNopLogger()

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)
	course.RegisterValidators(validate, translator)
	class.RegisterValidators(validate, translator)
	finance.RegisterValidators(validate, translator)
	schedule.RegisterValidators(validate, translator)
	certificate.RegisterValidators(validate, translator)
	assignment.RegisterValidators(validate, translator)
	attendance.RegisterValidators(validate, translator)
	material.RegisterValidators(validate, translator)

	userReg := user.NewRegistry()
	require.NoError(t, user.Seed(userReg, time.Now()))
	courseReg := course.NewRegistry()
	require.NoError(t, course.Seed(courseReg))
	classReg := class.NewRegistry()
	require.NoError(t, class.Seed(classReg))
	financeReg := finance.NewRegistry()
	require.NoError(t, finance.Seed(financeReg))
	eventReg := schedule.NewRegistry()
	require.NoError(t, schedule.Seed(eventReg))
	certReg := certificate.NewRegistry()
	require.NoError(t, certificate.Seed(certReg))
	asgReg := assignment.NewRegistry()
	require.NoError(t, assignment.Seed(asgReg))
	attReg := attendance.NewRegistry()
	require.NoError(t, attendance.Seed(attReg))
	matReg := material.NewRegistry()
	require.NoError(t, material.Seed(matReg))

	mails := emailsvc.NewConsoleServiceMock(conf, logger)
	usrSvc := user.NewService(userReg, validate, mails)
	courseSvc := course.NewService(courseReg, validate)
	classSvc := class.NewService(classReg, courseSvc, usrSvc, validate)

	deps := Deps{
		Conf:           conf,
		Logger:         logger,
		Translator:     translator,
		UserSvc:        usrSvc,
		CourseSvc:      courseSvc,
		ClassSvc:       classSvc,
		FinanceSvc:     finance.NewService(financeReg, usrSvc, validate),
		ScheduleSvc:    schedule.NewService(eventReg, classSvc, usrSvc, validate),
		CertificateSvc: certificate.NewService(certReg, courseSvc, usrSvc, validate),
		AssignmentSvc:  assignment.NewService(asgReg, classSvc, usrSvc, validate),
		AttendanceSvc:  attendance.NewService(attReg, classSvc, usrSvc, validate),
		MaterialSvc:    material.NewService(matReg, courseSvc, usrSvc, validate),
		Importer:       spreadsheet.NewUserImporter(usrSvc, translator, logger),
	}
	return testApp{Server: NewServer(deps), deps: deps, mails: mails}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name         string
	method       string
	path         string
	body         []byte
	wantCode     int
	wantData     []byte
	wantLocation string
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code)
	if tt.wantLocation != "" {
		assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setup(t)
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newRequest(method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// ids decodes a JSON list response to the ids of its objects.
func ids(t *testing.T, body []byte) []string {
	t.Helper()
	var objs []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &objs))
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.ID)
	}
	return out
}
