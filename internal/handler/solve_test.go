package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/banci/banci/pkg/model"
	"github.com/banci/banci/pkg/scheduler/solver"
)

func testHandler() *SolveHandler {
	return NewSolveHandler(solver.NewService(solver.Options{
		SkeletonTimeLimit: 10 * time.Second,
		UnifiedTimeLimit:  30 * time.Second,
	}))
}

func smallRequest(t *testing.T) *SolveRequest {
	t.Helper()
	month, err := model.ParseMonth("2026-02")
	if err != nil {
		t.Fatalf("ParseMonth failed: %v", err)
	}
	req := &model.ShiftRequirement{
		TargetMonth:  "2026-02",
		Requirements: make(map[string]model.DailyRequirement),
	}
	for day := 1; day <= month.Days(); day++ {
		req.Requirements[model.RequirementKey(month, day, model.ShiftDay)] = model.DailyRequirement{TotalStaff: 1}
	}
	staff := func(id string) model.Staff {
		return model.Staff{
			ID:                     id,
			Name:                   "員工" + id,
			WeeklyWorkCount:        model.WeeklyWorkCount{Hope: 5, Must: 5},
			MaxConsecutiveWorkDays: 5,
			AvailableWeekdays:      []int{0, 1, 2, 3, 4, 5, 6},
			TimeSlotPreference:     model.PreferAny,
		}
	}
	return &SolveRequest{
		StaffList:        []model.Staff{staff("s1"), staff("s2"), staff("s3")},
		ShiftRequirement: req,
	}
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	w := httptest.NewRecorder()
	handlerFunc(w, r)
	return w
}

func TestRequestWireFieldNames(t *testing.T) {
	// 请求体字段名沿用原客户端的线上格式
	data, err := json.Marshal(&SolveRequest{
		StaffList:        smallRequest(t).StaffList,
		ShiftRequirement: smallRequest(t).ShiftRequirement,
		ScheduleSkeleton: &model.ScheduleSkeleton{},
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"staffList", "requirements", "skeleton"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected request key %q, keys: %v", key, rawKeys(raw))
		}
	}
}

func rawKeys(raw map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	return keys
}

func TestUnified_Success(t *testing.T) {
	h := testHandler()
	w := postJSON(t, h.Unified, smallRequest(t))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SolveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !resp.Success {
		t.Error("Expected success=true")
	}
	if len(resp.Schedule) != 3 {
		t.Errorf("Expected 3 staff schedules, got %d", len(resp.Schedule))
	}
	if resp.Stats.Status != "OPTIMAL" && resp.Stats.Status != "FEASIBLE" {
		t.Errorf("Unexpected status %s", resp.Stats.Status)
	}
}

func TestUnified_MalformedBody(t *testing.T) {
	h := testHandler()
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.Unified(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if resp["success"] != false {
		t.Error("Expected success=false")
	}
	if resp["errorType"] != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %v", resp["errorType"])
	}
}

func TestUnified_MethodNotAllowed(t *testing.T) {
	h := testHandler()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.Unified(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for GET, got %d", w.Code)
	}
}

func TestGenerate_RequiresSkeleton(t *testing.T) {
	h := testHandler()
	w := postJSON(t, h.Generate, smallRequest(t))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without skeleton, got %d", w.Code)
	}
}

func TestGenerate_Success(t *testing.T) {
	h := testHandler()
	req := smallRequest(t)
	rest := []int{1, 7, 14, 21, 28}
	req.ScheduleSkeleton = &model.ScheduleSkeleton{
		StaffSchedules: []model.StaffSkeleton{
			{StaffID: "s1", RestDays: rest},
			{StaffID: "s2", RestDays: rest},
			{StaffID: "s3", RestDays: rest},
		},
	}
	w := postJSON(t, h.Generate, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUnified_Infeasible(t *testing.T) {
	h := testHandler()
	req := smallRequest(t)
	req.StaffList = req.StaffList[:1]
	month, _ := model.ParseMonth("2026-02")
	for day := 1; day <= month.Days(); day++ {
		req.ShiftRequirement.Requirements[model.RequirementKey(month, day, model.ShiftDay)] = model.DailyRequirement{TotalStaff: 2}
	}

	w := postJSON(t, h.Unified, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if resp["errorType"] != "INFEASIBLE" {
		t.Errorf("Expected INFEASIBLE, got %v", resp["errorType"])
	}
}
