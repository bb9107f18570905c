package main

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"lg/fitplan-go-api/internal/domain"
	"lg/fitplan-go-api/internal/testutil"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// withSettings stores complete biometrics for the test user.
func withSettings(t *testing.T, s *testServer) {
	t.Helper()
	testutil.SaveSettings(t, s.st, s.user.ID, testutil.Biometrics())
}

func TestGenerateDailyPlan_RequiresSettings(t *testing.T) {
	s := setupTestServer(t)

	w := s.authed("POST", "/api/daily-plans/generate", "")
	expectStatus(t, w, http.StatusBadRequest)

	w = s.authed("GET", "/api/daily-plans/active", "")
	expectStatus(t, w, http.StatusNotFound)
}

func TestDailyPlanLifecycle(t *testing.T) {
	s := setupTestServer(t)
	withSettings(t, s)

	w := s.authed("POST", "/api/daily-plans/generate", "")
	expectStatus(t, w, http.StatusCreated)
	first := decode[domain.DailyPlan](t, w)
	if !first.Active || first.MealPlan == nil || first.TrainingProgram == nil {
		t.Fatalf("expected an active plan with both components, got %+v", first)
	}

	body := `{"name":"Cut","start_date":"2026-03-02","duration_weeks":1,"include_training_program":false}`
	w = s.authed("POST", "/api/daily-plans/generate-with-config", body)
	expectStatus(t, w, http.StatusCreated)
	second := decode[domain.DailyPlan](t, w)
	if second.Name != "Cut" || second.EndDate.String() != "2026-03-09" {
		t.Errorf("unexpected plan: %s ending %s", second.Name, second.EndDate)
	}
	if second.TrainingProgramID != nil {
		t.Error("expected no training program")
	}
	if second.MealPlan == nil || second.MealPlan.Name != "Cut - Meal Plan" {
		t.Error("expected meal plan named after the daily plan")
	}

	w = s.authed("GET", "/api/daily-plans/active", "")
	expectStatus(t, w, http.StatusOK)
	if decode[domain.DailyPlan](t, w).ID != second.ID {
		t.Error("expected the newest plan to be active")
	}

	w = s.authed("PUT", "/api/daily-plans/"+itoa(first.ID), `{"active":true,"name":"Back"}`)
	expectStatus(t, w, http.StatusOK)
	if updated := decode[domain.DailyPlan](t, w); !updated.Active || updated.Name != "Back" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	w = s.authed("GET", "/api/daily-plans", "")
	expectStatus(t, w, http.StatusOK)
	active := 0
	for _, p := range decode[[]domain.DailyPlan](t, w) {
		if p.Active {
			active++
		}
	}
	if active != 1 {
		t.Errorf("expected exactly one active plan, got %d", active)
	}

	w = s.authed("POST", "/api/daily-plans/deactivate-all", "")
	expectStatus(t, w, http.StatusOK)
	if n := decode[map[string]int](t, w)["deactivated"]; n != 1 {
		t.Errorf("expected 1 deactivated, got %d", n)
	}

	w = s.authed("DELETE", "/api/daily-plans/"+itoa(second.ID), "")
	expectStatus(t, w, http.StatusNoContent)
	w = s.authed("GET", "/api/daily-plans/"+itoa(second.ID), "")
	expectStatus(t, w, http.StatusNotFound)
}

func TestGenerateDailyPlanWithConfig_CustomDistribution(t *testing.T) {
	s := setupTestServer(t)
	withSettings(t, s)

	body := `{"name":"Two meals","start_date":"2026-03-02","duration_weeks":1,` +
		`"meal_plan":{"normal_distribution":{"LUNCH":0.6,"DINNER":0.4}}}`
	w := s.authed("POST", "/api/daily-plans/generate-with-config", body)
	expectStatus(t, w, http.StatusCreated)
	plan := decode[domain.DailyPlan](t, w)
	if plan.MealPlan == nil || len(plan.MealPlan.Days) != 7 {
		t.Fatalf("expected a 7-day meal plan, got %+v", plan.MealPlan)
	}

	for _, d := range plan.MealPlan.Days {
		sum := 0.0
		for _, m := range d.Meals {
			sum += m.TargetCalories
		}
		if !near(sum, d.TargetCalories) {
			t.Errorf("day %d: target %.2f, meals sum to %.2f", d.DayIndex, d.TargetCalories, sum)
		}
		if !d.WorkoutDay && len(d.Meals) != 2 {
			t.Errorf("rest day %d: expected lunch and dinner only, got %+v", d.DayIndex, d.Meals)
		}
	}
}

func TestDailyPlan_OtherUsersPlansAreHidden(t *testing.T) {
	s := setupTestServer(t)
	withSettings(t, s)

	w := s.authed("POST", "/api/daily-plans/generate", "")
	expectStatus(t, w, http.StatusCreated)
	plan := decode[domain.DailyPlan](t, w)

	other := testutil.CreateUser(t, s.st)
	for _, req := range []struct{ method, path, body string }{
		{"GET", "/api/daily-plans/" + itoa(plan.ID), ""},
		{"PUT", "/api/daily-plans/" + itoa(plan.ID), `{"name":"mine"}`},
		{"DELETE", "/api/daily-plans/" + itoa(plan.ID), ""},
		{"GET", "/api/daily-plans/" + itoa(plan.ID) + "/export.xlsx", ""},
	} {
		w := s.do(req.method, req.path, req.body, other.AuthToken)
		expectStatus(t, w, http.StatusNotFound)
	}
}

func TestDailyPlanExports(t *testing.T) {
	s := setupTestServer(t)
	withSettings(t, s)

	w := s.authed("POST", "/api/daily-plans/generate", "")
	expectStatus(t, w, http.StatusCreated)
	plan := decode[domain.DailyPlan](t, w)

	w = s.authed("GET", "/api/daily-plans/"+itoa(plan.ID)+"/export.xlsx", "")
	expectStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("unexpected content type %q", ct)
	}
	// xlsx files are zip archives
	if !strings.HasPrefix(w.Body.String(), "PK") {
		t.Error("expected a zip payload")
	}

	w = s.authed("GET", "/api/daily-plans/"+itoa(plan.ID)+"/calendar.ics", "")
	expectStatus(t, w, http.StatusOK)
	if !strings.HasPrefix(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("expected a calendar, got %q", w.Body.String())
	}
	// 4 weeks with 3 workout days each
	if n := strings.Count(w.Body.String(), "BEGIN:VEVENT"); n != 12 {
		t.Errorf("expected 12 events, got %d", n)
	}
}
