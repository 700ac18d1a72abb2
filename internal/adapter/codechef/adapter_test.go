package codechef

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ContestSync/internal/config"
	"ContestSync/internal/model"
	"ContestSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testAdapter(baseURL string) *Adapter {
	cfg := &config.PlatformConfig{BaseURL: baseURL, Timeout: 5}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
		now:        func() time.Time { return fixedNow },
	}
}

func mustRaw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return b
}

func serve(t *testing.T, payload model.CodeChefListResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/list/contests/all" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

// 线上接口的三段列表返回过对象（键控map）与数组两种形态，都要能解
func TestFetchContestsKeyedMaps(t *testing.T) {
	payload := model.CodeChefListResponse{
		Status: "success",
		PresentContests: mustRaw(t, map[string]model.CodeChefContest{
			"0": {ContestCode: "START100", ContestName: "Starters 100", ContestStartDateISO: fixedNow.Add(-time.Hour).Format(time.RFC3339)},
		}),
		FutureContests: mustRaw(t, map[string]model.CodeChefContest{
			"0": {ContestCode: "COOK200", ContestName: "Cook-Off 200", ContestStartDateISO: fixedNow.Add(48 * time.Hour).Format(time.RFC3339)},
		}),
	}
	ts := serve(t, payload)
	defer ts.Close()

	records := testAdapter(ts.URL).FetchContests(context.Background())
	if len(records) != 2 {
		t.Fatalf("records: got=%d want=2", len(records))
	}
	byName := map[string]*model.RawContest{}
	for _, r := range records {
		byName[r.Name] = r
	}
	if r := byName["Starters 100"]; r == nil || r.Status != model.StatusOngoing {
		t.Errorf("Starters 100: %+v", r)
	}
	if r := byName["Cook-Off 200"]; r == nil || r.Status != model.StatusUpcoming {
		t.Errorf("Cook-Off 200: %+v", r)
	}
	if byName["Starters 100"].Link != "https://www.codechef.com/START100" {
		t.Errorf("link: got=%s", byName["Starters 100"].Link)
	}
}

// 已结束比赛：30天窗口外的丢弃，窗口内按结束时间倒序取前10条
func TestFetchContestsPastWindowAndCap(t *testing.T) {
	var past []model.CodeChefContest
	for i := 1; i <= 12; i++ {
		end := fixedNow.Add(-time.Duration(i) * 24 * time.Hour)
		past = append(past, model.CodeChefContest{
			ContestCode:         fmt.Sprintf("PAST%d", i),
			ContestName:         fmt.Sprintf("Past Contest %d", i),
			ContestStartDateISO: end.Add(-3 * time.Hour).Format(time.RFC3339),
			ContestEndDateISO:   end.Format(time.RFC3339),
		})
	}
	// 窗口外的一条，不应出现
	past = append(past, model.CodeChefContest{
		ContestCode:         "ANCIENT",
		ContestName:         "Ancient Contest",
		ContestStartDateISO: fixedNow.Add(-40 * 24 * time.Hour).Format(time.RFC3339),
		ContestEndDateISO:   fixedNow.Add(-40 * 24 * time.Hour).Format(time.RFC3339),
	})

	payload := model.CodeChefListResponse{
		Status:       "success",
		PastContests: mustRaw(t, past),
	}
	ts := serve(t, payload)
	defer ts.Close()

	records := testAdapter(ts.URL).FetchContests(context.Background())
	if len(records) != maxPastContests {
		t.Fatalf("records: got=%d want=%d", len(records), maxPastContests)
	}
	for _, r := range records {
		if r.Name == "Ancient Contest" {
			t.Fatal("窗口外的比赛不应出现")
		}
		if r.Status != model.StatusFinished {
			t.Errorf("%s status: got=%s", r.Name, r.Status)
		}
	}
	// 倒序取最近的10条：Past Contest 1..10
	if records[0].Name != "Past Contest 1" {
		t.Errorf("first: got=%s", records[0].Name)
	}
	if records[len(records)-1].Name != "Past Contest 10" {
		t.Errorf("last: got=%s", records[len(records)-1].Name)
	}
}

// 窗口边界含端点：恰好30天前结束的保留，再早一秒的丢弃
func TestFetchContestsPastWindowBoundary(t *testing.T) {
	onBoundary := fixedNow.Add(-30 * 24 * time.Hour)
	past := []model.CodeChefContest{
		{
			ContestCode:         "EDGE",
			ContestName:         "Boundary Contest",
			ContestStartDateISO: onBoundary.Add(-3 * time.Hour).Format(time.RFC3339),
			ContestEndDateISO:   onBoundary.Format(time.RFC3339),
		},
		{
			ContestCode:         "STALE",
			ContestName:         "Stale Contest",
			ContestStartDateISO: onBoundary.Add(-3 * time.Hour).Format(time.RFC3339),
			ContestEndDateISO:   onBoundary.Add(-time.Second).Format(time.RFC3339),
		},
	}
	payload := model.CodeChefListResponse{
		Status:       "success",
		PastContests: mustRaw(t, past),
	}
	ts := serve(t, payload)
	defer ts.Close()

	records := testAdapter(ts.URL).FetchContests(context.Background())
	if len(records) != 1 {
		t.Fatalf("records: got=%d want=1", len(records))
	}
	if records[0].Name != "Boundary Contest" {
		t.Errorf("kept: got=%s", records[0].Name)
	}
}

// 旧字段名（无contest_前缀）与旧时间格式的兜底取值
func TestNormalizeLegacyFields(t *testing.T) {
	a := testAdapter("http://unused")
	r := a.normalize(model.CodeChefContest{
		ContestCode: "LUNCH50",
		Name:        "Lunchtime 50",
		StartDate:   "06 Mar 2024 20:00:00",
	}, model.StatusFinished)
	if r == nil {
		t.Fatal("normalize returned nil")
	}
	if r.Name != "Lunchtime 50" {
		t.Errorf("name: got=%s", r.Name)
	}
	if r.Date.Year() != 2024 || r.Date.Month() != time.March {
		t.Errorf("date: got=%v", r.Date)
	}
}

func TestFetchContestsFailSoft(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()
	records := testAdapter(ts.URL).FetchContests(context.Background())
	if len(records) != 0 {
		t.Fatalf("records: got=%d want=0", len(records))
	}
}
