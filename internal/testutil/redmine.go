package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/yken-tsuru/ganttx/internal/domain"
)

// FakeToken is the authenticity token served on the fake gantt page.
const FakeToken = "fake-csrf-token"

// Update is one write received by the fake server.
type Update struct {
	IssueID int
	Form    url.Values
}

// FakeRedmine is an in-memory Redmine serving the endpoints the client uses:
// issue reads, issue listings, memberships, the gantt page and form updates.
// Accepted updates are applied to the stored issues.
type FakeRedmine struct {
	Server *httptest.Server

	mu        sync.Mutex
	project   string
	issues    map[int]*domain.ScheduleItem
	members   []domain.RosterEntry
	token     string
	fetchFail map[int]int
	submitFn  func(id int, form url.Values) (int, []string)
	updates   []Update
	fetches   map[int]int
}

// NewFakeRedmine starts a fake server for project "demo". It is closed when
// the test completes.
func NewFakeRedmine(t *testing.T) *FakeRedmine {
	t.Helper()
	f := &FakeRedmine{
		project:   "demo",
		issues:    make(map[int]*domain.ScheduleItem),
		token:     FakeToken,
		fetchFail: make(map[int]int),
		fetches:   make(map[int]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /issues.json", f.handleList)
	mux.HandleFunc("GET /issues/{file}", f.handleShow)
	mux.HandleFunc("POST /issues/{id}", f.handleUpdate)
	mux.HandleFunc("GET /projects/{project}/issues/gantt", f.handleGantt)
	mux.HandleFunc("GET /projects/{project}/memberships.json", f.handleMemberships)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the server root with a trailing slash.
func (f *FakeRedmine) URL() string { return f.Server.URL + "/" }

// Project returns the project identifier the fake serves.
func (f *FakeRedmine) Project() string { return f.project }

// AddIssue stores copies of the given issues.
func (f *FakeRedmine) AddIssue(items ...*domain.ScheduleItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range items {
		cp := *it
		f.issues[it.ID] = &cp
	}
}

// Issue returns a copy of the stored issue, or nil.
func (f *FakeRedmine) Issue(id int) *domain.ScheduleItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.issues[id]
	if !ok {
		return nil
	}
	cp := *it
	return &cp
}

// SetMembers replaces the project's member users.
func (f *FakeRedmine) SetMembers(members ...domain.RosterEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members = append([]domain.RosterEntry(nil), members...)
}

// FailFetch makes reads of issue id answer with status.
func (f *FakeRedmine) FailFetch(id, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchFail[id] = status
}

// OnSubmit overrides how updates are answered. fn returns the status code
// and an optional list of validation messages; a 2xx status with no
// messages applies the update.
func (f *FakeRedmine) OnSubmit(fn func(id int, form url.Values) (int, []string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitFn = fn
}

// Updates returns every write received so far.
func (f *FakeRedmine) Updates() []Update {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Update(nil), f.updates...)
}

// Fetches returns how many times issue id was read.
func (f *FakeRedmine) Fetches(id int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[id]
}

type fakeRef struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

func issuePayload(it *domain.ScheduleItem) map[string]any {
	out := map[string]any{
		"id":         it.ID,
		"subject":    it.Subject,
		"project":    fakeRef{ID: it.ProjectID},
		"done_ratio": it.DoneRatio,
		"start_date": nil,
		"due_date":   nil,
	}
	if it.StartDate != "" {
		out["start_date"] = it.StartDate
	}
	if it.DueDate != "" {
		out["due_date"] = it.DueDate
	}
	if it.Description != "" {
		out["description"] = it.Description
	}
	if it.ParentID != 0 {
		out["parent"] = fakeRef{ID: it.ParentID}
	}
	if it.AssigneeID != 0 {
		out["assigned_to"] = fakeRef{ID: it.AssigneeID, Name: it.AssigneeName}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *FakeRedmine) handleShow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(strings.TrimSuffix(r.PathValue("file"), ".json"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[id]++
	if status, ok := f.fetchFail[id]; ok {
		w.WriteHeader(status)
		return
	}
	it, ok := f.issues[id]
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"issue": issuePayload(it)})
}

func (f *FakeRedmine) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = 25
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var ids []int
	if p := q.Get("parent_id"); strings.HasPrefix(p, "~") {
		root, _ := strconv.Atoi(strings.TrimPrefix(p, "~"))
		for id := range f.issues {
			if id != root && f.descendsFrom(id, root) {
				ids = append(ids, id)
			}
		}
	} else {
		for id := range f.issues {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	page := []map[string]any{}
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		page = append(page, issuePayload(f.issues[ids[i]]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"issues":      page,
		"total_count": len(ids),
		"offset":      offset,
		"limit":       limit,
	})
}

// descendsFrom must be called with mu held.
func (f *FakeRedmine) descendsFrom(id, root int) bool {
	seen := map[int]bool{}
	for cur := f.issues[id]; cur != nil && cur.ParentID != 0 && !seen[cur.ID]; cur = f.issues[cur.ParentID] {
		seen[cur.ID] = true
		if cur.ParentID == root {
			return true
		}
	}
	return false
}

func (f *FakeRedmine) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, Update{IssueID: id, Form: r.PostForm})

	if r.PostForm.Get("_method") != "put" || r.PostForm.Get("authenticity_token") != f.token {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	if f.submitFn != nil {
		status, reasons := f.submitFn(id, r.PostForm)
		if len(reasons) > 0 {
			writeJSON(w, status, map[string]any{"errors": reasons})
			return
		}
		if status < 200 || status >= 300 {
			w.WriteHeader(status)
			return
		}
	}

	it, ok := f.issues[id]
	if !ok {
		http.NotFound(w, r)
		return
	}
	f.apply(it, r.PostForm)
	w.WriteHeader(http.StatusNoContent)
}

// apply must be called with mu held.
func (f *FakeRedmine) apply(it *domain.ScheduleItem, form url.Values) {
	for key, vals := range form {
		field, ok := strings.CutPrefix(key, "issue[")
		if !ok || len(vals) == 0 {
			continue
		}
		field = strings.TrimSuffix(field, "]")
		v := vals[0]
		switch domain.Field(field) {
		case domain.FieldStartDate:
			it.StartDate = v
		case domain.FieldDueDate:
			it.DueDate = v
		case domain.FieldDoneRatio:
			it.DoneRatio, _ = strconv.Atoi(v)
		case domain.FieldParent:
			it.ParentID, _ = strconv.Atoi(v)
		case domain.FieldAssignee:
			it.AssigneeID, _ = strconv.Atoi(v)
			it.AssigneeName = ""
			for _, m := range f.members {
				if m.ID == it.AssigneeID {
					it.AssigneeName = m.Name
				}
			}
		}
	}
}

func (f *FakeRedmine) handleGantt(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("project") != f.project {
		http.NotFound(w, r)
		return
	}
	f.mu.Lock()
	token := f.token
	f.mu.Unlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html><head>
<meta charset="utf-8" />
<meta name="csrf-param" content="authenticity_token" />
<meta name="csrf-token" content="%s" />
<title>Gantt</title>
</head><body><div id="gantt_area"></div></body></html>`, token)
}

func (f *FakeRedmine) handleMemberships(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("project") != f.project {
		http.NotFound(w, r)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []map[string]any{}
	for _, m := range f.members {
		list = append(list, map[string]any{"id": len(list) + 1, "user": fakeRef{ID: m.ID, Name: m.Name}})
	}
	list = append(list, map[string]any{"id": len(list) + 1, "group": fakeRef{ID: 900, Name: "Developers"}})
	writeJSON(w, http.StatusOK, map[string]any{
		"memberships": list,
		"total_count": len(list),
		"offset":      0,
		"limit":       100,
	})
}
