package client_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const fakeAPIKey = "test-api-key"

type fakeCompany struct {
	Number string
	Name   string
}

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeAPI is an in-memory Inform Direct API. Access tokens are opaque and
// tracked in maps so tests can expire them.
type fakeAPI struct {
	*httptest.Server

	mutex              sync.Mutex
	companies          []fakeCompany
	accessTokens       map[string]bool
	refreshTokens      map[string]bool
	issued             int
	hits               map[string]int
	requests           []recordedRequest
	rejectRefresh      bool
	rejectAuthenticate bool
}

func newFakeAPI(t *testing.T, companies ...fakeCompany) *fakeAPI {
	t.Helper()

	api := &fakeAPI{
		companies:     companies,
		accessTokens:  make(map[string]bool),
		refreshTokens: make(map[string]bool),
		hits:          make(map[string]int),
	}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serveHTTP))
	t.Cleanup(api.Close)

	return api
}

func (a *fakeAPI) serveHTTP(writer http.ResponseWriter, request *http.Request) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	var body map[string]any
	_ = json.NewDecoder(request.Body).Decode(&body)

	a.hits[request.Method+" "+request.URL.Path]++
	a.requests = append(a.requests, recordedRequest{Method: request.Method, Path: request.URL.Path, Body: body})

	switch request.URL.Path {
	case "/authenticate":
		if a.rejectAuthenticate || body["ApiKey"] != fakeAPIKey {
			writeJSON(writer, http.StatusUnauthorized, map[string]string{"Message": "Invalid API key"})

			return
		}

		writeJSON(writer, http.StatusOK, a.issue())

		return
	case "/refresh":
		token, _ := body["RefreshToken"].(string)
		if a.rejectRefresh || !a.refreshTokens[token] {
			writeJSON(writer, http.StatusUnauthorized, map[string]string{"Message": "Invalid refresh token"})

			return
		}

		delete(a.refreshTokens, token)
		writeJSON(writer, http.StatusOK, a.issue())

		return
	case "/logout":
		token, _ := body["RefreshToken"].(string)
		delete(a.refreshTokens, token)
		writer.WriteHeader(http.StatusOK)

		return
	}

	if !a.accessTokens[strings.TrimPrefix(request.Header.Get("Authorization"), "Bearer ")] {
		writer.WriteHeader(http.StatusUnauthorized)

		return
	}

	a.serveCompanies(writer, request, body)
}

func (a *fakeAPI) serveCompanies(writer http.ResponseWriter, request *http.Request, body map[string]any) {
	number, _ := body["CompanyNumber"].(string)

	switch {
	case request.Method == http.MethodGet && request.URL.Path == "/companies":
		writeJSON(writer, http.StatusOK, a.companiesPayload(""))
	case request.Method == http.MethodGet && strings.HasPrefix(request.URL.Path, "/companies/"):
		writeJSON(writer, http.StatusOK, a.companiesPayload(strings.TrimPrefix(request.URL.Path, "/companies/")))
	case request.Method == http.MethodPost && request.URL.Path == "/companies/add":
		if a.indexOf(number) >= 0 {
			writeJSON(writer, http.StatusConflict, map[string]string{"Message": "Company already in portfolio"})

			return
		}

		a.companies = append(a.companies, fakeCompany{Number: number, Name: "Company " + number})
		writeJSON(writer, http.StatusOK, map[string]string{"Message": "Company added"})
	case request.Method == http.MethodPut && request.URL.Path == "/companies/delete":
		idx := a.indexOf(number)
		if idx < 0 {
			writeJSON(writer, http.StatusNotFound, map[string]string{"Message": "Company not found"})

			return
		}

		if len(a.companies) == 1 {
			writeJSON(writer, http.StatusUnprocessableEntity, map[string]string{
				"Message": "Cannot remove the last company on the account",
			})

			return
		}

		a.companies = append(a.companies[:idx], a.companies[idx+1:]...)
		writeJSON(writer, http.StatusOK, map[string]string{"Message": "Company removed"})
	default:
		writer.WriteHeader(http.StatusNotFound)
	}
}

func (a *fakeAPI) companiesPayload(only string) map[string]any {
	companies := make([]map[string]string, 0, len(a.companies))

	for _, company := range a.companies {
		if only != "" && company.Number != only {
			continue
		}

		companies = append(companies, map[string]string{
			"CompanyNumber": company.Number,
			"Name":          company.Name,
			"PublicUrl":     "https://example.test/companies/" + company.Number,
		})
	}

	return map[string]any{"Companies": companies}
}

func (a *fakeAPI) indexOf(number string) int {
	for i, company := range a.companies {
		if company.Number == number {
			return i
		}
	}

	return -1
}

func (a *fakeAPI) issue() map[string]string {
	a.issued++
	access := fmt.Sprintf("access-%d", a.issued)
	refresh := fmt.Sprintf("refresh-%d", a.issued)
	a.accessTokens[access] = true
	a.refreshTokens[refresh] = true

	return map[string]string{"AccessToken": access, "RefreshToken": refresh}
}

func (a *fakeAPI) expireAccessTokens() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.accessTokens = make(map[string]bool)
}

func (a *fakeAPI) setRejectRefresh(reject bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.rejectRefresh = reject
}

func (a *fakeAPI) setRejectAuthenticate(reject bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.rejectAuthenticate = reject
}

func (a *fakeAPI) hitCount(key string) int {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return a.hits[key]
}

func (a *fakeAPI) totalHits() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return len(a.requests)
}

func (a *fakeAPI) lastBody() map[string]any {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if len(a.requests) == 0 {
		return nil
	}

	return a.requests[len(a.requests)-1].Body
}

func writeJSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}
