package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quantalogic/lorem-ipsum-generator/pkg/models"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/render"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/utils"
	"github.com/stretchr/testify/require"
)

func setupServer() *httptest.Server {
	return httptest.NewServer(NewRouter())
}

func postGenerate(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url+"/v1/generate", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeGeneration(t *testing.T, resp *http.Response) models.Generation {
	t.Helper()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out models.Generation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestGenerateEndpoint_Words(t *testing.T) {
	s := setupServer()
	defer s.Close()

	out := decodeGeneration(t, postGenerate(t, s.URL, models.GenerateRequest{Unit: "words", Count: "5"}))

	require.Equal(t, "lorem.generation", out.Object)
	require.True(t, strings.HasPrefix(out.ID, "lorem-"))
	require.Equal(t, "words", out.Unit)
	require.Equal(t, 5, out.Count)
	require.Len(t, out.Items, 5)
	require.Equal(t, strings.Join(out.Items, " "), out.Text)
	require.Equal(t, 5, out.Usage.Words)
	require.Equal(t, len(out.Text), out.Usage.Characters)
}

func TestGenerateEndpoint_CountIsClamped(t *testing.T) {
	s := setupServer()
	defer s.Close()

	for _, raw := range []string{`"abc"`, `0`, `-5`, `null`, `"0"`} {
		resp, err := http.Post(s.URL+"/v1/generate", "application/json",
			strings.NewReader(`{"unit":"sentences","count":`+raw+`}`))
		require.NoError(t, err)
		out := decodeGeneration(t, resp)
		require.Len(t, out.Items, 1, "count %s", raw)
	}

	out := decodeGeneration(t, postGenerate(t, s.URL, map[string]interface{}{"unit": "words", "count": 10000}))
	require.Len(t, out.Items, 500)
}

func TestGenerateEndpoint_ClassicFirst(t *testing.T) {
	s := setupServer()
	defer s.Close()

	out := decodeGeneration(t, postGenerate(t, s.URL, models.GenerateRequest{
		Unit:         "paragraphs",
		Count:        "3",
		ClassicFirst: true,
	}))

	require.Len(t, out.Items, 3)
	require.Equal(t, utils.ClassicParagraph, out.Items[0])
	require.NotEqual(t, utils.ClassicParagraph, out.Items[1])
	require.NotEqual(t, utils.ClassicParagraph, out.Items[2])
	require.Equal(t, strings.Join(out.Items, "\n\n"), out.Text)
}

func TestGenerateEndpoint_SeedIsReproducible(t *testing.T) {
	s := setupServer()
	defer s.Close()

	seed := int64(77)
	req := models.GenerateRequest{Unit: "paragraphs", Count: "2", Seed: &seed}

	a := decodeGeneration(t, postGenerate(t, s.URL, req))
	b := decodeGeneration(t, postGenerate(t, s.URL, req))
	require.Equal(t, a.Items, b.Items)
	require.NotEqual(t, a.ID, b.ID)
}

func TestGenerateEndpoint_ServerSeed(t *testing.T) {
	seed := int64(5)
	s := httptest.NewServer(NewServer(Options{Seed: &seed}).Handler())
	defer s.Close()

	req := models.GenerateRequest{Unit: "sentences", Count: "3"}
	a := decodeGeneration(t, postGenerate(t, s.URL, req))
	b := decodeGeneration(t, postGenerate(t, s.URL, req))
	require.Equal(t, a.Items, b.Items)
}

func TestGenerateEndpoint_QueryAndTextFormat(t *testing.T) {
	s := setupServer()
	defer s.Close()

	resp, err := http.Get(s.URL + "/generate?unit=sentences&count=3&format=text")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	require.NotContains(t, text, "\n")
	marks := strings.Count(text, ".") + strings.Count(text, "?") + strings.Count(text, "!")
	require.Equal(t, 3, marks)
}

func TestGenerateEndpoint_HTMLFormat(t *testing.T) {
	s := setupServer()
	defer s.Close()

	resp, err := http.Get(s.URL + "/v1/generate?unit=paragraphs&count=2&classic_first=on&format=html")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(string(body), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "<p>"+utils.ClassicParagraph+"</p>", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "<p>"))
	require.True(t, strings.HasSuffix(lines[1], "</p>"))
}

func TestGenerateEndpoint_DefaultFormat(t *testing.T) {
	cases := map[render.Format]string{
		"HTML":  "text/html; charset=utf-8",
		" text": "text/plain; charset=utf-8",
		"":      "application/json",
		"pdf":   "application/json",
	}
	for format, contentType := range cases {
		s := httptest.NewServer(NewServer(Options{DefaultFormat: format}).Handler())

		resp, err := http.Get(s.URL + "/v1/generate?unit=words&count=3")
		require.NoError(t, err)
		resp.Body.Close()
		s.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode, format)
		require.Equal(t, contentType, resp.Header.Get("Content-Type"), format)
	}
}

func TestGenerateEndpoint_Errors(t *testing.T) {
	s := setupServer()
	defer s.Close()

	cases := []struct {
		name   string
		do     func() (*http.Response, error)
		status int
	}{
		{"invalid unit", func() (*http.Response, error) {
			return http.Post(s.URL+"/v1/generate", "application/json", strings.NewReader(`{"unit":"lines","count":2}`))
		}, http.StatusBadRequest},
		{"missing unit", func() (*http.Response, error) {
			return http.Get(s.URL + "/v1/generate?count=2")
		}, http.StatusBadRequest},
		{"invalid format", func() (*http.Response, error) {
			return http.Get(s.URL + "/v1/generate?unit=words&format=pdf")
		}, http.StatusBadRequest},
		{"invalid seed", func() (*http.Response, error) {
			return http.Get(s.URL + "/v1/generate?unit=words&seed=x")
		}, http.StatusBadRequest},
		{"invalid json", func() (*http.Response, error) {
			return http.Post(s.URL+"/v1/generate", "application/json", strings.NewReader(`{"unit":`))
		}, http.StatusBadRequest},
		{"invalid count type", func() (*http.Response, error) {
			return http.Post(s.URL+"/v1/generate", "application/json", strings.NewReader(`{"unit":"words","count":true}`))
		}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := tc.do()
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tc.status, resp.StatusCode)

			var out models.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			require.Equal(t, "invalid_request_error", out.Error.Type)
			require.NotEmpty(t, out.Error.Message)
		})
	}
}

func TestGenerateEndpoint_MethodNotAllowed(t *testing.T) {
	s := setupServer()
	defer s.Close()

	req, err := http.NewRequest(http.MethodDelete, s.URL+"/v1/generate", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestUnitsEndpoint(t *testing.T) {
	s := setupServer()
	defer s.Close()

	resp, err := http.Get(s.URL + "/v1/units")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out models.UnitList
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "list", out.Object)
	require.Len(t, out.Data, 3)
	require.Equal(t, "words", out.Data[0].ID)
	require.Equal(t, "paragraphs", out.Data[2].ID)
	require.Equal(t, 500, out.Data[0].MaxCount)
}

func TestHealthAndRoot(t *testing.T) {
	s := setupServer()
	defer s.Close()

	resp, err := http.Get(s.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(s.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(s.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSetWordBank(t *testing.T) {
	srv := NewServer(Options{})
	s := httptest.NewServer(srv.Handler())
	defer s.Close()

	wb, err := utils.NewWordBankFromWords([]string{"alpha", "beta"})
	require.NoError(t, err)
	srv.SetWordBank(wb)
	require.Same(t, wb, srv.WordBank())

	// nil is ignored
	srv.SetWordBank(nil)
	require.Same(t, wb, srv.WordBank())

	out := decodeGeneration(t, postGenerate(t, s.URL, models.GenerateRequest{Unit: "words", Count: "20"}))
	require.Len(t, out.Items, 20)
	for i, w := range out.Items {
		if i == 0 {
			w = strings.ToLower(w)
		}
		require.Contains(t, []string{"alpha", "beta"}, w)
	}
}
