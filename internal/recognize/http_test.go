// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/casegrade/internal/httputil"
	"github.com/pdiddy/casegrade/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func TestHTTPRecognize(t *testing.T) {
	var gotAuth, gotText string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get("Authorization")

		var req nerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotText = req.Text

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"entities":[
			{"text":"aspirin","label":"CHEMICAL","start":8,"end":15},
			{"text":"sepsis","label":" Disease ","start":20,"end":26}
		]}`))
	}))
	defer ts.Close()

	h, err := NewHTTP(types.RecognizerConfig{URL: ts.URL, APIKey: "nk_test"})
	require.NoError(t, err)

	spans, err := h.Recognize(context.Background(), "Started aspirin for sepsis")
	require.NoError(t, err)

	assert.Equal(t, "Bearer nk_test", gotAuth)
	assert.Equal(t, "Started aspirin for sepsis", gotText)
	assert.Equal(t, []types.EntitySpan{
		{Text: "aspirin", Category: types.CategoryChemical, Start: 8, End: 15},
		{Text: "sepsis", Category: types.CategoryDisease, Start: 20, End: 26},
	}, spans)
}

func TestHTTPRecognizeNoAPIKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"entities":[]}`))
	}))
	defer ts.Close()

	h, err := NewHTTP(types.RecognizerConfig{URL: ts.URL})
	require.NoError(t, err)

	spans, err := h.Recognize(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestHTTPRecognizeRetriesBusy(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		var req nerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ecg", req.Text, "body is replayed on retry")
		w.Write([]byte(`{"entities":[{"text":"ecg","label":"test"}]}`))
	}))
	defer ts.Close()

	h, err := NewHTTP(types.RecognizerConfig{URL: ts.URL, MaxRetries: 2})
	require.NoError(t, err)

	spans, err := h.Recognize(context.Background(), "ecg")
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, types.CategoryTest, spans[0].Category)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHTTPRecognizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errMsg  string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "model not loaded", http.StatusInternalServerError)
			},
			errMsg: "HTTP 500: model not loaded",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"entities": [`))
			},
			errMsg: "parsing NER response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			h, err := NewHTTP(types.RecognizerConfig{URL: ts.URL})
			require.NoError(t, err)

			_, err = h.Recognize(context.Background(), "text")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewHTTPRequiresURL(t *testing.T) {
	_, err := NewHTTP(types.RecognizerConfig{})
	assert.Error(t, err)
}
