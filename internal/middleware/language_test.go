// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/presensi-go/internal/i18n"
)

func TestLanguage(t *testing.T) {
	if err := i18n.Init(nil); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}

	tests := []struct {
		name       string
		query      string
		cookie     string
		accept     string
		want       string
		wantCookie bool
	}{
		{"default", "", "", "", "en", false},
		{"accept-language", "", "", "id-ID,id;q=0.9", "id", false},
		{"cookie beats header", "", "en", "id", "en", false},
		{"query beats cookie", "?lang=id", "en", "", "id", true},
		{"unsupported query ignored", "?lang=xx", "", "id", "id", false},
		{"unsupported cookie ignored", "", "fr", "", "en", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := Language(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetLanguage(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/login"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LanguageCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got != tt.want {
				t.Errorf("GetLanguage() = %q, want %q", got, tt.want)
			}
			setCookie := false
			for _, c := range rec.Result().Cookies() {
				if c.Name == LanguageCookieName {
					setCookie = true
				}
			}
			if setCookie != tt.wantCookie {
				t.Errorf("language cookie set = %v, want %v", setCookie, tt.wantCookie)
			}
		})
	}
}

func TestGetLanguage_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetLanguage(req); got != i18n.DefaultLanguage {
		t.Errorf("GetLanguage() = %q, want %q", got, i18n.DefaultLanguage)
	}
}
